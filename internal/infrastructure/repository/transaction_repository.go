package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bpims/pos-api/internal/domain/entity"
	domainRepo "github.com/bpims/pos-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Preload("Cashier").
		Preload("Customer").
		Preload("Items.Item").
		First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}

func (r *transactionRepository) CountByBranchBetween(ctx context.Context, branchID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Where("branch_id = ? AND transaction_date BETWEEN ? AND ?", branchID, from, to).
		Count(&count).Error
	return count, err
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]domainRepo.TransactionListRow, int64, error) {
	var rows []domainRepo.TransactionListRow
	var total int64

	params.Pagination.Validate()

	query := `
		SELECT tr.id, tr.total_amount, tr.slip_no, tr.transaction_date,
		       u.name AS cashier_name, b.name AS branch_name, tr.is_voided
		FROM transactions tr
		INNER JOIN users u ON u.id = tr.cashier_id
		INNER JOIN branches b ON b.id = tr.branch_id
	`
	countQuery := "SELECT COUNT(*) FROM transactions tr"

	var conditions []string
	var args []interface{}
	var countArgs []interface{}

	if params.BranchID != nil {
		conditions = append(conditions, "tr.branch_id = ?")
		args = append(args, *params.BranchID)
		countArgs = append(countArgs, *params.BranchID)
	}
	if params.Search != "" {
		conditions = append(conditions, "tr.slip_no LIKE ?")
		args = append(args, "%"+params.Search+"%")
		countArgs = append(countArgs, "%"+params.Search+"%")
	}

	where := ""
	for i, cond := range conditions {
		if i == 0 {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	query += where + " ORDER BY tr.transaction_date DESC LIMIT ? OFFSET ?"
	args = append(args, params.Pagination.PerPage, params.Pagination.Offset())

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Raw(countQuery+where, countArgs...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *transactionRepository) Oldest(ctx context.Context, branchID uuid.UUID) (*entity.Transaction, error) {
	var transaction entity.Transaction
	query := r.db.WithContext(ctx).Order("transaction_date ASC")
	if branchID != uuid.Nil {
		query = query.Where("branch_id = ?", branchID)
	}
	err := query.First(&transaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

type transactionItemRepository struct {
	db *gorm.DB
}

// NewTransactionItemRepository creates a new transaction item repository
func NewTransactionItemRepository(db *gorm.DB) domainRepo.TransactionItemRepository {
	return &transactionItemRepository{db: db}
}

func (r *transactionItemRepository) Create(ctx context.Context, item *entity.TransactionItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *transactionItemRepository) Update(ctx context.Context, item *entity.TransactionItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *transactionItemRepository) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]entity.TransactionItem, error) {
	var items []entity.TransactionItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("transaction_id = ?", transactionID).
		Find(&items).Error
	return items, err
}

func (r *transactionItemRepository) ListLineSummaries(ctx context.Context, transactionID uuid.UUID) ([]domainRepo.TransactionLineSummary, error) {
	var lines []domainRepo.TransactionLineSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT ti.id, i.id AS item_id, i.name AS item_name, ti.quantity
		FROM transaction_items ti
		INNER JOIN items i ON i.id = ti.item_id
		WHERE ti.transaction_id = ?
	`, transactionID).Scan(&lines).Error
	return lines, err
}
