package repository

import (
	"context"
	"time"

	domainRepo "github.com/bpims/pos-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) DailySales(ctx context.Context, branchID *uuid.UUID, from, to time.Time) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	query := `
		SELECT
			DATE_TRUNC('day', tr.transaction_date) AS day,
			COUNT(*) AS transaction_count,
			COALESCE(SUM(tr.total_amount), 0) / 100.0 AS total_sales,
			COALESCE(SUM(tr.profit), 0) / 100.0 AS total_profit
		FROM transactions tr
		WHERE tr.is_voided = FALSE
		  AND tr.transaction_date BETWEEN ? AND ?
	`
	args := []interface{}{from, to}

	if branchID != nil {
		query += " AND tr.branch_id = ?"
		args = append(args, *branchID)
	}

	query += " GROUP BY 1 ORDER BY 1 ASC"

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *reportRepository) TopItems(ctx context.Context, branchID *uuid.UUID, limit int) ([]domainRepo.TopItemResult, error) {
	var results []domainRepo.TopItemResult

	query := `
		SELECT
			i.id AS item_id,
			i.name AS item_name,
			i.code AS item_code,
			COALESCE(SUM(ti.quantity), 0) AS quantity_sold,
			COALESCE(SUM(ti.amount), 0) / 100.0 AS revenue
		FROM transaction_items ti
		JOIN items i ON i.id = ti.item_id
		JOIN transactions tr ON tr.id = ti.transaction_id
		WHERE tr.is_voided = FALSE
	`
	args := []interface{}{}

	if branchID != nil {
		query += " AND tr.branch_id = ?"
		args = append(args, *branchID)
	}

	query += " GROUP BY i.id, i.name, i.code ORDER BY revenue DESC LIMIT ?"
	args = append(args, limit)

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
