package repository

import (
	"context"

	domainRepo "github.com/bpims/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a UnitOfWork backed by gorm transactions
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	return &gormUnitOfWork{db: db}
}

// Do runs fn with repositories bound to one database transaction; the
// transaction commits when fn returns nil and rolls back otherwise.
func (u *gormUnitOfWork) Do(ctx context.Context, fn func(repos *domainRepo.TxRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&domainRepo.TxRepos{
			Carts:            NewCartRepository(tx),
			CartItems:        NewCartItemRepository(tx),
			Items:            NewItemRepository(tx),
			BranchItems:      NewBranchItemRepository(tx),
			Transactions:     NewTransactionRepository(tx),
			TransactionItems: NewTransactionItemRepository(tx),
			Customers:        NewCustomerRepository(tx),
		})
	})
}
