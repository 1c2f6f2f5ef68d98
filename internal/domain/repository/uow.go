package repository

import "context"

// TxRepos bundles the repositories scoped to one database transaction.
type TxRepos struct {
	Carts            CartRepository
	CartItems        CartItemRepository
	Items            ItemRepository
	BranchItems      BranchItemRepository
	Transactions     TransactionRepository
	TransactionItems TransactionItemRepository
	Customers        CustomerRepository
}

// UnitOfWork runs fn inside a single database transaction. Every write
// issued through the TxRepos commits or rolls back together, which is what
// keeps payment processing (slip count, transaction insert, stock
// decrement, profit update) consistent under a mid-flight crash.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos *TxRepos) error) error
}
