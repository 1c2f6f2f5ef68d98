package service

import (
	"context"
	"testing"

	"github.com/bpims/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

func TestVoidTransactionRestoresStockAndCustomerTotal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cart := env.cartFor(ctx, t)
	if err := env.carts.AddItemToCart(ctx, cart.ID, env.riceID, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := env.carts.UpdateCustomer(ctx, cart.ID, &env.customerID); err != nil {
		t.Fatalf("attach customer failed: %v", err)
	}

	result, err := env.payments.ProcessPayment(ctx, env.cashierID, 7500.0)
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	if bi := env.branchItemFor(env.riceID); bi.Quantity != 17 {
		t.Fatalf("expected stock 17 after sale, got %v", bi.Quantity)
	}

	if err := env.transactions.VoidTransaction(ctx, result.TransactionID); err != nil {
		t.Fatalf("void failed: %v", err)
	}

	if bi := env.branchItemFor(env.riceID); bi.Quantity != 20 {
		t.Fatalf("expected stock restored to 20, got %v", bi.Quantity)
	}

	transaction := env.store.transactions[result.TransactionID]
	if !transaction.IsVoided {
		t.Fatalf("transaction must be marked voided")
	}

	customer := env.store.customers[env.customerID]
	if customer.TotalOrderAmount != 0 {
		t.Fatalf("expected lifetime total walked back to 0, got %d", customer.TotalOrderAmount)
	}
}

func TestVoidTwiceRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cart := env.cartFor(ctx, t)
	if err := env.carts.AddItemToCart(ctx, cart.ID, env.soapID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	result, err := env.payments.ProcessPayment(ctx, env.cashierID, 500.0)
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	if err := env.transactions.VoidTransaction(ctx, result.TransactionID); err != nil {
		t.Fatalf("first void failed: %v", err)
	}
	if err := env.transactions.VoidTransaction(ctx, result.TransactionID); err == nil {
		t.Fatalf("second void must be rejected")
	}
}

func TestListTransactionsFiltersBySlipSearch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		cart := env.cartFor(ctx, t)
		if err := env.carts.AddItemToCart(ctx, cart.ID, env.soapID, 1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if _, err := env.payments.ProcessPayment(ctx, env.cashierID, 500.0); err != nil {
			t.Fatalf("payment failed: %v", err)
		}
	}

	params := pagination.DefaultPagination()
	page, err := env.transactions.ListTransactions(ctx, env.branchID, params, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page.Items))
	}
	if len(page.Items[0].Items) != 1 {
		t.Fatalf("expected line summaries attached, got %d", len(page.Items[0].Items))
	}

	page, err = env.transactions.ListTransactions(ctx, env.branchID, params, "-002")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 row for slip search, got %d", len(page.Items))
	}
}

func TestOldestTransaction(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	oldest, err := env.transactions.GetOldestTransaction(ctx, uuid.Nil)
	if err != nil {
		t.Fatalf("oldest failed: %v", err)
	}
	if oldest != nil {
		t.Fatalf("expected nil on empty register")
	}

	cart := env.cartFor(ctx, t)
	if err := env.carts.AddItemToCart(ctx, cart.ID, env.soapID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	result, err := env.payments.ProcessPayment(ctx, env.cashierID, 500.0)
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}

	oldest, err = env.transactions.GetOldestTransaction(ctx, env.branchID)
	if err != nil {
		t.Fatalf("oldest failed: %v", err)
	}
	if oldest == nil || oldest.ID != result.TransactionID {
		t.Fatalf("expected the single transaction back")
	}
}
