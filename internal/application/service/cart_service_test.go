package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bpims/pos-api/pkg/apperror"
)

func TestAddItemThenRemoveRestoresSubTotal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cart := env.cartFor(ctx, t)

	if err := env.carts.AddItemToCart(ctx, cart.ID, env.riceID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	cart = env.cartFor(ctx, t)
	if cart.SubTotal != 500000 {
		t.Fatalf("expected subtotal 500000 cents, got %d", cart.SubTotal)
	}

	detail, _, err := env.carts.GetCartAndItems(ctx, env.cashierID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected 1 cart line, got %d", len(detail.Items))
	}

	if err := env.carts.RemoveCartItem(ctx, detail.Items[0].ID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}

	cart = env.cartFor(ctx, t)
	if cart.SubTotal != 0 {
		t.Fatalf("expected subtotal back to 0, got %d", cart.SubTotal)
	}
}

func TestAddItemBeyondStockRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cart := env.cartFor(ctx, t)

	err := env.carts.AddItemToCart(ctx, cart.ID, env.riceID, 25)
	if !errors.Is(err, apperror.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	cart = env.cartFor(ctx, t)
	if cart.SubTotal != 0 {
		t.Fatalf("rejected add must not change subtotal, got %d", cart.SubTotal)
	}
}

func TestAddSameItemTwiceMergesLine(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cart := env.cartFor(ctx, t)

	if err := env.carts.AddItemToCart(ctx, cart.ID, env.soapID, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := env.carts.AddItemToCart(ctx, cart.ID, env.soapID, 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	detail, _, err := env.carts.GetCartAndItems(ctx, env.cashierID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(detail.Items))
	}
	if detail.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %v", detail.Items[0].Quantity)
	}
}

func TestUpdateItemQuantityRecomputesSubTotal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cart := env.cartFor(ctx, t)
	if err := env.carts.AddItemToCart(ctx, cart.ID, env.soapID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	detail, _, err := env.carts.GetCartAndItems(ctx, env.cashierID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}

	if err := env.carts.UpdateItemQuantity(ctx, detail.Items[0].ID, 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}

	cart = env.cartFor(ctx, t)
	if cart.SubTotal != 250000 {
		t.Fatalf("expected subtotal 250000, got %d", cart.SubTotal)
	}
}

func TestDiscountLargerThanSubTotalRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cart := env.cartFor(ctx, t)
	if err := env.carts.AddItemToCart(ctx, cart.ID, env.soapID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	err := env.carts.UpdateDiscount(ctx, cart.ID, 600.0)
	if !errors.Is(err, apperror.ErrDiscountTooLarge) {
		t.Fatalf("expected discount too large error, got %v", err)
	}

	if err := env.carts.UpdateDiscount(ctx, cart.ID, 100.0); err != nil {
		t.Fatalf("valid discount rejected: %v", err)
	}
}

func TestClearCartResetsHeader(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cart := env.cartFor(ctx, t)
	if err := env.carts.AddItemToCart(ctx, cart.ID, env.riceID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := env.carts.UpdateCustomer(ctx, cart.ID, &env.customerID); err != nil {
		t.Fatalf("attach customer failed: %v", err)
	}

	if err := env.carts.ClearCart(ctx, cart.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	cart = env.cartFor(ctx, t)
	if cart.SubTotal != 0 || cart.CustomerID != nil || cart.Discount != nil {
		t.Fatalf("cart header not reset: %+v", cart)
	}

	_, count, err := env.carts.GetCartAndItems(ctx, env.cashierID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty cart, item count %v", count)
	}
}
