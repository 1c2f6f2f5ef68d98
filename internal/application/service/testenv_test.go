package service

import (
	"context"
	"time"

	"github.com/bpims/pos-api/internal/config"
	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/infrastructure/cache"
	"github.com/bpims/pos-api/pkg/clock"
	"github.com/google/uuid"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// testEnv wires every service against one shared in-memory store, seeded
// with a branch, a cashier, two catalog items with stock and a customer.
type testEnv struct {
	store *memStore

	carts        *CartService
	payments     *PaymentService
	transactions *TransactionService
	items        *ItemService
	customers    *CustomerService
	loyalty      *LoyaltyService

	branchID   uuid.UUID
	cashierID  uuid.UUID
	customerID uuid.UUID
	riceID     uuid.UUID
	soapID     uuid.UUID
}

// newTestEnv seeds the store and builds the service graph. The injected
// clock is pinned to a mid-trading-hours instant (11:00 UTC+8) so slip
// dates and transaction timestamps are deterministic.
func newTestEnv() *testEnv {
	return newTestEnvAt(time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)) // 11:00 UTC+8
}

func newTestEnvAt(now time.Time) *testEnv {
	s := newMemStore()
	ctx := context.Background()

	userRepo := &fakeUserRepo{s: s}
	branchRepo := &fakeBranchRepo{s: s}
	itemRepo := &fakeItemRepo{s: s}
	branchItemRepo := &fakeBranchItemRepo{s: s}
	cartRepo := &fakeCartRepo{s: s}
	cartItemRepo := &fakeCartItemRepo{s: s}
	transactionRepo := &fakeTransactionRepo{s: s}
	transactionItemRepo := &fakeTransactionItemRepo{s: s}
	customerRepo := &fakeCustomerRepo{s: s}
	loyaltyRepo := &fakeLoyaltyRepo{s: s}
	uow := &fakeUnitOfWork{s: s}
	catalog := cache.NoopCatalogCache{}

	branch := &entity.Branch{Code: 1, Name: "Main Branch"}
	_ = branchRepo.Create(ctx, branch)

	cashier := &entity.User{
		Name:     "Kasir A",
		Email:    "cashier@bpims.local",
		Role:     entity.RoleCashier,
		BranchID: &branch.ID,
	}
	_ = userRepo.Create(ctx, cashier)

	rice := &entity.Item{Name: "Rice 5kg", Code: "RICE-5", Category: "staples", Price: 250000, Cost: 200000}
	soap := &entity.Item{Name: "Soap Bar", Code: "SOAP-1", Category: "household", Price: 50000, Cost: 30000}
	_ = itemRepo.Create(ctx, rice)
	_ = itemRepo.Create(ctx, soap)
	_ = branchItemRepo.Create(ctx, &entity.BranchItem{BranchID: branch.ID, ItemID: rice.ID, Quantity: 20})
	_ = branchItemRepo.Create(ctx, &entity.BranchItem{BranchID: branch.ID, ItemID: soap.ID, Quantity: 50})

	customer := &entity.Customer{Name: "Aling Nena", BranchID: &branch.ID}
	_ = customerRepo.Create(ctx, customer)

	voucher := &entity.ItemReward{Code: 2, Name: "Discount Voucher"}
	freeItem := &entity.ItemReward{Code: entity.PhysicalRewardCode, Name: "Free Item"}
	_ = loyaltyRepo.CreateReward(ctx, voucher)
	_ = loyaltyRepo.CreateReward(ctx, freeItem)
	_ = loyaltyRepo.CreateStage(ctx, &entity.LoyaltyStage{StageOrder: 1})
	_ = loyaltyRepo.CreateStage(ctx, &entity.LoyaltyStage{StageOrder: 2, ItemRewardID: &voucher.ID})
	_ = loyaltyRepo.CreateStage(ctx, &entity.LoyaltyStage{StageOrder: 3, ItemRewardID: &freeItem.ID})

	business := clock.NewBusiness(fixedClock{t: now}, 8)
	loyaltyService := NewLoyaltyService(loyaltyRepo, customerRepo, business)
	cfg := &config.BusinessConfig{TimezoneOffsetHours: 8, LoyaltyThreshold: 3000.0}

	return &testEnv{
		store: s,
		carts: NewCartService(
			cartRepo, cartItemRepo, itemRepo, branchItemRepo,
			userRepo, branchRepo, customerRepo, uow, catalog,
		),
		payments: NewPaymentService(
			cartRepo, cartItemRepo, userRepo, branchRepo,
			customerRepo, transactionRepo, loyaltyService, uow, business, cfg,
		),
		transactions: NewTransactionService(transactionRepo, transactionItemRepo, customerRepo, uow),
		items:        NewItemService(itemRepo, branchItemRepo, catalog),
		customers:    NewCustomerService(customerRepo, loyaltyService),
		loyalty:      loyaltyService,
		branchID:     branch.ID,
		cashierID:    cashier.ID,
		customerID:   customer.ID,
		riceID:       rice.ID,
		soapID:       soap.ID,
	}
}

func (e *testEnv) branchItemFor(itemID uuid.UUID) *entity.BranchItem {
	for _, bi := range e.store.branchItems {
		if bi.ItemID == itemID && bi.BranchID == e.branchID {
			return bi
		}
	}
	return nil
}

func (e *testEnv) cartFor(ctx context.Context, t testingT) *entity.Cart {
	cart, err := e.carts.GetCartForUser(ctx, e.cashierID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	return cart
}

// testingT is the slice of *testing.T the helpers need.
type testingT interface {
	Fatalf(format string, args ...any)
}
