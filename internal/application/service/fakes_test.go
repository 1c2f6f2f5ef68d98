package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/domain/repository"
	"github.com/google/uuid"
)

// memStore is a shared in-memory backing store for the repository fakes.
type memStore struct {
	users            map[uuid.UUID]*entity.User
	branches         map[uuid.UUID]*entity.Branch
	items            map[uuid.UUID]*entity.Item
	branchItems      map[uuid.UUID]*entity.BranchItem
	carts            map[uuid.UUID]*entity.Cart
	cartItems        map[uuid.UUID]*entity.CartItem
	transactions     map[uuid.UUID]*entity.Transaction
	transactionItems map[uuid.UUID]*entity.TransactionItem
	customers        map[uuid.UUID]*entity.Customer
	stages           map[uuid.UUID]*entity.LoyaltyStage
	customerStages   map[uuid.UUID]*entity.LoyaltyCustomer
	rewards          map[uuid.UUID]*entity.ItemReward
}

func newMemStore() *memStore {
	return &memStore{
		users:            make(map[uuid.UUID]*entity.User),
		branches:         make(map[uuid.UUID]*entity.Branch),
		items:            make(map[uuid.UUID]*entity.Item),
		branchItems:      make(map[uuid.UUID]*entity.BranchItem),
		carts:            make(map[uuid.UUID]*entity.Cart),
		cartItems:        make(map[uuid.UUID]*entity.CartItem),
		transactions:     make(map[uuid.UUID]*entity.Transaction),
		transactionItems: make(map[uuid.UUID]*entity.TransactionItem),
		customers:        make(map[uuid.UUID]*entity.Customer),
		stages:           make(map[uuid.UUID]*entity.LoyaltyStage),
		customerStages:   make(map[uuid.UUID]*entity.LoyaltyCustomer),
		rewards:          make(map[uuid.UUID]*entity.ItemReward),
	}
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	ensureID(&u.ID)
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

type fakeBranchRepo struct{ s *memStore }

func (r *fakeBranchRepo) Create(_ context.Context, b *entity.Branch) error {
	ensureID(&b.ID)
	cp := *b
	r.s.branches[b.ID] = &cp
	return nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Branch, error) {
	if b, ok := r.s.branches[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeBranchRepo) GetByCode(_ context.Context, code int) (*entity.Branch, error) {
	for _, b := range r.s.branches {
		if b.Code == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBranchRepo) List(_ context.Context) ([]entity.Branch, error) {
	out := make([]entity.Branch, 0, len(r.s.branches))
	for _, b := range r.s.branches {
		out = append(out, *b)
	}
	return out, nil
}

type fakeItemRepo struct{ s *memStore }

func (r *fakeItemRepo) Create(_ context.Context, i *entity.Item) error {
	ensureID(&i.ID)
	cp := *i
	r.s.items[i.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Item, error) {
	if i, ok := r.s.items[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	for _, i := range r.s.items {
		if i.Code == code {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(_ context.Context, i *entity.Item) error {
	cp := *i
	r.s.items[i.ID] = &cp
	return nil
}

type fakeBranchItemRepo struct{ s *memStore }

func (r *fakeBranchItemRepo) Create(_ context.Context, bi *entity.BranchItem) error {
	ensureID(&bi.ID)
	cp := *bi
	r.s.branchItems[bi.ID] = &cp
	return nil
}

func (r *fakeBranchItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.BranchItem, error) {
	if bi, ok := r.s.branchItems[id]; ok {
		cp := *bi
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeBranchItemRepo) GetByBranchAndItem(_ context.Context, branchID, itemID uuid.UUID) (*entity.BranchItem, error) {
	for _, bi := range r.s.branchItems {
		if bi.BranchID == branchID && bi.ItemID == itemID {
			cp := *bi
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBranchItemRepo) Update(_ context.Context, bi *entity.BranchItem) error {
	cp := *bi
	r.s.branchItems[bi.ID] = &cp
	return nil
}

func (r *fakeBranchItemRepo) ListByBranch(_ context.Context, branchID uuid.UUID, params *repository.BranchItemFilterParams) ([]entity.BranchItem, int64, error) {
	var out []entity.BranchItem
	for _, bi := range r.s.branchItems {
		if bi.BranchID != branchID {
			continue
		}
		item := r.s.items[bi.ItemID]
		if params.Search != "" && (item == nil || !strings.Contains(strings.ToLower(item.Name), strings.ToLower(params.Search))) {
			continue
		}
		if params.Category != "" && (item == nil || item.Category != params.Category) {
			continue
		}
		out = append(out, *bi)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBranchItemRepo) ListLowStock(_ context.Context, branchID uuid.UUID, threshold float64) ([]entity.BranchItem, error) {
	var out []entity.BranchItem
	for _, bi := range r.s.branchItems {
		if bi.BranchID == branchID && bi.Quantity <= threshold {
			out = append(out, *bi)
		}
	}
	return out, nil
}

type fakeCartRepo struct{ s *memStore }

func (r *fakeCartRepo) Create(_ context.Context, c *entity.Cart) error {
	ensureID(&c.ID)
	cp := *c
	r.s.carts[c.ID] = &cp
	return nil
}

func (r *fakeCartRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Cart, error) {
	if c, ok := r.s.carts[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCartRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeCartRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.Cart, error) {
	for _, c := range r.s.carts {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) Update(_ context.Context, c *entity.Cart) error {
	cp := *c
	r.s.carts[c.ID] = &cp
	return nil
}

type fakeCartItemRepo struct{ s *memStore }

func (r *fakeCartItemRepo) Create(_ context.Context, ci *entity.CartItem) error {
	ensureID(&ci.ID)
	cp := *ci
	r.s.cartItems[ci.ID] = &cp
	return nil
}

func (r *fakeCartItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CartItem, error) {
	if ci, ok := r.s.cartItems[id]; ok {
		cp := *ci
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCartItemRepo) GetByCartAndBranchItem(_ context.Context, cartID, branchItemID uuid.UUID) (*entity.CartItem, error) {
	for _, ci := range r.s.cartItems {
		if ci.CartID == cartID && ci.BranchItemID == branchItemID {
			cp := *ci
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCartItemRepo) ListByCart(_ context.Context, cartID uuid.UUID) ([]entity.CartItem, error) {
	var out []entity.CartItem
	for _, ci := range r.s.cartItems {
		if ci.CartID == cartID {
			out = append(out, *ci)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCartItemRepo) Update(_ context.Context, ci *entity.CartItem) error {
	cp := *ci
	r.s.cartItems[ci.ID] = &cp
	return nil
}

func (r *fakeCartItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.cartItems, id)
	return nil
}

func (r *fakeCartItemRepo) DeleteByCart(_ context.Context, cartID uuid.UUID) error {
	for id, ci := range r.s.cartItems {
		if ci.CartID == cartID {
			delete(r.s.cartItems, id)
		}
	}
	return nil
}

func (r *fakeCartItemRepo) TotalItemCount(_ context.Context, cartID uuid.UUID) (float64, error) {
	var total float64
	for _, ci := range r.s.cartItems {
		if ci.CartID != cartID {
			continue
		}
		bi := r.s.branchItems[ci.BranchItemID]
		if bi == nil {
			continue
		}
		item := r.s.items[bi.ItemID]
		if item != nil && item.SellByUnit {
			total += ci.Quantity
		} else {
			total++
		}
	}
	return total, nil
}

type fakeTransactionRepo struct{ s *memStore }

func (r *fakeTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	ensureID(&t.ID)
	cp := *t
	r.s.transactions[t.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	if t, ok := r.s.transactions[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTransactionRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	cp := *t
	r.s.transactions[t.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) CountByBranchBetween(_ context.Context, branchID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	for _, t := range r.s.transactions {
		if t.BranchID == branchID && !t.TransactionDate.Before(from) && !t.TransactionDate.After(to) {
			count++
		}
	}
	return count, nil
}

func (r *fakeTransactionRepo) List(_ context.Context, params *repository.TransactionFilterParams) ([]repository.TransactionListRow, int64, error) {
	var rows []repository.TransactionListRow
	for _, t := range r.s.transactions {
		if params.BranchID != nil && t.BranchID != *params.BranchID {
			continue
		}
		if params.Search != "" && !strings.Contains(t.SlipNo, params.Search) {
			continue
		}
		row := repository.TransactionListRow{
			ID:              t.ID,
			TotalAmount:     t.TotalAmount,
			SlipNo:          t.SlipNo,
			TransactionDate: t.TransactionDate,
			IsVoided:        t.IsVoided,
		}
		if u := r.s.users[t.CashierID]; u != nil {
			row.CashierName = u.Name
		}
		if b := r.s.branches[t.BranchID]; b != nil {
			row.BranchName = b.Name
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TransactionDate.After(rows[j].TransactionDate) })
	return rows, int64(len(rows)), nil
}

func (r *fakeTransactionRepo) Oldest(_ context.Context, branchID uuid.UUID) (*entity.Transaction, error) {
	var oldest *entity.Transaction
	for _, t := range r.s.transactions {
		if branchID != uuid.Nil && t.BranchID != branchID {
			continue
		}
		if oldest == nil || t.TransactionDate.Before(oldest.TransactionDate) {
			oldest = t
		}
	}
	if oldest == nil {
		return nil, nil
	}
	cp := *oldest
	return &cp, nil
}

type fakeTransactionItemRepo struct{ s *memStore }

func (r *fakeTransactionItemRepo) Create(_ context.Context, ti *entity.TransactionItem) error {
	ensureID(&ti.ID)
	cp := *ti
	r.s.transactionItems[ti.ID] = &cp
	return nil
}

func (r *fakeTransactionItemRepo) Update(_ context.Context, ti *entity.TransactionItem) error {
	cp := *ti
	r.s.transactionItems[ti.ID] = &cp
	return nil
}

func (r *fakeTransactionItemRepo) ListByTransaction(_ context.Context, transactionID uuid.UUID) ([]entity.TransactionItem, error) {
	var out []entity.TransactionItem
	for _, ti := range r.s.transactionItems {
		if ti.TransactionID == transactionID {
			out = append(out, *ti)
		}
	}
	return out, nil
}

func (r *fakeTransactionItemRepo) ListLineSummaries(_ context.Context, transactionID uuid.UUID) ([]repository.TransactionLineSummary, error) {
	var out []repository.TransactionLineSummary
	for _, ti := range r.s.transactionItems {
		if ti.TransactionID != transactionID {
			continue
		}
		line := repository.TransactionLineSummary{
			ID:       ti.ID,
			ItemID:   ti.ItemID,
			Quantity: ti.Quantity,
		}
		if item := r.s.items[ti.ItemID]; item != nil {
			line.ItemName = item.Name
		}
		out = append(out, line)
	}
	return out, nil
}

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	ensureID(&c.ID)
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	if c, ok := r.s.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.s.customers {
		if params.BranchID != nil && (c.BranchID == nil || *c.BranchID != *params.BranchID) {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeLoyaltyRepo struct{ s *memStore }

func (r *fakeLoyaltyRepo) ListStages(_ context.Context) ([]entity.LoyaltyStage, error) {
	out := make([]entity.LoyaltyStage, 0, len(r.s.stages))
	for _, st := range r.s.stages {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StageOrder < out[j].StageOrder })
	return out, nil
}

func (r *fakeLoyaltyRepo) GetStageByOrder(_ context.Context, order int) (*entity.LoyaltyStage, error) {
	for _, st := range r.s.stages {
		if st.StageOrder == order {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLoyaltyRepo) ListCustomerStages(_ context.Context, customerID uuid.UUID) ([]entity.LoyaltyCustomer, error) {
	var out []entity.LoyaltyCustomer
	for _, cs := range r.s.customerStages {
		if cs.CustomerID == customerID {
			out = append(out, *cs)
		}
	}
	return out, nil
}

func (r *fakeLoyaltyRepo) CreateCustomerStage(_ context.Context, cs *entity.LoyaltyCustomer) error {
	ensureID(&cs.ID)
	cp := *cs
	r.s.customerStages[cs.ID] = &cp
	return nil
}

func (r *fakeLoyaltyRepo) UpdateCustomerStage(_ context.Context, cs *entity.LoyaltyCustomer) error {
	cp := *cs
	r.s.customerStages[cs.ID] = &cp
	return nil
}

func (r *fakeLoyaltyRepo) LatestCompletedStage(_ context.Context, customerID uuid.UUID) (*repository.LatestStageResult, error) {
	var best *repository.LatestStageResult
	for _, cs := range r.s.customerStages {
		if cs.CustomerID != customerID || !cs.IsDone {
			continue
		}
		stage := r.s.stages[cs.StageID]
		if stage == nil {
			continue
		}
		if best == nil || stage.StageOrder > best.StageOrder {
			best = &repository.LatestStageResult{
				LoyaltyCustomerID: cs.ID,
				StageOrder:        stage.StageOrder,
				ItemRewardID:      stage.ItemRewardID,
			}
		}
	}
	return best, nil
}

func (r *fakeLoyaltyRepo) GetRewardByID(_ context.Context, id uuid.UUID) (*entity.ItemReward, error) {
	if rw, ok := r.s.rewards[id]; ok {
		cp := *rw
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeLoyaltyRepo) CreateStage(_ context.Context, st *entity.LoyaltyStage) error {
	ensureID(&st.ID)
	cp := *st
	r.s.stages[st.ID] = &cp
	return nil
}

func (r *fakeLoyaltyRepo) CreateReward(_ context.Context, rw *entity.ItemReward) error {
	ensureID(&rw.ID)
	cp := *rw
	r.s.rewards[rw.ID] = &cp
	return nil
}

// fakeUnitOfWork runs the callback against the shared store without
// rollback; tests only assert along paths where no partial writes happen
// before an error.
type fakeUnitOfWork struct{ s *memStore }

func (u *fakeUnitOfWork) Do(_ context.Context, fn func(repos *repository.TxRepos) error) error {
	return fn(&repository.TxRepos{
		Carts:            &fakeCartRepo{s: u.s},
		CartItems:        &fakeCartItemRepo{s: u.s},
		Items:            &fakeItemRepo{s: u.s},
		BranchItems:      &fakeBranchItemRepo{s: u.s},
		Transactions:     &fakeTransactionRepo{s: u.s},
		TransactionItems: &fakeTransactionItemRepo{s: u.s},
		Customers:        &fakeCustomerRepo{s: u.s},
	})
}
