package service

import (
	"context"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/domain/repository"
	"github.com/bpims/pos-api/pkg/apperror"
	"github.com/bpims/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerService manages the customer book and its loyalty view
type CustomerService struct {
	customerRepo   repository.CustomerRepository
	loyaltyService *LoyaltyService
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, loyaltyService *LoyaltyService) *CustomerService {
	return &CustomerService{
		customerRepo:   customerRepo,
		loyaltyService: loyaltyService,
	}
}

// CustomerDetail is a customer joined with their loyalty progress
type CustomerDetail struct {
	Customer   *entity.Customer `json:"customer"`
	StageOrder int              `json:"stage_order"`
	RewardName string           `json:"reward_name,omitempty"`
}

// CreateCustomer adds a customer to the book.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *entity.Customer) error {
	if customer.Name == "" {
		return apperror.NewBadRequestError("Customer name is required")
	}
	return s.customerRepo.Create(ctx, customer)
}

// GetCustomer returns a customer with their furthest completed loyalty
// stage attached.
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerDetail, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	detail := &CustomerDetail{Customer: customer}

	latest, reward, err := s.loyaltyService.LatestCompletedStage(ctx, id)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		detail.StageOrder = latest.StageOrder
		if reward != nil {
			detail.RewardName = reward.Name
		}
	}

	return detail, nil
}

// UpdateCustomer edits a customer's contact fields.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, name string, phone *string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if name != "" {
		customer.Name = name
	}
	if phone != nil {
		customer.Phone = phone
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers pages through the customer book with name search;
// branchID narrows to one branch's customers.
func (s *CustomerService) ListCustomers(ctx context.Context, branchID *uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, &repository.CustomerFilterParams{
		Pagination: params,
		Search:     search,
		BranchID:   branchID,
	})
	if err != nil {
		return nil, err
	}

	meta := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, meta), nil
}
