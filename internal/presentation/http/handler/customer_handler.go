package handler

import (
	"github.com/bpims/pos-api/internal/application/service"
	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/presentation/http/dto/request"
	"github.com/bpims/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer book HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List pages through the customer book
// @Summary List customers
// @Tags customers
// @Produce json
// @Param page query int false "Page"
// @Param search query string false "Name search"
// @Success 200 {object} response.APIResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	params := BindPagination(c)

	var branchID *uuid.UUID
	if !IsHQ(c) {
		branchID = GetBranchID(c)
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), branchID, params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved", result)
}

// Get returns a customer with their loyalty progress
// @Summary Get customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	detail, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved", detail)
}

// Create adds a customer
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body request.CreateCustomerRequest true "Customer"
// @Success 201 {object} response.APIResponse
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer := &entity.Customer{
		Name:     req.Name,
		BranchID: GetBranchID(c),
	}
	if req.Phone != "" {
		customer.Phone = &req.Phone
	}

	if err := h.customerService.CreateCustomer(c.Request.Context(), customer); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created", customer)
}

// Update edits a customer
// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, req.Name, phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated", customer)
}

// Delete removes a customer
// @Summary Delete customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted", nil)
}
