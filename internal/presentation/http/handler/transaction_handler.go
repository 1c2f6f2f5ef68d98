package handler

import (
	"github.com/bpims/pos-api/internal/application/service"
	"github.com/bpims/pos-api/internal/presentation/http/dto/request"
	"github.com/bpims/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles checkout and the transaction register
type TransactionHandler struct {
	paymentService     *service.PaymentService
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(paymentService *service.PaymentService, transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		paymentService:     paymentService,
		transactionService: transactionService,
	}
}

// Checkout settles the register's cart
// @Summary Process payment
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body request.CheckoutRequest true "Amount received"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /checkout [post]
func (h *TransactionHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), *userID, req.AmountReceived)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment processed", result)
}

// List pages through the register's transactions
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param page query int false "Page"
// @Param search query string false "Slip number search"
// @Success 200 {object} response.APIResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	params := BindPagination(c)
	search := c.Query("search")

	// Headquarters sees every branch; cashiers only their own.
	if IsHQ(c) {
		var branchID *uuid.UUID
		if raw := c.Query("branch_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.BadRequest(c, "Invalid branch ID")
				return
			}
			branchID = &id
		}
		result, err := h.transactionService.ListTransactionsHQ(c.Request.Context(), branchID, params, search)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.SuccessWithPagination(c, 200, "Transactions retrieved", result)
		return
	}

	branchID := GetBranchID(c)
	if branchID == nil {
		response.Forbidden(c, "User has no branch assignment")
		return
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), *branchID, params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved", result)
}

// Get returns one transaction's full slip detail
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.APIResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	transaction, err := h.transactionService.GetTransactionHistory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved", transaction)
}

// Void reverses a transaction
// @Summary Void transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /transactions/{id}/void [post]
func (h *TransactionHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.VoidTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction voided", nil)
}

// Oldest returns the earliest transaction on record
// @Summary Get oldest transaction
// @Tags transactions
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /transactions/oldest [get]
func (h *TransactionHandler) Oldest(c *gin.Context) {
	branchID := uuid.Nil
	if !IsHQ(c) {
		id := GetBranchID(c)
		if id == nil {
			response.Forbidden(c, "User has no branch assignment")
			return
		}
		branchID = *id
	} else if raw := c.Query("branch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID")
			return
		}
		branchID = id
	}

	transaction, err := h.transactionService.GetOldestTransaction(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if transaction == nil {
		response.OK(c, "No transactions recorded", nil)
		return
	}

	response.OK(c, "Oldest transaction retrieved", transaction)
}
