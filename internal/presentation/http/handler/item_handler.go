package handler

import (
	"math"
	"strconv"

	"github.com/bpims/pos-api/internal/application/service"
	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/internal/presentation/http/dto/request"
	"github.com/bpims/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ItemHandler handles catalog and stock HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List pages through the branch's stock
// @Summary List branch items
// @Tags items
// @Produce json
// @Param page query int false "Page"
// @Param search query string false "Item name search"
// @Param category query string false "Category filter"
// @Success 200 {object} response.APIResponse
// @Router /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	branchID := GetBranchID(c)
	if branchID == nil {
		response.Forbidden(c, "User has no branch assignment")
		return
	}

	params := BindPagination(c)
	result, err := h.itemService.ListBranchItems(c.Request.Context(), *branchID, params, c.Query("search"), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved", result)
}

// Get returns one catalog item
// @Summary Get item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.APIResponse
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved", item)
}

// Create adds a catalog item
// @Summary Create item
// @Tags items
// @Accept json
// @Produce json
// @Param request body request.CreateItemRequest true "Item"
// @Success 201 {object} response.APIResponse
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item := &entity.Item{
		Name:       req.Name,
		Code:       req.Code,
		Category:   req.Category,
		Price:      int64(math.Round(req.Price * 100)),
		Cost:       int64(math.Round(req.Cost * 100)),
		SellByUnit: req.SellByUnit,
	}

	if err := h.itemService.CreateItem(c.Request.Context(), item); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created", item)
}

// LowStock lists stock rows at or below a threshold
// @Summary List low stock
// @Tags items
// @Produce json
// @Param threshold query number false "Quantity threshold"
// @Success 200 {object} response.APIResponse
// @Router /items/low-stock [get]
func (h *ItemHandler) LowStock(c *gin.Context) {
	branchID := GetBranchID(c)
	if branchID == nil {
		response.Forbidden(c, "User has no branch assignment")
		return
	}

	threshold, _ := strconv.ParseFloat(c.DefaultQuery("threshold", "10"), 64)

	rows, err := h.itemService.ListLowStock(c.Request.Context(), *branchID, threshold)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock retrieved", rows)
}

// AdjustStock receives or issues stock for the branch
// @Summary Adjust stock
// @Tags items
// @Accept json
// @Produce json
// @Param request body request.AdjustStockRequest true "Adjustment"
// @Success 200 {object} response.APIResponse
// @Router /items/stock [post]
func (h *ItemHandler) AdjustStock(c *gin.Context) {
	branchID := GetBranchID(c)
	if branchID == nil {
		response.Forbidden(c, "User has no branch assignment")
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	branchItem, err := h.itemService.AdjustStock(c.Request.Context(), *branchID, itemID, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted", branchItem)
}
