package handler

import (
	"github.com/bpims/pos-api/internal/application/service"
	"github.com/bpims/pos-api/internal/presentation/http/dto/request"
	"github.com/bpims/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart returns the register's cart with enriched lines
// @Summary Get cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	detail, count, err := h.cartService.GetCartAndItems(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved", gin.H{
		"cart":       detail.Cart,
		"cart_items": detail.Items,
		"item_count": count,
	})
}

// AddItem adds an item to the cart
// @Summary Add item to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body request.AddCartItemRequest true "Item and quantity"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	cart, err := h.cartService.GetCartForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.cartService.AddItemToCart(c.Request.Context(), cart.ID, itemID, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to cart", nil)
}

// UpdateItem changes a cart line's quantity
// @Summary Update cart item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Cart item ID"
// @Success 200 {object} response.APIResponse
// @Router /cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartItemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart item ID")
		return
	}

	var req request.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cartService.UpdateItemQuantity(c.Request.Context(), cartItemID, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart item updated", nil)
}

// RemoveItem deletes a cart line
// @Summary Remove cart item
// @Tags cart
// @Produce json
// @Param id path string true "Cart item ID"
// @Success 200 {object} response.APIResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartItemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart item ID")
		return
	}

	if err := h.cartService.RemoveCartItem(c.Request.Context(), cartItemID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart item removed", nil)
}

// Clear empties the cart
// @Summary Clear cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	cart, err := h.cartService.GetCartForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), cart.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared", nil)
}

// UpdateDiscount sets the cart discount
// @Summary Update cart discount
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart/discount [put]
func (h *CartHandler) UpdateDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.GetCartForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.cartService.UpdateDiscount(c.Request.Context(), cart.ID, req.Discount); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount updated", nil)
}

// UpdateDeliveryFee sets the cart delivery fee
// @Summary Update cart delivery fee
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart/delivery-fee [put]
func (h *CartHandler) UpdateDeliveryFee(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateDeliveryFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.GetCartForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.cartService.UpdateDeliveryFee(c.Request.Context(), cart.ID, req.DeliveryFee); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery fee updated", nil)
}

// UpdateCustomer attaches or detaches the cart's customer
// @Summary Update cart customer
// @Tags cart
// @Accept json
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart/customer [put]
func (h *CartHandler) UpdateCustomer(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateCartCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &id
	}

	cart, err := h.cartService.GetCartForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.cartService.UpdateCustomer(c.Request.Context(), cart.ID, customerID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart customer updated", nil)
}
