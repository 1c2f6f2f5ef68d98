package request

// AddCartItemRequest represents an add-to-cart request
type AddCartItemRequest struct {
	ItemID   string  `json:"item_id" binding:"required,uuid"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItemRequest represents a cart line quantity change
type UpdateCartItemRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// UpdateDiscountRequest represents a cart discount change
type UpdateDiscountRequest struct {
	Discount float64 `json:"discount" binding:"gte=0"`
}

// UpdateDeliveryFeeRequest represents a cart delivery fee change
type UpdateDeliveryFeeRequest struct {
	DeliveryFee float64 `json:"delivery_fee" binding:"gte=0"`
}

// UpdateCartCustomerRequest attaches a customer to the cart; an empty
// customer_id detaches.
type UpdateCartCustomerRequest struct {
	CustomerID string `json:"customer_id" binding:"omitempty,uuid"`
}

// CheckoutRequest represents a payment request for the current cart
type CheckoutRequest struct {
	AmountReceived float64 `json:"amount_received" binding:"required,gt=0"`
}
