package request

// CreateItemRequest represents a catalog item creation request
type CreateItemRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=255"`
	Code       string  `json:"code" binding:"required,max=100"`
	Category   string  `json:"category" binding:"max=100"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	Cost       float64 `json:"cost" binding:"gte=0"`
	SellByUnit bool    `json:"sell_by_unit"`
}

// AdjustStockRequest represents a stock adjustment; positive delta
// receives stock, negative issues it.
type AdjustStockRequest struct {
	ItemID string  `json:"item_id" binding:"required,uuid"`
	Delta  float64 `json:"delta" binding:"required"`
}

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=255"`
	Phone string `json:"phone" binding:"max=50"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=255"`
	Phone string `json:"phone" binding:"max=50"`
}
