package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DailySalesResult is one reporting bucket of the branch sales report
type DailySalesResult struct {
	Day              time.Time `json:"day"`
	TransactionCount int64     `json:"transaction_count"`
	TotalSales       float64   `json:"total_sales"`
	TotalProfit      float64   `json:"total_profit"`
}

// TopItemResult is one row of the best-sellers report
type TopItemResult struct {
	ItemID       uuid.UUID `json:"item_id"`
	ItemName     string    `json:"item_name"`
	ItemCode     string    `json:"item_code"`
	QuantitySold float64   `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
}

// ReportRepository defines the interface for sales reporting queries
type ReportRepository interface {
	// DailySales aggregates non-voided transactions per calendar day;
	// nil branchID aggregates across all branches.
	DailySales(ctx context.Context, branchID *uuid.UUID, from, to time.Time) ([]DailySalesResult, error)
	TopItems(ctx context.Context, branchID *uuid.UUID, limit int) ([]TopItemResult, error)
}
