package service

import (
	"context"
	"time"

	"github.com/bpims/pos-api/internal/domain/repository"
	"github.com/bpims/pos-api/pkg/apperror"
	"github.com/google/uuid"
)

// ReportService serves the daily sales and best-sellers reports
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// DailySales aggregates non-voided sales per calendar day over [from, to].
// A nil branchID aggregates across all branches.
func (s *ReportService) DailySales(ctx context.Context, branchID *uuid.UUID, from, to time.Time) ([]repository.DailySalesResult, error) {
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("End date must not be before start date")
	}
	return s.reportRepo.DailySales(ctx, branchID, from, to)
}

// TopItems lists the best-selling items by quantity sold.
func (s *ReportService) TopItems(ctx context.Context, branchID *uuid.UUID, limit int) ([]repository.TopItemResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.reportRepo.TopItems(ctx, branchID, limit)
}
