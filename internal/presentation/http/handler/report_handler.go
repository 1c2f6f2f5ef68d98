package handler

import (
	"strconv"
	"time"

	"github.com/bpims/pos-api/internal/application/service"
	"github.com/bpims/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler handles sales reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) resolveBranch(c *gin.Context) (*uuid.UUID, bool) {
	if IsHQ(c) {
		if raw := c.Query("branch_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.BadRequest(c, "Invalid branch ID")
				return nil, false
			}
			return &id, true
		}
		return nil, true
	}

	branchID := GetBranchID(c)
	if branchID == nil {
		response.Forbidden(c, "User has no branch assignment")
		return nil, false
	}
	return branchID, true
}

// DailySales returns per-day sales aggregates
// @Summary Daily sales report
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /reports/daily-sales [get]
func (h *ReportHandler) DailySales(c *gin.Context) {
	branchID, ok := h.resolveBranch(c)
	if !ok {
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid from date")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid to date")
			return
		}
		to = parsed.Add(24*time.Hour - time.Second)
	}

	rows, err := h.reportService.DailySales(c.Request.Context(), branchID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales retrieved", rows)
}

// TopItems returns the best sellers
// @Summary Best sellers report
// @Tags reports
// @Produce json
// @Param limit query int false "Row limit"
// @Success 200 {object} response.APIResponse
// @Router /reports/top-items [get]
func (h *ReportHandler) TopItems(c *gin.Context) {
	branchID, ok := h.resolveBranch(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.reportService.TopItems(c.Request.Context(), branchID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top items retrieved", rows)
}
