package handler

import (
	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/bpims/pos-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetBranchID extracts the branch ID from the Gin context; nil for
// headquarters users.
func GetBranchID(c *gin.Context) *uuid.UUID {
	branchIDVal, exists := c.Get("branch_id")
	if !exists {
		return nil
	}
	branchID, ok := branchIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &branchID
}

// GetRole extracts the user role from the Gin context
func GetRole(c *gin.Context) string {
	role, exists := c.Get("role")
	if !exists {
		return ""
	}
	r, ok := role.(string)
	if !ok {
		return ""
	}
	return r
}

// IsHQ checks if the authenticated user is a headquarters user
func IsHQ(c *gin.Context) bool {
	return GetRole(c) == entity.RoleHQ
}

// BindPagination reads page/per_page query parameters with defaults
func BindPagination(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	_ = c.ShouldBindQuery(params)
	params.Validate()
	return params
}
