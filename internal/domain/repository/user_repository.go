package repository

import (
	"context"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// BranchRepository defines the interface for branch data operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	GetByCode(ctx context.Context, code int) (*entity.Branch, error)
	List(ctx context.Context) ([]entity.Branch, error)
}
