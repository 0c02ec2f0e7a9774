package repository

import (
	"context"

	"github.com/taskgrid/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, role domain.Role) ([]domain.User, error)
	Summaries(ctx context.Context, ids []string) ([]domain.UserSummary, error)
}
