package repository

import (
	"context"

	"github.com/eventdesk/backend/domain"
)

// UserRepository persists dashboard accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	SetBan(ctx context.Context, id string, banDuration string) error
	Delete(ctx context.Context, id string) error
}
