package admin

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventdesk/backend/domain"
	"github.com/eventdesk/backend/repository"
)

// BanIndefinite is the suspension marker written when an account is blocked
// with no end date.
const BanIndefinite = "none"

// UseCase implements account administration. The configured root admin email
// identifies the one account exempt from demotion, suspension and deletion.
type UseCase struct {
	users     repository.UserRepository
	rootEmail string
	logger    *zap.Logger
}

func New(users repository.UserRepository, rootEmail string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:     users,
		rootEmail: strings.ToLower(strings.TrimSpace(rootEmail)),
		logger:    logger,
	}
}

// ListUsers returns every account, newest first.
func (uc *UseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, domain.PersistenceFailure(err)
	}
	return users, nil
}

// CreateUser registers a new account. Role defaults to staff when empty.
func (uc *UseCase) CreateUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if name == "" || email == "" || len(password) < 6 {
		return nil, domain.ErrInvalidPayload
	}
	if role == "" {
		role = domain.RoleStaff
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to hash password", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, domain.PersistenceFailure(err)
	}
	uc.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

// ChangeRole promotes or demotes an account. The root admin cannot be
// demoted.
func (uc *UseCase) ChangeRole(ctx context.Context, userID string, role domain.Role) error {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return err
	}
	target, err := uc.target(ctx, userID)
	if err != nil {
		return err
	}
	if uc.isRoot(target) && role != domain.RoleAdmin {
		return domain.ErrRootAdmin
	}
	if err := uc.users.UpdateRole(ctx, userID, role); err != nil {
		return domain.PersistenceFailure(err)
	}
	uc.logger.Info("user role changed", zap.String("user_id", userID), zap.String("role", string(role)))
	return nil
}

// SetBlocked suspends or reinstates an account. The root admin cannot be
// blocked.
func (uc *UseCase) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	target, err := uc.target(ctx, userID)
	if err != nil {
		return err
	}
	if uc.isRoot(target) && blocked {
		return domain.ErrRootAdmin
	}

	marker := ""
	if blocked {
		marker = BanIndefinite
	}
	if err := uc.users.SetBan(ctx, userID, marker); err != nil {
		return domain.PersistenceFailure(err)
	}
	uc.logger.Info("user access changed", zap.String("user_id", userID), zap.Bool("blocked", blocked))
	return nil
}

// DeleteUser removes an account. The root admin cannot be deleted.
func (uc *UseCase) DeleteUser(ctx context.Context, userID string) error {
	target, err := uc.target(ctx, userID)
	if err != nil {
		return err
	}
	if uc.isRoot(target) {
		return domain.ErrRootAdmin
	}
	if err := uc.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return domain.PersistenceFailure(err)
	}
	uc.logger.Info("user deleted", zap.String("user_id", userID))
	return nil
}

func (uc *UseCase) target(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.PersistenceFailure(err)
	}
	return user, nil
}

func (uc *UseCase) isRoot(user *domain.User) bool {
	return uc.rootEmail != "" && strings.EqualFold(user.Email, uc.rootEmail)
}
