package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"techguide/backend/models"
	"techguide/backend/repository"
	"techguide/backend/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotAllowed     = errors.New("not allowed to assign this role")
)

type NewAccount struct {
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name" validate:"max=64"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"omitempty,role"`
}

type AccountService struct {
	users     UserStore
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAccountService(users UserStore, jwtSecret string, jwtTTL time.Duration) *AccountService {
	return &AccountService{users: users, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

func (s *AccountService) create(ctx context.Context, in NewAccount, role models.Role, verified bool) (models.User, error) {
	if err := utils.Validate.Struct(in); err != nil {
		return models.User{}, err
	}
	user := models.User{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         in.Email,
		Role:          role,
		EmailVerified: verified,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return models.User{}, err
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Register signs a user up as a student. Any requested role is ignored.
func (s *AccountService) Register(ctx context.Context, in NewAccount) (models.User, string, error) {
	in.Role = ""
	user, err := s.create(ctx, in, models.RoleStudent, false)
	if err != nil {
		return models.User{}, "", err
	}
	token, err := utils.GenerateJWTToken(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}
	if err := user.CheckPassword(password); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}
	token, err := utils.GenerateJWTToken(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// CreatePrivileged creates an already verified account on behalf of staff.
// Admins may assign any role; instructors may only create students.
func (s *AccountService) CreatePrivileged(ctx context.Context, actor models.Role, in NewAccount) (models.User, error) {
	role := models.RoleStudent
	if in.Role != "" {
		role = models.ParseRole(in.Role)
	}
	switch actor {
	case models.RoleAdmin:
	case models.RoleInstructor:
		if role != models.RoleStudent {
			return models.User{}, ErrRoleNotAllowed
		}
	default:
		return models.User{}, ErrRoleNotAllowed
	}

	user, err := s.create(ctx, in, role, true)
	if err != nil {
		return models.User{}, err
	}
	zerolog.Ctx(ctx).Info().
		Str("user_id", user.ID.String()).
		Str("role", string(user.Role)).
		Str("created_by", string(actor)).
		Msg("account created")
	return user, nil
}

func (s *AccountService) UpdateName(ctx context.Context, id uuid.UUID, first, last string) (models.User, error) {
	return s.users.UpdateName(ctx, id, strings.TrimSpace(first), strings.TrimSpace(last))
}

func (s *AccountService) ChangeRole(ctx context.Context, id uuid.UUID, raw string) (models.User, error) {
	if !models.ValidRole(raw) {
		return models.User{}, ErrRoleNotAllowed
	}
	return s.users.UpdateRole(ctx, id, models.ParseRole(raw))
}

func (s *AccountService) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	return s.users.List(ctx, page, pageSize)
}
