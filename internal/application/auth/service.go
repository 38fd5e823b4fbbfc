package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	"github.com/lot-pos/lot-api/internal/domain/repository"
	"github.com/lot-pos/lot-api/pkg/jwt"
	"github.com/lot-pos/lot-api/pkg/logger"
)

// Service registro, autenticación y administración de usuarios.
type Service struct {
	users      repository.UserRepository
	log        *logger.Logger
	jwtSecret  string
	jwtIssuer  string
	jwtExpMins int
}

// NewService construye el servicio de autenticación.
func NewService(users repository.UserRepository, log *logger.Logger, jwtSecret, jwtIssuer string, jwtExpMins int) *Service {
	return &Service{
		users:      users,
		log:        log,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		jwtExpMins: jwtExpMins,
	}
}

// SignUp registra un usuario nuevo. Si no se indica rol, se asigna Employee.
func (s *Service) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: username, email y password (mínimo 8 caracteres) son obligatorios", domain.ErrInvalidInput)
	}

	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}

	if existing, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// SignIn autentica credenciales y emite un JWT con el rol del usuario.
func (s *Service) SignIn(ctx context.Context, in dto.SignInRequest) (*dto.AuthenticatedUserResponse, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(s.jwtSecret, user.ID, user.Role, s.jwtIssuer, s.jwtExpMins)
	if err != nil {
		return nil, err
	}

	return &dto.AuthenticatedUserResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// GetUser obtiene un usuario por id.
func (s *Service) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ListUsers lista todos los usuarios.
func (s *Service) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// ChangeRole cambia el rol de un usuario. Solo administradores llegan aquí;
// la autorización la aplica el middleware de rutas.
func (s *Service) ChangeRole(ctx context.Context, id int64, newRole string) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := user.ChangeRole(newRole); err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, user.ID, user.Role); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("rol de usuario actualizado")
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
