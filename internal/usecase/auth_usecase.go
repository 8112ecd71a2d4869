package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"mecanica_os/internal/domain/entities"
	"mecanica_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUser        = errors.New("invalid user data")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid perfil")
)

// IAuthUseCase exposes login and user registration.
//
// Login exchanges documento + senha for a signed token; the token service is
// the only component that touches signing. Registration is ADMIN-gated.

type IAuthUseCase interface {
	Login(ctx context.Context, document, password string) (string, entities.User, error)
	CreateUser(ctx context.Context, actor *entities.Actor, name, document, email, password string, role entities.Role, capabilities []string) (entities.User, error)
}

type AuthUseCase struct {
	userRepo interfaces.IUserRepository
	tokens   interfaces.ITokenService
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(userRepo interfaces.IUserRepository, tokens interfaces.ITokenService) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokens: tokens}
}

func (u *AuthUseCase) Login(ctx context.Context, document, password string) (string, entities.User, error) {
	document = strings.TrimSpace(document)
	if document == "" || password == "" {
		return "", entities.User{}, ErrInvalidCredentials
	}

	user, err := u.userRepo.GetByDocument(ctx, document)
	if err != nil {
		return "", entities.User{}, err
	}
	if user.ID == "" {
		// Same error as a wrong senha so login probing can't tell the cases apart.
		return "", entities.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", entities.User{}, ErrInvalidCredentials
	}

	token, err := u.tokens.Generate(user)
	if err != nil {
		return "", entities.User{}, err
	}
	return token, user, nil
}

func (u *AuthUseCase) CreateUser(ctx context.Context, actor *entities.Actor, name, document, email, password string, role entities.Role, capabilities []string) (entities.User, error) {
	if err := entities.Authorize(actor, entities.RoleAdmin); err != nil {
		return entities.User{}, err
	}

	name = strings.TrimSpace(name)
	document = strings.TrimSpace(document)
	email = strings.TrimSpace(email)
	if name == "" || document == "" || password == "" {
		return entities.User{}, ErrInvalidUser
	}
	switch role {
	case entities.RoleCliente, entities.RoleMecanico, entities.RoleAdmin:
	default:
		return entities.User{}, ErrInvalidRole
	}

	if existing, err := u.userRepo.GetByDocument(ctx, document); err != nil {
		return entities.User{}, err
	} else if existing.ID != "" {
		return entities.User{}, ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, err
	}

	now := time.Now().UTC()
	user := entities.User{
		ID:           uuid.NewString(),
		Name:         name,
		Document:     document,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Capabilities: capabilities,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return u.userRepo.Create(ctx, user)
}
