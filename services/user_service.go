package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"coursebuilder/models"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

// UserService registers the instructors and students courses refer to.
type UserService struct {
	store    Store
	hashCost int
}

func NewUserService(store Store, hashCost int) *UserService {
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	return &UserService{store: store, hashCost: hashCost}
}

// CreateUser stores a user; the password, when given, is kept as a bcrypt hash.
func (s *UserService) CreateUser(ctx context.Context, name, email string, role models.Role, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, &ValidationError{Kind: KindInvalidUser, Field: "name", Message: "Name is required"}
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, &ValidationError{Kind: KindInvalidUser, Field: "email", Message: "Email is invalid"}
	}
	if !role.Valid() {
		return nil, &ValidationError{Kind: KindInvalidUser, Field: "role", Message: "Role must be STUDENT or INSTRUCTOR"}
	}

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return nil, duplicateEmail()
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	user := &models.User{Name: name, Email: email, Role: role}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, duplicateEmail()
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func duplicateEmail() error {
	return &ValidationError{Kind: KindDuplicateEmail, Field: "email", Message: "Email already registered"}
}
