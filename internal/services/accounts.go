package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/models"
	"github.com/monocle-dev/planboard/internal/store"
	"github.com/monocle-dev/planboard/internal/types"
)

func (s *Service) Register(ctx context.Context, req types.RegisterRequest) (types.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return types.AuthResponse{}, err
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
	}

	err = s.inTx(ctx, func(r *store.Resolver) error {
		_, err := r.GetUserByEmail(ctx, email)

		if err == nil {
			return apperr.Conflict("email already exists")
		}

		if !apperr.IsNotFound(err, apperr.KindUser) {
			return err
		}

		if err := r.DB(ctx).Create(&user).Error; err != nil {
			if store.IsUniqueViolation(err) {
				return apperr.Conflict("email already exists")
			}
			return fmt.Errorf("create user: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.AuthResponse{}, err
	}

	return s.authResponse(user)
}

// Authenticate checks a password against the stored credential. Unknown
// accounts and wrong passwords fail identically.
func (s *Service) Authenticate(ctx context.Context, email, password string) (auth.Principal, error) {
	user, err := s.resolver.GetUserByEmail(ctx, normalizeEmail(email))

	if err != nil {
		if !apperr.IsNotFound(err, apperr.KindUser) {
			return auth.Principal{}, err
		}
		// Spend the same comparison cost as for a real account.
		s.passwords.Matches(s.placeholderHash(), password)
		return auth.Principal{}, apperr.ErrInvalidCredentials
	}

	if !s.passwords.Matches(user.PasswordHash, password) {
		return auth.Principal{}, apperr.ErrInvalidCredentials
	}

	return auth.Principal{Email: user.Email}, nil
}

func (s *Service) Login(ctx context.Context, req types.LoginRequest) (types.AuthResponse, error) {
	principal, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return types.AuthResponse{}, err
	}

	user, err := s.resolver.GetUserByEmail(ctx, principal.Email)
	if err != nil {
		if apperr.IsNotFound(err, apperr.KindUser) {
			return types.AuthResponse{}, apperr.ErrInvalidCredentials
		}
		return types.AuthResponse{}, err
	}

	return s.authResponse(*user)
}

func (s *Service) Me(ctx context.Context, principal auth.Principal) (types.UserResponse, error) {
	user, err := actor(ctx, s.resolver, principal)
	if err != nil {
		return types.UserResponse{}, err
	}

	return types.NewUserResponse(*user), nil
}

func (s *Service) UpdateProfile(ctx context.Context, principal auth.Principal, req types.UpdateProfileRequest) (types.UserResponse, error) {
	var user *models.User

	err := s.inTx(ctx, func(r *store.Resolver) error {
		var err error

		user, err = actor(ctx, r, principal)
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})

		if name := trimmed(req.Name); name != nil {
			if *name == "" {
				return apperr.Invalid("name", "must not be blank")
			}
			updates["name"] = *name
		}

		if req.NewPassword != nil {
			if req.CurrentPassword == "" {
				return apperr.Invalid("current_password", "is required to change password")
			}

			if !s.passwords.Matches(user.PasswordHash, req.CurrentPassword) {
				return apperr.Invalid("current_password", "is incorrect")
			}

			hash, err := s.passwords.Hash(*req.NewPassword)
			if err != nil {
				return err
			}
			updates["password_hash"] = hash
		}

		if len(updates) == 0 {
			return apperr.Invalid("body", "no valid fields to update")
		}

		if err := r.DB(ctx).Model(user).Updates(updates).Error; err != nil {
			return fmt.Errorf("update user: %w", err)
		}

		user, err = r.GetUser(ctx, user.ID)
		return err
	})

	if err != nil {
		return types.UserResponse{}, err
	}

	return types.NewUserResponse(*user), nil
}

func (s *Service) authResponse(user models.User) (types.AuthResponse, error) {
	token, err := s.tokens.Issue(auth.Principal{Email: user.Email})
	if err != nil {
		return types.AuthResponse{}, err
	}

	return types.AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.TTL()).UTC(),
		User:      types.NewUserResponse(user),
	}, nil
}

func (s *Service) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.passwords.Hash("planboard-placeholder-credential")
		if err != nil {
			s.log.WithError(err).Warn("failed to prepare placeholder credential")
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
