package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/models"
	"medibook/utils"

	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Authenticate verifies credentials and issues a JWT. The token's hash is
// stored in the auth cache so it can be revoked before expiry.
func (s *DefaultUserService) Authenticate(email, password string) (*models.User, string, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := utils.GetAuthCacheClient().Set(ctx, utils.HashToken(token), u.ID, tokenTTL).Err(); err != nil {
		return nil, "", fmt.Errorf("failed to cache auth token: %w", err)
	}
	return u, token, nil
}

// RevokeToken drops the token's cache entry, invalidating it immediately.
func (s *DefaultUserService) RevokeToken(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := utils.GetAuthCacheClient().Del(ctx, utils.HashToken(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
