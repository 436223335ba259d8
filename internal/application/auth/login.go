package auth

import (
	"context"

	"github.com/flowdeck/workflow-service/internal/domain"
)

// Login authenticates a user and issues a bearer token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, domain.ErrMissingCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	token, err := s.signer.SignAccessToken(u.ID, u.Email)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token}, nil
}
