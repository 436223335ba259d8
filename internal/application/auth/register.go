package auth

import (
	"context"

	"github.com/flowdeck/workflow-service/internal/domain"
)

// Register creates a user from credentials. Email uniqueness is enforced by
// the repo's storage constraint, so two concurrent registrations of the same
// email resolve to exactly one success.
func (s *Service) Register(ctx context.Context, email, password string) (RegisterResult, error) {
	if email == "" || password == "" {
		return RegisterResult{}, domain.ErrMissingCredentials()
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	created, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return RegisterResult{}, err
	}

	return RegisterResult{ID: created.ID, Email: created.Email}, nil
}
