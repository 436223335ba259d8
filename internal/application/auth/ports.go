package auth

import (
	"context"

	"github.com/flowdeck/workflow-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth service needs, not HOW it's stored.
Create must enforce email uniqueness at the storage layer and return
domain.ErrEmailAlreadyExists on violation; a prior lookup is not an
acceptable substitute (check-then-insert races).
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies bearer tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID int64
	Email  string
}

type TokenSigner interface {
	SignAccessToken(userID int64, email string) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}
