package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowdeck/workflow-service/internal/domain"
)

// fakeUserRepo is an in-memory UserRepo for service tests. It records calls
// so tests can assert the service never touched storage on a given path.
type fakeUserRepo struct {
	users map[string]domain.User

	nextID int64

	getCalls    int
	createCalls int

	failCreate error
	failGet    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]domain.User),
		nextID: 1,
	}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	f.getCalls++
	if f.failGet != nil {
		return domain.User{}, f.failGet
	}
	u, ok := f.users[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, email, passwordHash string) (domain.User, error) {
	f.createCalls++
	if f.failCreate != nil {
		return domain.User{}, f.failCreate
	}
	if _, ok := f.users[email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	u := domain.User{ID: f.nextID, Email: email, PasswordHash: passwordHash}
	f.nextID++
	f.users[email] = u
	return u, nil
}

// fakeHasher avoids the cost of real bcrypt in service tests. "Hashing" is a
// reversible prefix so Compare can verify round-trips.
type fakeHasher struct {
	failHash bool
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.failHash {
		return "", errors.New("hash exploded")
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeSigner struct {
	failSign    bool
	signedCalls int
}

func (f *fakeSigner) SignAccessToken(userID int64, email string) (string, error) {
	f.signedCalls++
	if f.failSign {
		return "", domain.ErrTokenSignFailed(errors.New("sign exploded"))
	}
	return fmt.Sprintf("token-%d-%s", userID, email), nil
}

func (f *fakeSigner) VerifyAccessToken(string) (TokenClaims, error) {
	return TokenClaims{}, errors.New("not used in these tests")
}
