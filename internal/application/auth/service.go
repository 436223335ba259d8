package auth

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
	}
}

// RegisterResult carries only public identity fields; the password hash
// never leaves the service.
type RegisterResult struct {
	ID    int64
	Email string
}

type LoginResult struct {
	Token string
}
