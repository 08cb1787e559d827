package app

import (
	"errors"
	"strings"
	"time"

	"portfolio-backend/internal/model"
	"portfolio-backend/internal/pkg/jwtutil"
	"portfolio-backend/internal/pkg/passhash"
	"portfolio-backend/internal/repository"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateEmail = errors.New("email is already registered")
	ErrNoSuchAccount  = errors.New("no account found with this email")
	ErrWrongPassword  = errors.New("incorrect password")
)

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtAlgorithm  string
	jwtExpiration time.Duration
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret, jwtAlgorithm string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtAlgorithm:  jwtAlgorithm,
		jwtExpiration: jwtExpiration,
	}
}

// Signup creates a new active account. The plaintext password is hashed
// immediately and only the hash is persisted.
func (s *AuthService) Signup(input SignupInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := passhash.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and issues a bearer token whose subject is
// the account email. Unknown email and bad password stay distinct kinds;
// neither reveals more than its documented meaning.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoSuchAccount
	}

	ok, err := passhash.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWrongPassword
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtAlgorithm, s.jwtExpiration, user.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, TokenType: "bearer"}, nil
}

// GetUserByEmail resolves a token subject to its account. Lookups always hit
// the database; account state must be fresh at verification time.
func (s *AuthService) GetUserByEmail(email string) (*model.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrInvalidInput
	}
	return s.userRepo.GetByEmail(email)
}
