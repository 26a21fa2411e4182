package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"moviegenie/errs"
	"moviegenie/user"
)

var (
	ErrInvalidCredentials = errs.Errorf(errs.EUNAUTHORIZED, "invalid credentials")
	ErrAccountLocked      = errs.Errorf(errs.EUNAUTHORIZED, "account temporarily locked")
	ErrInvalidToken       = errs.Errorf(errs.EUNAUTHORIZED, "please authenticate")
	ErrInvalidOAuthUser   = errs.Errorf(errs.EUNAUTHORIZED, "invalid oauth user")
	ErrOAuthNotConfigured = errs.Errorf(errs.ENOTIMPLEMENTED, "oauth provider not configured")
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (Session, error)
	Login(ctx context.Context, email, password string) (Session, error)
	Authenticate(token string) (string, error)
	GoogleAuthURL(state string) (string, error)
	LoginWithGoogle(ctx context.Context, code string) (Session, error)
}

// Session pairs a freshly minted token with the user it identifies. The
// token is self-contained; logout only clears the client cookie and a
// stolen token stays valid until its natural expiry.
type Session struct {
	Token string
	User  user.User
}

type UserRepository interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type LoginAttempt struct {
	FailedCount int
	JailedUntil time.Time
}

type LoginAttemptRepository interface {
	Get(ctx context.Context, email string) (LoginAttempt, error)
	Save(ctx context.Context, email string, attempt LoginAttempt) error
	Reset(ctx context.Context, email string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, plain string) error
}

type TokenProvider interface {
	GenerateSessionToken(userID string) (string, error)
	ParseSessionToken(token string) (string, error)
}

type OAuthUser struct {
	Email         string
	Name          string
	EmailVerified bool
}

type GoogleOAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (OAuthUser, error)
}

type Usecase struct {
	userRepo       UserRepository
	attemptsRepo   LoginAttemptRepository
	passwordHasher PasswordHasher
	tokenProvider  TokenProvider
	googleProvider GoogleOAuthProvider
	maxRetries     int
	jailDuration   time.Duration
	now            func() time.Time
}

func NewUsecase(
	userRepo UserRepository,
	attemptsRepo LoginAttemptRepository,
	passwordHasher PasswordHasher,
	tokenProvider TokenProvider,
	googleProvider GoogleOAuthProvider,
) *Usecase {
	return &Usecase{
		userRepo:       userRepo,
		attemptsRepo:   attemptsRepo,
		passwordHasher: passwordHasher,
		tokenProvider:  tokenProvider,
		googleProvider: googleProvider,
		maxRetries:     5,
		jailDuration:   15 * time.Minute,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Register creates the user and mints their first session token.
// A duplicate email surfaces as user.ErrEmailAlreadyExists.
func (uc *Usecase) Register(ctx context.Context, name, email, password string) (Session, error) {
	u := user.User{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}
	if err := u.Validate(); err != nil {
		return Session{}, err
	}

	hashed, err := uc.passwordHasher.Hash(u.Password)
	if err != nil {
		return Session{}, err
	}
	u.Password = ""
	u.PasswordHash = hashed

	created, err := uc.userRepo.CreateUser(ctx, u)
	if err != nil {
		return Session{}, err
	}

	return uc.mintSession(created)
}

// Login verifies the credential and mints a session token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (uc *Usecase) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	attempt, err := uc.attemptsRepo.Get(ctx, email)
	if err != nil {
		return Session{}, err
	}

	if !attempt.JailedUntil.IsZero() {
		if attempt.JailedUntil.After(uc.now()) {
			return Session{}, ErrAccountLocked
		}
		attempt.JailedUntil = time.Time{}
		attempt.FailedCount = 0
		if err := uc.attemptsRepo.Save(ctx, email, attempt); err != nil {
			return Session{}, err
		}
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err := uc.recordFailure(ctx, email, attempt); err != nil {
			return Session{}, err
		}
		return Session{}, ErrInvalidCredentials
	}

	if err := uc.passwordHasher.Compare(u.PasswordHash, password); err != nil {
		if err := uc.recordFailure(ctx, email, attempt); err != nil {
			return Session{}, err
		}
		return Session{}, ErrInvalidCredentials
	}

	if err := uc.attemptsRepo.Reset(ctx, email); err != nil {
		return Session{}, err
	}

	return uc.mintSession(u)
}

// Authenticate validates a presented token and returns the user id it was
// issued for. Expired and tampered tokens both map to ErrInvalidToken.
func (uc *Usecase) Authenticate(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	userID, err := uc.tokenProvider.ParseSessionToken(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (uc *Usecase) GoogleAuthURL(state string) (string, error) {
	if uc.googleProvider == nil {
		return "", ErrOAuthNotConfigured
	}
	if strings.TrimSpace(state) == "" {
		return "", ErrInvalidOAuthUser
	}
	return uc.googleProvider.AuthCodeURL(state), nil
}

// LoginWithGoogle exchanges the OAuth code and mints a session for the
// verified account, creating the user on first sign-in.
func (uc *Usecase) LoginWithGoogle(ctx context.Context, code string) (Session, error) {
	if uc.googleProvider == nil {
		return Session{}, ErrOAuthNotConfigured
	}
	if strings.TrimSpace(code) == "" {
		return Session{}, ErrInvalidOAuthUser
	}

	oauthUser, err := uc.googleProvider.Exchange(ctx, code)
	if err != nil {
		return Session{}, err
	}
	if !oauthUser.EmailVerified || strings.TrimSpace(oauthUser.Email) == "" {
		return Session{}, ErrInvalidOAuthUser
	}

	u, err := uc.userRepo.GetByEmail(ctx, oauthUser.Email)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return Session{}, err
		}
		u, err = uc.createOAuthUser(ctx, oauthUser)
		if err != nil {
			return Session{}, err
		}
	}

	return uc.mintSession(u)
}

func (uc *Usecase) createOAuthUser(ctx context.Context, oauthUser OAuthUser) (user.User, error) {
	password, err := generateRandomPassword(32)
	if err != nil {
		return user.User{}, err
	}
	hashed, err := uc.passwordHasher.Hash(password)
	if err != nil {
		return user.User{}, err
	}

	name := strings.TrimSpace(oauthUser.Name)
	if name == "" {
		name = oauthUser.Email
	}

	return uc.userRepo.CreateUser(ctx, user.User{
		Name:         name,
		Email:        strings.ToLower(oauthUser.Email),
		PasswordHash: hashed,
	})
}

func (uc *Usecase) mintSession(u user.User) (Session, error) {
	token, err := uc.tokenProvider.GenerateSessionToken(u.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: u}, nil
}

func (uc *Usecase) recordFailure(ctx context.Context, email string, attempt LoginAttempt) error {
	attempt.FailedCount++
	if attempt.FailedCount >= uc.maxRetries {
		attempt.FailedCount = 0
		attempt.JailedUntil = uc.now().Add(uc.jailDuration)
	}
	return uc.attemptsRepo.Save(ctx, email, attempt)
}

func generateRandomPassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid password length")
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
