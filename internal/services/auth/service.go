package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/snippetsapp/snippets/internal/dependencies/clock"
	"github.com/snippetsapp/snippets/internal/model"
	"github.com/snippetsapp/snippets/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Identity is the authenticated caller of a request. It is carried in the
// request context, never in shared state, so concurrent requests cannot
// observe each other's verdicts.
type Identity struct {
	UserID   int64
	Username string
}

// Session is an issued authentication token and the user it belongs to
type Session struct {
	Token     string
	User      model.User
	ExpiresAt time.Time
}

// Service handles signup, login and session token verification
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	secret       []byte
	sessionTTL   time.Duration
	legacySecret string
}

// Config holds configuration for the auth service
type Config struct {
	// Secret signs session tokens
	Secret string
	// SessionTTL bounds token lifetime; the original scheme had none
	SessionTTL time.Duration
	// LegacySecret, when non-empty, accepts the old loggedInHash cookies
	LegacySecret string
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionTTL: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(store storage.Storage, clk clock.Clock, cfg Config) *Service {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = DefaultConfig().SessionTTL
	}
	return &Service{
		storage:      store,
		clock:        clk,
		secret:       []byte(cfg.Secret),
		sessionTTL:   cfg.SessionTTL,
		legacySecret: cfg.LegacySecret,
	}
}

// Signup creates a user account and logs it in
func (s *Service) Signup(ctx context.Context, username, password string) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.CreateUser(ctx, &model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	return s.createSession(user)
}

// Login authenticates a user and issues a session token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(user)
}

// VerifyToken validates a session token and returns the identity it carries.
// Identity comes from the signed claims without re-validating against the store.
func (s *Service) VerifyToken(token string) (*Identity, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// VerifyLegacy checks the pre-cutover cookie trio. The verdict is positive
// iff loggedInHash equals LegacyToken(userID, secret); missing cookies
// degrade to empty strings, which never match a real token.
func (s *Service) VerifyLegacy(loggedInHash, userID, username string) (*Identity, error) {
	if s.legacySecret == "" || loggedInHash == "" {
		return nil, ErrInvalidSession
	}

	expected := LegacyToken(userID, s.legacySecret)
	if !legacyTokenEqual(loggedInHash, expected) {
		return nil, ErrInvalidSession
	}

	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil || id <= 0 {
		return nil, ErrInvalidSession
	}

	// The old flow trusted the username cookie once the hash matched;
	// keep that carry-forward behaviour.
	return &Identity{UserID: id, Username: username}, nil
}

func (s *Service) createSession(user *model.User) (*Session, error) {
	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		User:      *user,
		ExpiresAt: expiresAt,
	}, nil
}
