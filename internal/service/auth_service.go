package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/ormanet/lumeo-api/internal/cache"
	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// userStore is the slice of the user repository this service needs.
type userStore interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
	UpdatePassword(id int64, passwordHash string) error
}

// clientLinker re-attaches client rows to user accounts by email.
type clientLinker interface {
	LinkToUserByEmail(userID int64, email string) (int64, error)
}

// AuthService handles account registration, login sessions, and password
// changes. Sessions live in Redis under a TTL.
type AuthService struct {
	users    userStore
	clients  clientLinker
	sessions *cache.SessionCache
}

// NewAuthService constructs an AuthService.
func NewAuthService(users userStore, clients clientLinker, sessions *cache.SessionCache) *AuthService {
	return &AuthService{users: users, clients: clients, sessions: sessions}
}

// RegisterRequest carries a new account signup.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Segment  string `json:"segment"`
	TaxID    string `json:"taxId"`
	Phone    string `json:"phone"`
}

// Register creates a user account and links any client row sharing the email.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, utils.ErrInvalidCredentials
	}
	if len(req.Password) < 8 {
		return nil, utils.ErrPasswordTooShort
	}

	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, utils.ErrEmailTaken
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	segment := models.Segment(req.Segment)
	if !segment.Valid() {
		segment = models.DefaultSegment
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Segment:      segment,
		TaxID:        strings.TrimSpace(req.TaxID),
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if linked, err := s.clients.LinkToUserByEmail(user.ID, user.Email); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("client link on register failed")
	} else if linked > 0 {
		log.Info().Int64("user_id", user.ID).Int64("linked", linked).Msg("linked client rows to new account")
	}

	return user, nil
}

// LoginResult is a successful login: the bearer token plus the account.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// Login verifies credentials and opens a Redis-backed session. Remember
// extends the session from one day to thirty.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	// Re-attempt the client link on every login; imports may have created the
	// client row after the account was registered.
	if _, err := s.clients.LinkToUserByEmail(user.ID, user.Email); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("client link on login failed")
	}

	ttl := cache.SessionTTLDefault
	if remember {
		ttl = cache.SessionTTLRemember
	}

	token := utils.GenerateSessionToken()
	session := &cache.SessionData{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}
	if err := s.sessions.Set(ctx, token, session, ttl); err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ExpiresAt: time.Now().UTC().Add(ttl), User: user}, nil
}

// Logout invalidates a session token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession resolves a bearer token to its session payload. Expired and
// unknown tokens yield ErrSessionExpired.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*cache.SessionData, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, utils.ErrSessionExpired
	}
	return session, nil
}

// GetUser returns the account behind a user id.
func (s *AuthService) GetUser(id int64) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(id int64, current, next string) error {
	if len(next) < 8 {
		return utils.ErrPasswordTooShort
	}

	user, err := s.users.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return utils.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(id, string(hash))
}
