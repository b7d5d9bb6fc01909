package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/auth"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/events"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// passwordChangeSkew backdates passwordChangedAt so a token issued in the
// same second as the change still verifies.
const passwordChangeSkew = time.Second

// IssuedToken is a freshly signed session token.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration, login and password changes.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	events     publisher
	now        func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	BcryptCost int
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		bcryptCost: deps.BcryptCost,
		events:     publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
		now:        time.Now,
	}
}

// Signup registers a staff account and signs it in.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, *IssuedToken, error) {
	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !isNoRows(err) {
		return nil, nil, apperrors.MapError(err)
	}

	user, err := s.CreateUser(ctx, name, email, password, domain.RoleStaff)
	if err != nil {
		return nil, nil, err
	}
	token, err := s.issue(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// CreateUser stores a new active account with the given role.
func (s *AuthService) CreateUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}
	hash, err := hashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.Event{
		Type:      events.EventUserRegistered,
		SubjectID: user.ID,
		Payload:   events.UserRegisteredPayload{Email: user.Email, Role: user.Role},
	})
	return user, nil
}

// Login checks credentials. Unknown emails and wrong passwords fail
// identically, including in timing.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *IssuedToken, error) {
	invalid := apperrors.NewUnauthenticated("incorrect email or password")

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNoRows(err) {
			_ = auth.ComparePassword(s.dummy(), password)
			return nil, nil, invalid
		}
		return nil, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, invalid
	}
	if !user.Active {
		return nil, nil, apperrors.NewUnauthenticated("account is deactivated")
	}

	token, err := s.issue(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Refresh issues a new token for an already authenticated caller and returns
// the account it was issued for.
func (s *AuthService) Refresh(ctx context.Context, userID string) (*domain.User, *IssuedToken, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	token, err := s.issue(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Me loads the caller's account.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "user")
	}
	return user, nil
}

// UpdatePassword verifies the current password, stores the new one and
// returns a token that outlives the change. Tokens issued before the change
// are rejected from then on.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, next string) (*domain.User, *IssuedToken, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, apperrors.NotFoundOr(err, "user")
	}
	if err := auth.ComparePassword(user.PasswordHash, current); err != nil {
		return nil, nil, apperrors.NewUnauthenticated("your current password is wrong")
	}

	hash, err := hashPassword(next, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}
	changedAt := s.now().Add(-passwordChangeSkew)
	if err := s.users.UpdatePassword(ctx, user.ID, hash, changedAt); err != nil {
		return nil, nil, apperrors.NotFoundOr(err, "user")
	}
	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt

	token, err := s.issue(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Tokens exposes the token manager for middleware wiring.
func (s *AuthService) Tokens() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) issue(userID string) (*IssuedToken, error) {
	token, exp, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &IssuedToken{Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("not-a-real-password", s.bcryptCost)
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := auth.HashPassword(password, cost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError("password too long", map[string]any{"password": "max=72 bytes"})
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}
