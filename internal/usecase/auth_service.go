package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/poethra-leaderboard/internal/domain/admin"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/cache"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/id"
	"github.com/riskibarqy/poethra-leaderboard/internal/platform/logging"
)

const (
	adminTokenIssuer   = "poethra-leaderboard"
	adminTokenSubject  = "admin"
	revokedTokenPrefix = "admin:revoked:"
	signingKeyLength   = 32
)

// AuthService checks the admin password against a bcrypt hash and issues HS256 signed
// bearer tokens. Logged out tokens stay in revocations until they expire.
type AuthService struct {
	passwordHash []byte
	signingKey   []byte
	revocations  admin.Revocations
	tokenIDs     id.Generator
	ttl          time.Duration
	logger       *logging.Logger
	now          func() time.Time
}

// NewAuthService builds the admin authenticator. An empty signingKey is replaced by a
// random one, so issued tokens stop working after a restart. A nil revocations keeps
// logouts in process memory, which only suits a single replica.
func NewAuthService(passwordHash string, signingKey []byte, revocations admin.Revocations, ttl time.Duration, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	if revocations == nil {
		revocations = NewCachedRevocations(cache.NewStore(ttl, cache.WithName("admin_revoked_tokens")))
	}
	if len(signingKey) == 0 {
		signingKey = make([]byte, signingKeyLength)
		_, _ = rand.Read(signingKey)
	}

	return &AuthService{
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		signingKey:   signingKey,
		revocations:  revocations,
		tokenIDs:     id.NewRandomGenerator(),
		ttl:          ttl,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, password string) (admin.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	if len(s.passwordHash) == 0 {
		return admin.Session{}, failure(ErrDependencyUnavailable, "Admin login is not configured.", nil)
	}
	if password == "" {
		return admin.Session{}, failure(ErrInvalidInput, "Password is required.", nil)
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "admin login rejected")
		return admin.Session{}, failure(ErrUnauthorized, "Incorrect password. Please try again.", nil)
	}

	tokenID, err := s.tokenIDs.NewID()
	if err != nil {
		return admin.Session{}, fmt.Errorf("generate token id: %w", err)
	}

	issued := s.now().UTC().Truncate(time.Second)
	expires := issued.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        tokenID,
		Issuer:    adminTokenIssuer,
		Subject:   adminTokenSubject,
		IssuedAt:  jwt.NewNumericDate(issued),
		NotBefore: jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return admin.Session{}, fmt.Errorf("sign admin token: %w", err)
	}

	s.logger.InfoContext(ctx, "admin session issued", "token_id", tokenID, "expires_at", expires)
	return admin.Session{
		Token:     signed,
		TokenID:   tokenID,
		IssuedAt:  issued,
		ExpiresAt: expires,
	}, nil
}

func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (admin.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyAccessToken")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return admin.Principal{}, failure(ErrUnauthorized, "Admin session is required.", nil)
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(adminTokenIssuer),
		jwt.WithSubject(adminTokenSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.ID == "" {
		s.logger.DebugContext(ctx, "admin token rejected", "error", err)
		return admin.Principal{}, failure(ErrUnauthorized, "Admin session is missing or expired.", nil)
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID, s.now())
	if err != nil {
		s.logger.ErrorContext(ctx, "check admin token revocation failed", "token_id", claims.ID, "error", err)
		return admin.Principal{}, failure(ErrDependencyUnavailable, "Admin session could not be verified. Please try again.", err)
	}
	if revoked {
		return admin.Principal{}, failure(ErrUnauthorized, "Admin session is missing or expired.", nil)
	}

	return admin.Principal{TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Logout revokes the principal's token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, principal admin.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Logout")
	defer span.End()

	if principal.TokenID == "" || !principal.ExpiresAt.After(s.now()) {
		return nil
	}
	if err := s.revocations.Revoke(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
		s.logger.ErrorContext(ctx, "revoke admin token failed", "token_id", principal.TokenID, "error", err)
		return storeFailure("Failed to end the admin session.", err)
	}
	s.logger.InfoContext(ctx, "admin session revoked", "token_id", principal.TokenID)
	return nil
}

// CachedRevocations keeps revoked token ids in an in-process TTL cache.
type CachedRevocations struct {
	store *cache.Store
}

func NewCachedRevocations(store *cache.Store) *CachedRevocations {
	return &CachedRevocations{store: store}
}

func (c *CachedRevocations) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if remaining := time.Until(expiresAt); remaining > 0 {
		c.store.SetWithTTL(ctx, revokedTokenPrefix+tokenID, struct{}{}, remaining)
	}
	return nil
}

func (c *CachedRevocations) IsRevoked(ctx context.Context, tokenID string, _ time.Time) (bool, error) {
	_, revoked := c.store.Get(ctx, revokedTokenPrefix+tokenID)
	return revoked, nil
}
