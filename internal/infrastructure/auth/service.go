package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/thanhpk/randstr"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
)

const (
	issuer = "oysy-wallet"
	// DefaultTokenTTL is how long issued tokens are valid.
	DefaultTokenTTL = 24 * time.Hour
)

var (
	// ErrInvalidToken is returned for tokens that are malformed, expired or
	// not signed with the service secret.
	ErrInvalidToken = errors.New("invalid auth token")
	// ErrMissingUsername is returned when issuing a token for an anonymous
	// user.
	ErrMissingUsername = errors.New("missing username")
)

type claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// Service issues and verifies HS256 signed session tokens carrying the
// username and role of the user.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService returns a token service for the given secret. If secret is
// empty a random one is generated, meaning that tokens don't survive
// restarts.
func NewService(secret string, ttl time.Duration) *Service {
	if len(secret) <= 0 {
		log.Warn("auth secret not set, using a random one")
		secret = randstr.Hex(32)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{[]byte(secret), ttl, time.Now}
}

// IssueToken returns a signed token for the given user and role.
func (s *Service) IssueToken(user domain.User, role domain.Role) (string, error) {
	if len(user.Username) <= 0 {
		return "", ErrMissingUsername
	}
	if !role.IsValid() {
		return "", domain.ErrUnknownRole
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(role),
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			Subject:   user.Username,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	})
	return token.SignedString(s.secret)
}

// ParseToken verifies the given token and returns the session and user it
// was issued for.
func (s *Service) ParseToken(
	tokenString string,
) (domain.AuthSession, domain.User, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(
		tokenString, c, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return domain.AuthSession{}, domain.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Issuer != issuer || len(c.Subject) <= 0 {
		return domain.AuthSession{}, domain.User{}, ErrInvalidToken
	}

	role, err := domain.ParseRole(c.Role)
	if err != nil {
		return domain.AuthSession{}, domain.User{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	return domain.AuthSession{Authenticated: true, Role: role},
		domain.User{Username: c.Subject}, nil
}
