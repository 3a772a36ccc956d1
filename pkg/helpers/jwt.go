package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is the base class for every token rejection.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired means the signature verified but exp has passed.
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
	// ErrBadSignature means the token is forged, altered, or malformed.
	ErrBadSignature = fmt.Errorf("%w: bad signature", ErrInvalidToken)
)

// JWTManager signs and verifies the two token kinds with a single
// process-wide secret (one authentication realm). The secret is
// immutable after construction.
type JWTManager struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

var defaultManager *JWTManager

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	m := &JWTManager{
		Secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

// Claims is the claim set embedded in issued tokens. Role is only set
// on access tokens; refresh tokens carry the subject alone so a role
// change is never trusted stale across a refresh.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a short-lived token carrying {sub, role, exp}.
func (m *JWTManager) GenerateAccessToken(email, role string) (string, time.Time, error) {
	return m.sign(&Claims{Role: role}, email, m.AccessTTL)
}

// GenerateRefreshToken issues a long-lived token carrying {sub, exp} only.
func (m *JWTManager) GenerateRefreshToken(email string) (string, time.Time, error) {
	return m.sign(&Claims{}, email, m.RefreshTTL)
}

func (m *JWTManager) sign(claims *Claims, subject string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr)
}

func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr)
}

// parse verifies the signature before trusting any claim, then checks
// expiry. Every failure collapses into the closed ErrInvalidToken set.
func (m *JWTManager) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadSignature
		}
		return m.Secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrBadSignature
		}
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
