package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ledger-backend/internal/config"
	"ledger-backend/internal/session"
	"ledger-backend/internal/timeutil"
)

type Claims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Session rebuilds the typed session carried by the token.
func (c *Claims) Session() session.Session {
	return session.Session{
		Username: c.Username,
		Name:     c.Name,
		Role:     session.ParseRole(c.Role),
	}
}

type JWTManager struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewJWTManager(cfg config.JWTConfig) *JWTManager {
	return &JWTManager{cfg: cfg, now: timeutil.Now}
}

// GenerateToken signs a token for an authenticated session
func (j *JWTManager) GenerateToken(s session.Session) (string, error) {
	if !s.Authenticated() {
		return "", errors.New("session is not authenticated")
	}
	now := j.now()
	expirationTime := now.Add(time.Duration(j.cfg.ExpirationHours) * time.Hour)

	claims := &Claims{
		Username: s.Username,
		Name:     s.Name,
		Role:     s.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Username,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.Secret))
}

// ValidateToken verifies a JWT token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.Secret), nil
	}, jwt.WithTimeFunc(j.now), jwt.WithIssuer(j.cfg.Issuer))

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
