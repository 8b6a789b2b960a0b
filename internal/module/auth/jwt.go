package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/unishowcase/server/internal/shared/config"
	"github.com/unishowcase/server/internal/shared/middleware"
)

// Claims represents JWT token claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		AccessTokenExpiry: 24 * time.Hour,
		Issuer:            "unishowcase",
	}
}

// JWTConfigFromAuth converts the auth section of the app config.
func JWTConfigFromAuth(cfg *config.AuthConfig) *JWTConfig {
	return &JWTConfig{
		Secret:            cfg.JWTSecret,
		AccessTokenExpiry: cfg.AccessTokenExpiry,
		Issuer:            cfg.Issuer,
	}
}

// JWTManager handles JWT token operations.
type JWTManager struct {
	config *JWTConfig
}

// NewJWTManager creates a new JWT manager.
func NewJWTManager(config *JWTConfig) *JWTManager {
	if config == nil {
		config = DefaultJWTConfig()
	}
	return &JWTManager{config: config}
}

// GenerateAccessToken signs an access token for the user.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, email string) (string, time.Time, error) {
	if m.config.Secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}

	now := time.Now()
	expiresAt := now.Add(m.config.AccessTokenExpiry)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(m.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// ValidateAccessToken validates an access token and returns the claims.
func (m *JWTManager) ValidateAccessToken(tokenString string) (*Claims, error) {
	if m.config.Secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.Secret), nil
	}, jwt.WithIssuer(m.config.Issuer))

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidTokenClaims
	}

	return claims, nil
}

// ValidateToken implements middleware.TokenValidator.
func (m *JWTManager) ValidateToken(tokenString string) (*middleware.Identity, error) {
	claims, err := m.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// GetAccessTokenExpiry returns the access token expiry duration.
func (m *JWTManager) GetAccessTokenExpiry() time.Duration {
	return m.config.AccessTokenExpiry
}

var _ middleware.TokenValidator = (*JWTManager)(nil)
