package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talentmatch/backend/config"
)

// JWTService handles JWT token operations for recruiter sessions
type JWTService struct {
	secretKey   []byte
	expiryHours int
}

// Claims represents JWT claims carried by recruiter tokens
type Claims struct {
	RecruiterID string `json:"recruiterId"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	jwt.RegisteredClaims
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secretKey:   []byte(cfg.JWTSecret),
		expiryHours: cfg.JWTExpiryHours,
	}
}

// GenerateToken generates a JWT token for a recruiter
func (s *JWTService) GenerateToken(recruiterID, email, name string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(s.expiryHours) * time.Hour)

	claims := &Claims{
		RecruiterID: recruiterID,
		Email:       email,
		Name:        name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "talentmatch",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken validates a JWT token and returns the claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
