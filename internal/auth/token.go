package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService implements TokenService with HS256-signed JWTs. The signing
// secret and token lifetime are process-wide configuration.
type JWTService struct {
	secret  []byte
	ttl     time.Duration
	issuer  string
	nowFunc func() time.Time
	parser  *jwt.Parser
}

// NewJWTService creates a token service for the given secret and lifetime.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret:  []byte(secret),
		ttl:     ttl,
		issuer:  "midgard-core",
		nowFunc: time.Now,
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})),
	}
}

// Sign produces a bearer token encoding the payload plus an expiration.
func (s *JWTService) Sign(payload TokenPayload) (string, error) {
	now := s.nowFunc()
	claims := jwt.MapClaims{
		"sub":   payload.Sub,
		"email": payload.Email,
		"iss":   s.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, structure and expiry of a bearer token and
// recovers the exact payload that was signed. Any failure is ErrInvalidToken.
func (s *JWTService) Verify(tokenString string) (TokenPayload, error) {
	if strings.TrimSpace(tokenString) == "" {
		return TokenPayload{}, ErrInvalidToken
	}

	parsed, err := s.parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return TokenPayload{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPayload{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return TokenPayload{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	expFloat, ok := claims["exp"].(float64)
	if !ok {
		return TokenPayload{}, ErrInvalidToken
	}
	if time.Unix(int64(expFloat), 0).Before(s.nowFunc()) {
		return TokenPayload{}, ErrInvalidToken
	}

	return TokenPayload{Sub: sub, Email: email}, nil
}
