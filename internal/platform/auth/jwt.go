package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/srgjo27/captainbook/internal/core/domain"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 session tokens. Every token carries a unique jti so
// it can be revoked individually.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *JWTIssuer) Issue(subject uuid.UUID, role domain.Role) (string, domain.Principal, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)
	jti := uuid.NewString()

	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", domain.Principal{}, err
	}

	return signed, domain.Principal{
		ID:        subject,
		Role:      role,
		TokenID:   jti,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (i *JWTIssuer) Parse(tokenStr string) (domain.Principal, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return domain.Principal{}, err
	}

	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return domain.Principal{}, errors.New("invalid token")
	}

	sub, err := uuid.Parse(c.Subject)
	if err != nil {
		return domain.Principal{}, errors.New("invalid token subject")
	}
	if c.ID == "" {
		return domain.Principal{}, errors.New("token has no id")
	}

	return domain.Principal{
		ID:        sub,
		Role:      domain.Role(c.Role),
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
