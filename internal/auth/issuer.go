// Package auth emite y valida los access tokens del servicio.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Claims son los claims propios que viajan en el access token.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwtv5.RegisteredClaims
}

// Issuer firma access tokens HS256 con un secreto por proceso.
// El secreto puede fijarse por configuración; si no, se genera al arranque
// (suficiente para un servicio single-node: cada boot invalida tokens viejos).
type Issuer struct {
	Iss       string
	AccessTTL time.Duration
	secret    []byte
}

var (
	ErrTokenInvalid = errors.New("auth: invalid token")
	ErrTokenExpired = errors.New("auth: token expired")
)

// NewIssuer crea el emisor. secret vacío => aleatorio de 32 bytes.
func NewIssuer(iss, secret string, accessTTL time.Duration) (*Issuer, error) {
	var key []byte
	if secret != "" {
		key = []byte(secret)
	} else {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("auth: generate secret: %w", err)
		}
	}
	if len(key) < 32 {
		return nil, errors.New("auth: jwt secret must be at least 32 bytes")
	}
	return &Issuer{Iss: iss, AccessTTL: accessTTL, secret: key}, nil
}

// IssueAccess firma un access token para el actor dado.
func (i *Issuer) IssueAccess(actorID, role, email string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.AccessTTL)

	claims := Claims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   actorID,
			Audience:  jwtv5.ClaimStrings{"mallcore"},
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccess valida firma, issuer y tiempos, y retorna los claims.
func (i *Issuer) ParseAccess(raw string) (*Claims, error) {
	var claims Claims
	tk, err := jwtv5.ParseWithClaims(raw, &claims, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwtv5.WithIssuer(i.Iss),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !tk.Valid || claims.Subject == "" || claims.Role == "" {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}
