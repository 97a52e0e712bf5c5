package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
	SchoolID string `json:"school_id,omitempty"`
}

func NewClaims(usr User, issuer string, ttl time.Duration) *Claims {
	now := NowFunc()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			Subject:   usr.ID,
			Audience:  "Campus",
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:     usr.Name,
		Email:    usr.Email,
		Role:     usr.Role,
		SchoolID: usr.SchoolID,
	}
}

// User returns the User described by the claims.
func (c *Claims) User() User {
	return User{
		ID:       c.Subject,
		Name:     c.Name,
		Email:    c.Email,
		Role:     c.Role,
		SchoolID: c.SchoolID,
	}
}

// Valid checks the standard claims against NowFunc and requires a known role.
func (c *Claims) Valid() error {
	now := NowFunc().Unix()
	if !c.VerifyExpiresAt(now, false) {
		return ErrTokenExpired
	}
	if _, ok := ParseRole(string(c.Role)); !ok || c.Subject == "" {
		return ErrInvalidToken
	}
	return nil
}

// GenerateToken generates a signed (HS256) JWT token string representing the Claims.
func GenerateToken(claims *Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// ParseToken verifies the signature of a token issued by GenerateToken and returns its claims.
func ParseToken(tokenStr string, key []byte) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return key, nil
	})
	if err != nil {
		return nil, tokenError(err)
	}
	return claims, nil
}

// SessionFromToken returns a signed in Session for a token issued by the API.
// The signature is not checked: the API does that on every request.
func SessionFromToken(tokenStr string) (*Session, error) {
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(tokenStr, claims); err != nil {
		return nil, ErrInvalidToken
	}
	if err := claims.Valid(); err != nil {
		return nil, err
	}
	sess := NewSession()
	sess.SignIn(claims.User(), tokenStr)
	return sess, nil
}

func tokenError(err error) error {
	if vErr, ok := err.(*jwt.ValidationError); ok && vErr.Inner != nil {
		if vErr.Inner == ErrTokenExpired {
			return ErrTokenExpired
		}
	}
	return ErrInvalidToken
}
