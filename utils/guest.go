package utils

import (
	"errors"
	"time"

	"brightsite/config"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// GuestTokenCookie is the cookie name carrying the signed guest chat identity.
const GuestTokenCookie = "guest_token"

// GuestIdentity is the payload signed into the guest cookie. The UID is the
// stable key a guest's chat sessions hang off.
type GuestIdentity struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

var ErrInvalidGuestToken = errors.New("invalid or expired guest token")

func guestSecret() []byte {
	secret := config.AppConfig.GuestTokenSecret
	if secret == "" {
		secret = config.AppConfig.JWTSecret
	}
	if secret == "" {
		secret = "brightsite-dev"
	}
	return []byte(secret)
}

// MintGuestIdentity creates a fresh guest identity with a random UID.
func MintGuestIdentity(name, email string) GuestIdentity {
	return GuestIdentity{
		UID:   uuid.New().String(),
		Name:  name,
		Email: email,
	}
}

// SignGuestToken signs the guest identity into a JWT suitable for a cookie.
func SignGuestToken(identity GuestIdentity, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"uid":   identity.UID,
		"name":  identity.Name,
		"email": identity.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(guestSecret())
}

// ParseGuestToken validates a guest cookie token and returns the identity it
// carries. A tampered or expired token yields ErrInvalidGuestToken; callers
// must clear the cookie and reject the request rather than minting a fresh
// identity, so a forged token can never masquerade as session continuity.
func ParseGuestToken(tokenString string) (GuestIdentity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return guestSecret(), nil
	})
	if err != nil || !token.Valid {
		return GuestIdentity{}, ErrInvalidGuestToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return GuestIdentity{}, ErrInvalidGuestToken
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		return GuestIdentity{}, ErrInvalidGuestToken
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return GuestIdentity{UID: uid, Name: name, Email: email}, nil
}
