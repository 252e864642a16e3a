package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload is the data minted into a staff access token.
type AccessTokenPayload struct {
	UserID uint
	Email  string
	// JTI doubles as the redis session id; a fresh one is generated when empty.
	JTI string
}

// AccessTokenClaims are the typed JWT claims carried by staff requests.
type AccessTokenClaims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
