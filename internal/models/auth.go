package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the credential payload accepted by the login endpoint.
// The identifier may be a bare username or a full email address.
type LoginRequest struct {
	LoginIdentifier string `json:"loginIdentifier" validate:"required"`
	Secret          string `json:"secret" validate:"required"`
}

// LoginResponse carries the resolved principal, its structural scope and
// the issued access token.
type LoginResponse struct {
	Principal   Principal `json:"principal"`
	Scope       Scope     `json:"scope"`
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
}

// JWTClaims embeds the resolved principal into the access token.
type JWTClaims struct {
	AccountID        string      `json:"accountId"`
	LoginID          string      `json:"loginId"`
	Role             AccountRole `json:"role"`
	CanManageResults bool        `json:"canManageResults"`
	Scope            Scope       `json:"scope"`
	jwt.RegisteredClaims
}
