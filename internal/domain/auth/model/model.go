package model

import (
	"time"
)

// Credential is the single account the service accepts on the token endpoint.
type Credential struct {
	Username     string
	PasswordHash string
}

type Identity struct {
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	AccessTTL   time.Duration
}

const TokenTypeBearer = "bearer"
