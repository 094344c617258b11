package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials checked by the monitoring API.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	UserID   string `json:"userid"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Type     int    `json:"type"`
	RoleID   string `json:"roleid"`
}

// APILoginUser is the user data returned by user.login.
type APILoginUser struct {
	UserID    string `json:"userid"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Type      string `json:"type"`
	RoleID    string `json:"roleid"`
	SessionID string `json:"sessionid"`
}

// JWTClaims represents the JWT payload for console access tokens.
type JWTClaims struct {
	UserID          string          `json:"userid"`
	Username        string          `json:"username"`
	UserType        int             `json:"user_type"`
	RoleID          string          `json:"roleid"`
	UIDefaultAccess bool            `json:"ui_default_access"`
	UIRules         map[string]bool `json:"ui_rules,omitempty"`
	jwt.RegisteredClaims
}
