// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Accounts are created either with email/password (Register) or through
// GitHub OAuth. For OAuth accounts GitHubID is set and PasswordHash stays
// empty; for password accounts it's the other way round. The avatar is a
// gravatar URL derived from the email at registration time, or the GitHub
// avatar for OAuth accounts.
//
// PasswordHash is tagged json:"-" so it can never leak into a response body.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`      // lowercase; may be empty for OAuth accounts that hide it
	GitHubID     int64     `json:"-"`          // 0 unless the account was created via GitHub OAuth
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
