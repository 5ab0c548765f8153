// Package model defines domain entities for the application.
package model

import "time"

// UserProfile is the full user record as returned by the Svitlogram API.
// Field names follow the upstream wire contract.
type UserProfile struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Avatar         string    `json:"avatar"`
	NumberOfImages int       `json:"number_of_images"`
	CreatedAt      time.Time `json:"created_at"`
}

// FullName returns the user's display name.
func (u *UserProfile) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// SignupInput is the payload for account registration.
type SignupInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// SignupResult is the upstream response to a successful registration.
type SignupResult struct {
	User   UserProfile `json:"user"`
	Detail string      `json:"detail"`
}
