// Package dto provides request and response envelopes for the gateway API.
package dto

import "github.com/svitlogram/feedgate/internal/model"

// LoginRequest is the body for POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupRequest is the body for POST /api/v1/auth/signup.
type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Input converts the request into the domain signup input.
func (r SignupRequest) Input() model.SignupInput {
	return model.SignupInput{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
	}
}

// FeedResponse wraps one feed aggregation pass.
type FeedResponse struct {
	Data  []model.ImageView `json:"data"`
	Count int               `json:"count"`
}

// SearchResponse wraps one search aggregation pass.
type SearchResponse struct {
	Users  []model.UserProfile `json:"users"`
	Images []model.ImageView   `json:"images"`
}

// MessageResponse is a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorBody carries a machine-readable code and a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope for all gateway responses.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
