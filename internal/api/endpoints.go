package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/svitlogram/feedgate/internal/model"
)

// Images fetches the image collection in server order. skip and limit are
// passed through when positive; the server applies its own defaults
// otherwise.
func (c *Client) Images(ctx context.Context, skip, limit int) ([]model.Image, error) {
	query := url.Values{}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var images []model.Image
	if err := c.get(ctx, "/api/images", query, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// UserByID fetches a user record by numeric id.
func (c *Client) UserByID(ctx context.Context, id int64) (*model.UserProfile, error) {
	var user model.UserProfile
	if err := c.get(ctx, "/api/users/users_id/"+strconv.FormatInt(id, 10), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserByUsername fetches a user record by username.
func (c *Client) UserByUsername(ctx context.Context, username string) (*model.UserProfile, error) {
	var user model.UserProfile
	if err := c.get(ctx, "/api/users/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchAll runs the combined user and image search. The upstream answers
// 404 when nothing matches; callers decide whether that is an error.
func (c *Client) SearchAll(ctx context.Context, query string) (*model.SearchPayload, error) {
	q := url.Values{}
	q.Set("data", query)

	var payload model.SearchPayload
	if err := c.get(ctx, "/api/users/search_all/", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Login exchanges credentials for a token pair. The endpoint is
// form-encoded; any unauthorized outcome means invalid credentials.
func (c *Client) Login(ctx context.Context, username, password string) (*model.TokenPair, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var pair model.TokenPair
	if err := c.postForm(ctx, "/api/auth/login", form, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Signup registers a new account. A duplicate username or email surfaces
// as ErrConflict.
func (c *Client) Signup(ctx context.Context, input model.SignupInput) (*model.SignupResult, error) {
	var result model.SignupResult
	if err := c.postJSON(ctx, "/api/auth/signup", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the server-side session. The upstream answers this
// endpoint with 401 by design, which do() surfaces as ErrUnauthorized
// after clearing the local session; callers treat that as success.
func (c *Client) Logout(ctx context.Context) error {
	return c.get(ctx, "/api/logout", nil, nil)
}

// Refresh exchanges a refresh token for a fresh pair. The refresh token
// is sent as the bearer credential in place of the access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	var pair model.TokenPair
	if err := c.do(ctx, http.MethodGet, "/api/auth/refresh_token", nil, nil, "", refreshToken, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
