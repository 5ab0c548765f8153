package model

// Session is the current token pair. Exactly one session exists per
// running client; it is owned by the session store.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IsAnonymous reports whether no access token is held.
func (s Session) IsAnonymous() bool {
	return s.AccessToken == ""
}

// TokenPair is the upstream response to login and token refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
