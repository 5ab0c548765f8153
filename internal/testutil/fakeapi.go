// Package testutil provides helpers shared by package tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/svitlogram/feedgate/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// Route keys for call counting and status overrides.
const (
	RouteImages         = "images"
	RouteUserByID       = "user_by_id"
	RouteUserByUsername = "user_by_username"
	RouteSearch         = "search"
	RouteLogin          = "login"
	RouteSignup         = "signup"
	RouteLogout         = "logout"
	RouteRefresh        = "refresh"
)

// Fake tokens issued by the fake login and refresh endpoints.
const (
	FakeAccessToken       = "fake-access-token"
	FakeRefreshToken      = "fake-refresh-token"
	RefreshedAccessToken  = "refreshed-access-token"
	RefreshedRefreshToken = "refreshed-refresh-token"
)

// FakeAPI is an in-process stand-in for the upstream Svitlogram API. It
// records per-route call counts and the last Authorization header seen,
// which tests use to assert lookup counts and header handling.
type FakeAPI struct {
	Server *httptest.Server

	mu             sync.Mutex
	usersByID      map[int64]model.UserProfile
	usersByName    map[string]model.UserProfile
	images         []model.Image
	searchUsers    []model.UserProfile
	searchImages   []model.Image
	calls          map[string]int
	statusOverride map[string]int
	lastAuth       map[string]string
	username       string
	password       string
	userLatency    time.Duration
}

// NewFakeAPI starts a fake upstream server. It is closed via t.Cleanup.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		usersByID:      make(map[int64]model.UserProfile),
		usersByName:    make(map[string]model.UserProfile),
		calls:          make(map[string]int),
		statusOverride: make(map[string]int),
		lastAuth:       make(map[string]string),
	}

	r := chi.NewRouter()
	r.Get("/api/images", f.handleImages)
	r.Get("/api/users/users_id/{id}", f.handleUserByID)
	r.Get("/api/users/search_all/", f.handleSearch)
	r.Get("/api/users/{username}", f.handleUserByUsername)
	r.Post("/api/auth/login", f.handleLogin)
	r.Post("/api/auth/signup", f.handleSignup)
	r.Get("/api/auth/refresh_token", f.handleRefresh)
	r.Get("/api/logout", f.handleLogout)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)

	return f
}

// URL returns the fake server's base URL.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// AddUser registers a user, reachable by id and username.
func (f *FakeAPI) AddUser(u model.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usersByID[u.ID] = u
	f.usersByName[u.Username] = u
}

// SetImages sets the feed contents.
func (f *FakeAPI) SetImages(images ...model.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images = images
}

// SetSearchResults sets the combined search response.
func (f *FakeAPI) SetSearchResults(users []model.UserProfile, images []model.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchUsers = users
	f.searchImages = images
}

// SetCredentials sets the accepted login credentials.
func (f *FakeAPI) SetCredentials(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.username = username
	f.password = password
}

// SetUserLatency delays user lookups so concurrent resolutions overlap.
func (f *FakeAPI) SetUserLatency(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userLatency = d
}

// ForceStatus makes a route answer with a fixed status code.
func (f *FakeAPI) ForceStatus(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusOverride[route] = status
}

// Calls returns how many requests a route has received.
func (f *FakeAPI) Calls(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

// LastAuthorization returns the Authorization header of the most recent
// request to a route, or the empty string.
func (f *FakeAPI) LastAuthorization(route string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth[route]
}

// record counts the call and returns a forced status (0 when none).
func (f *FakeAPI) record(route string, r *http.Request) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[route]++
	f.lastAuth[route] = r.Header.Get("Authorization")
	return f.statusOverride[route]
}

func (f *FakeAPI) handleImages(w http.ResponseWriter, r *http.Request) {
	if status := f.record(RouteImages, r); status != 0 {
		w.WriteHeader(status)
		return
	}
	f.mu.Lock()
	images := f.images
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, images)
}

func (f *FakeAPI) handleUserByID(w http.ResponseWriter, r *http.Request) {
	if status := f.record(RouteUserByID, r); status != 0 {
		w.WriteHeader(status)
		return
	}

	f.mu.Lock()
	latency := f.userLatency
	f.mu.Unlock()
	if latency > 0 {
		time.Sleep(latency)
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	f.mu.Lock()
	user, ok := f.usersByID[id]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (f *FakeAPI) handleUserByUsername(w http.ResponseWriter, r *http.Request) {
	if status := f.record(RouteUserByUsername, r); status != 0 {
		w.WriteHeader(status)
		return
	}

	f.mu.Lock()
	user, ok := f.usersByName[chi.URLParam(r, "username")]
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (f *FakeAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	if status := f.record(RouteSearch, r); status != 0 {
		w.WriteHeader(status)
		return
	}

	f.mu.Lock()
	payload := model.SearchPayload{Users: f.searchUsers, Images: f.searchImages}
	f.mu.Unlock()

	if len(payload.Users) == 0 && len(payload.Images) == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	if status := f.record(RouteLogin, r); status != 0 {
		w.WriteHeader(status)
		return
	}

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	f.mu.Lock()
	ok := r.PostFormValue("username") == f.username && r.PostFormValue("password") == f.password && f.username != ""
	f.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, model.TokenPair{
		AccessToken:  FakeAccessToken,
		RefreshToken: FakeRefreshToken,
		TokenType:    "bearer",
	})
}

func (f *FakeAPI) handleSignup(w http.ResponseWriter, r *http.Request) {
	if status := f.record(RouteSignup, r); status != 0 {
		w.WriteHeader(status)
		return
	}

	var input model.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	f.mu.Lock()
	_, exists := f.usersByName[input.Username]
	f.mu.Unlock()
	if exists {
		w.WriteHeader(http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusCreated, model.SignupResult{
		User: model.UserProfile{
			ID:        1,
			Username:  input.Username,
			FirstName: input.FirstName,
			LastName:  input.LastName,
		},
		Detail: "User successfully created",
	})
}

func (f *FakeAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if status := f.record(RouteRefresh, r); status != 0 {
		w.WriteHeader(status)
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+FakeRefreshToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, model.TokenPair{
		AccessToken:  RefreshedAccessToken,
		RefreshToken: RefreshedRefreshToken,
		TokenType:    "bearer",
	})
}

// handleLogout mirrors the upstream quirk of answering logout with 401.
func (f *FakeAPI) handleLogout(w http.ResponseWriter, r *http.Request) {
	if status := f.record(RouteLogout, r); status != 0 {
		w.WriteHeader(status)
		return
	}
	w.WriteHeader(http.StatusUnauthorized)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
