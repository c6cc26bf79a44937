package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/api"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/session"
	"github.com/stretchr/testify/require"
)

func newTestServer() (*Server, *MemoryRepository, *session.MemoryStore) {
	repo := NewMemoryRepository()
	sessions := session.NewMemoryStore()

	return NewServer(repo, sessions), repo, sessions
}

func doJSON(t *testing.T, handler api.HTTPHandler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	buf, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func registration(email, phone string) registerRequest {
	return registerRequest{
		Name:     "A",
		Email:    email,
		Phone:    phone,
		Country:  "MY",
		Address:  "addr",
		Password: "secret",
	}
}

func TestRegister(t *testing.T) {
	srv, _, _ := newTestServer()

	rec := doJSON(t, srv.Register, http.MethodPost, "/api/register", registration("a@x.com", "60123"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "success", body["status"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv, repo, _ := newTestServer()

	rec := doJSON(t, srv.Register, http.MethodPost, "/api/register", registration("a@x.com", "60123"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Register, http.MethodPost, "/api/register", registration("a@x.com", "60999"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// First registration is untouched.
	u, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "60123", u.Phone)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	srv, _, _ := newTestServer()

	rec := doJSON(t, srv.Register, http.MethodPost, "/api/register", registration("a@x.com", "60123"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Register, http.MethodPost, "/api/register", registration("b@x.com", "60123"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterInvalidEmail(t *testing.T) {
	srv, _, _ := newTestServer()

	rec := doJSON(t, srv.Register, http.MethodPost, "/api/register", registration("not-an-email", "60123"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	srv, _, _ := newTestServer()

	data := registration("a@x.com", "60123")
	data.Password = ""

	rec := doJSON(t, srv.Register, http.MethodPost, "/api/register", data)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	srv, _, _ := newTestServer()

	rec := doJSON(t, srv.Register, http.MethodPost, "/api/register", registration("a@x.com", "60123"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Login, http.MethodPost, "/api/login", loginRequest{Email: "a@x.com", Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	srv, _, _ := newTestServer()

	rec := doJSON(t, srv.Login, http.MethodPost, "/api/login", loginRequest{Email: "ghost@x.com", Password: "secret"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginCreatesSession(t *testing.T) {
	srv, _, sessions := newTestServer()

	rec := doJSON(t, srv.Register, http.MethodPost, "/api/register", registration("a@x.com", "60123"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Login, http.MethodPost, "/api/login", loginRequest{Email: "a@x.com", Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, session.CookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	snapshot, ok, err := sessions.Lookup(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a@x.com", snapshot.Email)
	require.Equal(t, "60123", snapshot.Phone)

	var body loginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "success", body.Status)
	require.Equal(t, "a@x.com", body.User.Email)
}

func TestLogoutRevokesSession(t *testing.T) {
	srv, _, sessions := newTestServer()

	token, err := sessions.Create(context.Background(), session.User{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

	rec := httptest.NewRecorder()
	api.HTTPHandler(srv.Logout).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, ok, err := sessions.Lookup(context.Background(), token)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLogoutWithoutCookie(t *testing.T) {
	srv, _, _ := newTestServer()

	rec := httptest.NewRecorder()
	api.HTTPHandler(srv.Logout).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCurrentUser(t *testing.T) {
	srv, _, _ := newTestServer()

	snapshot := session.User{ID: 1, Name: "A", Email: "a@x.com", Phone: "60123", Country: "MY"}

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req = req.WithContext(session.NewContext(req.Context(), snapshot))

	rec := httptest.NewRecorder()
	api.HTTPHandler(srv.CurrentUser).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got session.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, snapshot, got)
}

func TestCurrentUserNoSession(t *testing.T) {
	srv, _, _ := newTestServer()

	rec := httptest.NewRecorder()
	api.HTTPHandler(srv.CurrentUser).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
