package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/claims"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/session"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/support"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/user"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	sessions := session.NewMemoryStore()
	app := app{
		user:    *user.NewServer(user.NewMemoryRepository(), sessions),
		claims:  *claims.NewServer(claims.NewMemoryRepository()),
		support: *support.NewServer(sessions),
	}

	srv := httptest.NewServer(newRouter(app, sessions))
	t.Cleanup(srv.Close)

	return srv
}

func postJSON(t *testing.T, url string, payload any, cookies []*http.Cookie) *http.Response {
	t.Helper()

	buf, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func getJSON(t *testing.T, url string, cookies []*http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv.URL+"/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	require.Equal(t, "healthy", body["status"])

	_, err := time.Parse(time.RFC3339, body["timestamp"])
	require.NoError(t, err)
}

func TestClaimsRequireSession(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/claims/property", map[string]string{}, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/api/claims", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEndToEndClaimFlow(t *testing.T) {
	srv := newTestServer(t)

	// Register.
	resp := postJSON(t, srv.URL+"/api/register", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"phone":    "60123",
		"country":  "MY",
		"address":  "addr",
		"password": "secret",
	}, nil)
	var registered map[string]string
	decode(t, resp, &registered)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "success", registered["status"])

	// Login and capture the session cookie.
	resp = postJSON(t, srv.URL+"/api/login", map[string]string{
		"email":    "a@x.com",
		"password": "secret",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, session.CookieName, cookies[0].Name)
	resp.Body.Close()

	// The snapshot comes back on /api/user.
	resp = getJSON(t, srv.URL+"/api/user", cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot session.User
	decode(t, resp, &snapshot)
	require.Equal(t, "a@x.com", snapshot.Email)

	// Submit a property claim.
	resp = postJSON(t, srv.URL+"/api/claims/property", map[string]string{
		"policy_num":    "P1",
		"ph_num":        "60123",
		"inc_date":      "2024-01-01",
		"inc_time":      "10:30",
		"address":       "X",
		"property_type": "house",
		"damage_type":   "fire",
		"country":       "MY",
		"descr":         "d",
	}, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var submitted map[string]string
	decode(t, resp, &submitted)
	require.Equal(t, "P1", submitted["claim_id"])

	// The claim shows up in the listing.
	resp = getJSON(t, srv.URL+"/api/claims", cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Claims []claims.Summary `json:"claims"`
		Total  int              `json:"total"`
	}
	decode(t, resp, &listing)
	require.Equal(t, 1, listing.Total)
	require.Equal(t, "P1", listing.Claims[0].ID)
	require.Equal(t, "Property Insurance", listing.Claims[0].Type)

	// Logout kills the session.
	resp = postJSON(t, srv.URL+"/api/logout", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = getJSON(t, srv.URL+"/api/user", cookies)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSupportTicket(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/support", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"phone":    "60123",
		"subject":  "claim stuck",
		"priority": "high",
		"message":  "no update",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	require.Regexp(t, `^TKT-\d{8}-[0-9a-f]{6}$`, body["ticket_id"])
}
