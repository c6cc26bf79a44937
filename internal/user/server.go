package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/api"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/database"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/session"
)

type Server struct {
	repository Repository
	sessions   session.Store
}

func NewServer(repository Repository, sessions session.Store) *Server {
	return &Server{
		repository: repository,
		sessions:   sessions,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

func (data registerRequest) validate() error {
	for field, value := range map[string]string{
		"name":     data.Name,
		"email":    data.Email,
		"phone":    data.Phone,
		"country":  data.Country,
		"address":  data.Address,
		"password": data.Password,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("missing field %q", field)
		}
	}

	if _, err := mail.ParseAddress(data.Email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	return nil
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) api.Response {
	ctx := r.Context()

	var data registerRequest

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&data); err != nil {
		return api.Response{
			Error:   fmt.Errorf("register: %w", err),
			Code:    http.StatusBadRequest,
			Message: "Invalid registration request.",
		}
	}

	if err := data.validate(); err != nil {
		return api.Response{
			Error:   fmt.Errorf("register: %w", err),
			Code:    http.StatusBadRequest,
			Message: "Invalid registration request.",
		}
	}

	hash, err := hashPassword(data.Password)
	if err != nil {
		return api.Response{
			Error:   fmt.Errorf("register: %w", err),
			Code:    http.StatusInternalServerError,
			Message: "Failed to register user.",
		}
	}

	err = s.repository.Create(ctx, User{
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		Country:      data.Country,
		Address:      data.Address,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return api.Response{
				Error:   fmt.Errorf("register: %w", err),
				Code:    http.StatusBadRequest,
				Message: "User with this email or phone already exists.",
			}
		}

		return api.Response{
			Error:   fmt.Errorf("register: %w", err),
			Code:    http.StatusInternalServerError,
			Message: "Failed to register user.",
		}
	}

	return api.Response{
		Code:    http.StatusOK,
		Message: "User registered successfully",
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Status  string       `json:"status"`
	User    session.User `json:"user"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) api.Response {
	ctx := r.Context()

	var data loginRequest

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&data); err != nil {
		return api.Response{
			Error:   fmt.Errorf("login: %w", err),
			Code:    http.StatusBadRequest,
			Message: "Invalid login request.",
		}
	}

	// Unknown email and wrong password share one message so the response does
	// not reveal which accounts exist.
	unauthorized := func(err error) api.Response {
		return api.Response{
			Error:   fmt.Errorf("login: %w", err),
			Code:    http.StatusUnauthorized,
			Message: "Invalid email or password",
		}
	}

	u, err := s.repository.GetByEmail(ctx, data.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return unauthorized(err)
		}

		return api.Response{
			Error:   fmt.Errorf("login: %w", err),
			Code:    http.StatusInternalServerError,
			Message: "Failed to log in.",
		}
	}

	if !checkPasswordHash(data.Password, u.PasswordHash) {
		return unauthorized(errInvalidPassword)
	}

	snapshot := session.User{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Country: u.Country,
	}

	token, err := s.sessions.Create(ctx, snapshot)
	if err != nil {
		return api.Response{
			Error:   fmt.Errorf("login: %w", err),
			Code:    http.StatusInternalServerError,
			Message: "Failed to log in.",
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	return api.Response{
		Code: http.StatusOK,
		Data: loginResponse{
			Message: "Login successful",
			Status:  "success",
			User:    snapshot,
		},
	}
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) api.Response {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := s.sessions.Revoke(r.Context(), cookie.Value); err != nil {
			return api.Response{
				Error:   fmt.Errorf("logout: %w", err),
				Code:    http.StatusInternalServerError,
				Message: "Failed to log out.",
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return api.Response{
		Code:    http.StatusOK,
		Message: "Logout successful",
	}
}

// CurrentUser runs behind session.Middleware and echoes the snapshot the
// middleware attached.
func (s *Server) CurrentUser(w http.ResponseWriter, r *http.Request) api.Response {
	u, ok := session.FromContext(r.Context())
	if !ok {
		return api.Response{
			Error:   fmt.Errorf("current user: no session in context"),
			Code:    http.StatusUnauthorized,
			Message: "Not authenticated.",
		}
	}

	return api.Response{
		Code: http.StatusOK,
		Data: u,
	}
}
