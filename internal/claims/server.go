package claims

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/api"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/database"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/session"
)

type Server struct {
	repository Repository
}

func NewServer(repository Repository) *Server {
	return &Server{
		repository: repository,
	}
}

// validateIncident checks the incident fields shared by both claim types:
// inc_time as 24-hour HH:MM, inc_date as YYYY-MM-DD.
func validateIncident(incDate, incTime string) error {
	if _, err := time.Parse("15:04", incTime); err != nil {
		return fmt.Errorf("incident time %q: %w", incTime, err)
	}

	if _, err := time.Parse(time.DateOnly, incDate); err != nil {
		return fmt.Errorf("incident date %q: %w", incDate, err)
	}

	return nil
}

func unauthenticated(op string) api.Response {
	return api.Response{
		Error:   fmt.Errorf("%s: no session in context", op),
		Code:    http.StatusUnauthorized,
		Message: "Please login to submit a claim.",
	}
}

func (s *Server) SubmitProperty(w http.ResponseWriter, r *http.Request) api.Response {
	ctx := r.Context()

	if _, ok := session.FromContext(ctx); !ok {
		return unauthenticated("submit property claim")
	}

	var claim PropertyClaim

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&claim); err != nil {
		return api.Response{
			Error:   fmt.Errorf("submit property claim: %w", err),
			Code:    http.StatusBadRequest,
			Message: "Invalid property claim request.",
		}
	}

	if strings.TrimSpace(claim.PolicyNum) == "" {
		return api.Response{
			Error:   fmt.Errorf("submit property claim: missing policy number"),
			Code:    http.StatusBadRequest,
			Message: "Policy number is required.",
		}
	}

	if err := validateIncident(claim.IncidentDate, claim.IncidentTime); err != nil {
		return api.Response{
			Error:   fmt.Errorf("submit property claim: %w", err),
			Code:    http.StatusBadRequest,
			Message: "Invalid incident date or time, expected YYYY-MM-DD and HH:MM.",
		}
	}

	if err := s.repository.InsertProperty(ctx, claim); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return api.Response{
				Error:   fmt.Errorf("submit property claim: %w", err),
				Code:    http.StatusBadRequest,
				Message: "Claim with this policy number already exists.",
			}
		}

		return api.Response{
			Error:   fmt.Errorf("submit property claim: %w", err),
			Code:    http.StatusInternalServerError,
			Message: "Failed to submit property claim.",
		}
	}

	return api.Response{
		Code: http.StatusOK,
		Data: submitResponse{
			Message: "Property claim submitted successfully",
			Status:  "success",
			ClaimID: claim.PolicyNum,
		},
	}
}

type submitResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	ClaimID string `json:"claim_id"`
}

func (s *Server) SubmitMotor(w http.ResponseWriter, r *http.Request) api.Response {
	ctx := r.Context()

	if _, ok := session.FromContext(ctx); !ok {
		return unauthenticated("submit motor claim")
	}

	var claim MotorClaim

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&claim); err != nil {
		return api.Response{
			Error:   fmt.Errorf("submit motor claim: %w", err),
			Code:    http.StatusBadRequest,
			Message: "Invalid motor claim request.",
		}
	}

	if strings.TrimSpace(claim.PolicyNum) == "" {
		return api.Response{
			Error:   fmt.Errorf("submit motor claim: missing policy number"),
			Code:    http.StatusBadRequest,
			Message: "Policy number is required.",
		}
	}

	if err := validateIncident(claim.IncidentDate, claim.IncidentTime); err != nil {
		return api.Response{
			Error:   fmt.Errorf("submit motor claim: %w", err),
			Code:    http.StatusBadRequest,
			Message: "Invalid incident date or time, expected YYYY-MM-DD and HH:MM.",
		}
	}

	if err := s.repository.InsertMotor(ctx, claim); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return api.Response{
				Error:   fmt.Errorf("submit motor claim: %w", err),
				Code:    http.StatusBadRequest,
				Message: "Claim with this policy number already exists.",
			}
		}

		return api.Response{
			Error:   fmt.Errorf("submit motor claim: %w", err),
			Code:    http.StatusInternalServerError,
			Message: "Failed to submit motor claim.",
		}
	}

	return api.Response{
		Code: http.StatusOK,
		Data: submitResponse{
			Message: "Motor claim submitted successfully",
			Status:  "success",
			ClaimID: claim.PolicyNum,
		},
	}
}

type listResponse struct {
	Claims []Summary `json:"claims"`
	Total  int       `json:"total"`
}

// List returns the authenticated user's claims keyed by their phone number:
// property claims first, then motor claims, each newest-first.
func (s *Server) List(w http.ResponseWriter, r *http.Request) api.Response {
	ctx := r.Context()

	u, ok := session.FromContext(ctx)
	if !ok {
		return api.Response{
			Error:   fmt.Errorf("list claims: no session in context"),
			Code:    http.StatusUnauthorized,
			Message: "Please login to view claims.",
		}
	}

	summaries, err := s.repository.ListByPhone(ctx, u.Phone)
	if err != nil {
		return api.Response{
			Error:   fmt.Errorf("list claims: %w", err),
			Code:    http.StatusInternalServerError,
			Message: "Failed to list claims.",
		}
	}

	if summaries == nil {
		summaries = []Summary{}
	}

	return api.Response{
		Code: http.StatusOK,
		Data: listResponse{
			Claims: summaries,
			Total:  len(summaries),
		},
	}
}
