// Package support handles support-ticket submissions. Tickets are
// acknowledged with a generated id but not stored.
package support

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/api"
	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/session"
	"github.com/google/uuid"
)

type Server struct {
	sessions session.Store
}

func NewServer(sessions session.Store) *Server {
	return &Server{
		sessions: sessions,
	}
}

type ticketRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Policy   *string `json:"policy"`
	Subject  string  `json:"subject"`
	Priority string  `json:"priority"`
	Message  string  `json:"message"`
}

type ticketResponse struct {
	Message  string `json:"message"`
	Status   string `json:"status"`
	TicketID string `json:"ticket_id"`
}

// SubmitTicket accepts a ticket with or without a session; a logged-in
// caller's contact details win over the payload's.
// TODO: persist tickets to a support_tickets table.
func (s *Server) SubmitTicket(w http.ResponseWriter, r *http.Request) api.Response {
	var ticket ticketRequest

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&ticket); err != nil {
		return api.Response{
			Error:   fmt.Errorf("submit ticket: %w", err),
			Code:    http.StatusBadRequest,
			Message: "Invalid support ticket request.",
		}
	}

	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if u, ok, err := s.sessions.Lookup(r.Context(), cookie.Value); err == nil && ok {
			ticket.Name = u.Name
			ticket.Email = u.Email
			ticket.Phone = u.Phone
		}
	}

	ticketID := fmt.Sprintf("TKT-%s-%s",
		time.Now().Format("20060102"), uuid.NewString()[:6])

	return api.Response{
		Code: http.StatusOK,
		Data: ticketResponse{
			Message:  "Support ticket submitted successfully",
			Status:   "success",
			TicketID: ticketID,
		},
	}
}
