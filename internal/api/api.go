package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type HTTPHandler func(w http.ResponseWriter, r *http.Request) Response

func (fn HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := fn(w, r)

	if res.Error != nil {
		slog.Error(res.Error.Error())
	}

	if err := res.Encode(w); err != nil {
		slog.Error(err.Error())
	}
}

// Response is the envelope every handler returns. When Error is set the body
// is {detail, status: "error"}; when Data is set it is encoded as the whole
// body; otherwise {message, status: "success"} is written.
type Response struct {
	Code    int
	Message string
	Data    any
	Error   error
}

func (res Response) Encode(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")

	code := res.Code
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)

	encoder := json.NewEncoder(w)

	if res.Error != nil {
		return encoder.Encode(map[string]string{
			"detail": res.Message,
			"status": "error",
		})
	}

	if res.Data != nil {
		return encoder.Encode(res.Data)
	}

	return encoder.Encode(map[string]string{
		"message": res.Message,
		"status":  "success",
	})
}
