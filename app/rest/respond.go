package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jobnest/jobnest/app/pipeline"
	"github.com/jobnest/jobnest/app/store"
	"golang.org/x/exp/slog"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// httpError is an error with the status and the message for the client.
type httpError struct {
	Status int
	Msg    string
}

func (e *httpError) Error() string { return e.Msg }

func badRequest(msg string) error { return &httpError{Status: http.StatusBadRequest, Msg: msg} }

// decode reads the JSON body and validates it.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("Invalid request body.")
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return badRequest("Invalid " + verrs[0].Field() + ".")
		}
		return badRequest("Invalid request body.")
	}

	return nil
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.WarnContext(r.Context(), "failed to encode response", slog.Any("err", err))
	}
}

// respondError writes a single-line message for the error,
// raw errors are only logged.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, "Something went wrong, please try again later."

	var (
		herr *httpError
		verr *pipeline.ValidationError
		eerr *pipeline.ExternalCallError
	)

	switch {
	case errors.As(err, &herr):
		status, msg = herr.Status, herr.Msg
	case errors.As(err, &verr):
		status, msg = http.StatusBadRequest, verr.Msg
	case errors.As(err, &eerr):
		status, msg = http.StatusBadGateway, eerr.Msg
	case errors.Is(err, store.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found."
	case errors.Is(err, store.ErrAlreadyApplied):
		status, msg = http.StatusConflict, "You have already applied for this job."
	case errors.Is(err, store.ErrJobClosed):
		status, msg = http.StatusUnprocessableEntity, "This job is not accepting applications anymore."
	}

	lvl := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		lvl = slog.LevelWarn
	}
	s.Logger.Log(r.Context(), lvl, "request failed", slog.Int("status", status), slog.Any("err", err))

	s.respond(w, r, status, map[string]string{"error": msg})
}
