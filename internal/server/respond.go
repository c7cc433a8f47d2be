package server

import (
	"encoding/json"
	"errors"
	"net/http"

	perrors "github.com/matzehuels/phrasenet/pkg/errors"
)

type errorBody struct {
	Code   perrors.Code `json:"code"`
	Detail string       `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports err with the status of its code. Uncoded errors are
// reported as INTERNAL_ERROR.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	status := perrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
	writeJSON(w, status, errorBody{Code: code, Detail: detail(err)})
}

// detail is the user message plus the underlying cause, if any.
func detail(err error) string {
	var e *perrors.Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
