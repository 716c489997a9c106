package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Timestamp  time.Time          `json:"timestamp"`
	Status     int                `json:"status"`
	Message    string             `json:"message"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

// errBadRequest - ошибка разбора запроса (тело или путь).
type errBadRequest struct {
	msg string
}

func (e *errBadRequest) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &errBadRequest{msg: fmt.Sprintf(format, args...)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// writeError переводит ошибку в статус: валидация и разбор - 400, not found - 404, прочее - 500.
func writeError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	resp := ErrorResponse{Timestamp: time.Now().UTC(), Message: err.Error()}

	var ve *domain.ValidationError
	var br *errBadRequest
	switch {
	case errors.As(err, &ve):
		resp.Status = http.StatusBadRequest
		resp.Message = "validation failed"
		resp.Violations = ve.Violations
	case errors.As(err, &br):
		resp.Status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		resp.Status = http.StatusNotFound
	default:
		logging.FromContext(r.Context(), log).WithError(err).Error("request failed")
		resp.Status = http.StatusInternalServerError
		resp.Message = "internal server error"
	}
	writeJSON(w, resp.Status, resp)
}

// decode читает JSON-тело. Пустое тело и синтаксические ошибки - 400.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest("request body is required")
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return domain.NewValidationError(field, "must be of type "+typeErr.Type.String())
		}
		return badRequest("malformed JSON: %v", err)
	}
	return nil
}

// pathID разбирает положительный id из параметра пути.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid %s: %q", name, raw)
	}
	return id, nil
}
