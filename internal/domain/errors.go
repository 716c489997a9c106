package domain

import (
	"errors"
	"strings"
)

// ErrNotFound возвращается, когда сущность с указанным id не существует.
var ErrNotFound = errors.New("not found")

// Violation - нарушенное ограничение одного поля.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError содержит все нарушения, найденные в запросе.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError - ошибка с одним нарушением.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Message: message}}}
}

// IsValidation сообщает, что err (или обернутая в нем ошибка) - ошибка валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
