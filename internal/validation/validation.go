// Package validation проверяет поля запросов по таблицам ограничений.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Mode определяет, проверяются ли обязательные поля.
type Mode int

const (
	// Full - создание: обязательные поля должны быть переданы.
	Full Mode = iota
	// Partial - обновление: проверяются только переданные поля.
	Partial
)

// Constraint - ограничения одного поля.
type Constraint struct {
	// Tag - тег go-playground/validator для значения поля.
	Tag      string
	Required bool
	// Nullable - null допустим и означает очистку поля.
	Nullable bool
}

// Table - ограничения полей одного вида сущности по JSON-именам.
type Table map[string]Constraint

// With возвращает новую таблицу, дополненную строками extra.
func (t Table) With(extra Table) Table {
	out := make(Table, len(t)+len(extra))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Check проверяет набор полей-кандидатов и собирает все нарушения.
// nil в fields означает, что поле передано как null.
func (t Table) Check(fields map[string]any, mode Mode) error {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	var violations []domain.Violation
	for _, name := range names {
		c := t[name]
		value, present := fields[name]
		switch {
		case !present:
			if mode == Full && c.Required {
				violations = append(violations, domain.Violation{Field: name, Message: "is required"})
			}
		case value == nil:
			if !c.Nullable || (mode == Full && c.Required) {
				violations = append(violations, domain.Violation{Field: name, Message: "must not be null"})
			}
		default:
			violations = append(violations, checkValue(name, value, c.Tag)...)
		}
	}

	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

func checkValue(name string, value any, tag string) []domain.Violation {
	var err error
	if reflect.ValueOf(value).Kind() == reflect.Struct {
		err = validate.Struct(value)
	} else if tag != "" {
		err = validate.Var(value, tag)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []domain.Violation{{Field: name, Message: err.Error()}}
	}
	out := make([]domain.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := name
		if fe.Field() != "" {
			field = name + "." + fe.Field()
		}
		out = append(out, domain.Violation{Field: field, Message: message(fe)})
	}
	return out
}

var messages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "must be no longer than %s characters",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"oneof":    "must be one of [%s]",
}

func message(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return "is invalid: " + fe.Tag()
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, fe.Param())
	}
	return msg
}
