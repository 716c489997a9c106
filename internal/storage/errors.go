package storage

import (
	"fmt"

	"github.com/UkralStul/task-notes-service/internal/domain"
)

// NotFound оборачивает domain.ErrNotFound с видом и id сущности.
func NotFound(kind string, id int64) error {
	return fmt.Errorf("%s with id %d: %w", kind, id, domain.ErrNotFound)
}
