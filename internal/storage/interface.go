package storage

import (
	"context"

	"github.com/UkralStul/task-notes-service/internal/domain"
)

// Axis - ось выборки списков.
type Axis string

const (
	ByAuthor Axis = "author"
	// Personal - записи автора без группы.
	Personal Axis = "personal"
	// ByDoer есть только у задач.
	ByDoer  Axis = "doer"
	ByGroup Axis = "group"
)

// Query - запрос списка по одной оси. Неизвестный ключ дает пустой список.
type Query struct {
	Axis Axis
	Key  int64
}

// TaskMutator получает актуальное состояние задачи и возвращает новое.
// Ошибка отменяет запись.
type TaskMutator func(current domain.Task) (domain.Task, error)

type NoteMutator func(current domain.Note) (domain.Note, error)

type SubtaskMutator func(current domain.Subtask) (domain.Subtask, error)

// Storage определяет контракт для хранилищ.
// Все "не найдено" возвращаются как обертка над domain.ErrNotFound.
type Storage interface {
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetTaskByID(ctx context.Context, id int64) (*domain.Task, error)
	// UpdateTask применяет fn к последнему состоянию атомарно относительно других записей той же задачи.
	UpdateTask(ctx context.Context, id int64, fn TaskMutator) (*domain.Task, error)
	// DeleteTask удаляет задачу вместе с ее комментариями и подзадачами.
	DeleteTask(ctx context.Context, id int64) error
	ListTasks(ctx context.Context, q Query) ([]*domain.Task, error)

	CreateNote(ctx context.Context, note *domain.Note) (*domain.Note, error)
	GetNoteByID(ctx context.Context, id int64) (*domain.Note, error)
	UpdateNote(ctx context.Context, id int64, fn NoteMutator) (*domain.Note, error)
	DeleteNote(ctx context.Context, id int64) error
	ListNotes(ctx context.Context, q Query) ([]*domain.Note, error)

	// CreateComment проверяет существование владельца.
	CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	GetCommentsByParent(ctx context.Context, parent domain.ParentRef) ([]*domain.Comment, error)

	CreateSubtask(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error)
	GetSubtaskByID(ctx context.Context, id int64) (*domain.Subtask, error)
	UpdateSubtask(ctx context.Context, id int64, fn SubtaskMutator) (*domain.Subtask, error)
	DeleteSubtask(ctx context.Context, id int64) error
	GetSubtasksByTaskID(ctx context.Context, taskID int64) ([]*domain.Subtask, error)

	Close() error
}
