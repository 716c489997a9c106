package main

import (
	"context"
	"fmt"
	"time"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/merge"
	"github.com/UkralStul/task-notes-service/internal/storage"
)

func ptr[T any](v T) *T { return &v }

// fillWithMockData заполняет хранилище демонстрационными данными.
// Записи собираются теми же функциями, что и запросы API, поэтому проходят валидацию.
func fillWithMockData(ctx context.Context, s storage.Storage) error {
	// 1. Личная задача с локацией.
	var personal domain.TaskInput
	personal.AuthorID = domain.Some(int64(1))
	personal.Title = domain.Some("Купить продукты")
	personal.Description = domain.Some("Молоко, хлеб, яйца")
	personal.Location = domain.Some(domain.LocationInput{
		Latitude:         ptr(55.7558),
		Longitude:        ptr(37.6173),
		Name:             ptr("Магазин у дома"),
		RemindByLocation: ptr(true),
	})
	task, err := createTask(ctx, s, personal)
	if err != nil {
		return err
	}

	// 2. Групповая задача с исполнителем и сроком.
	var group domain.TaskInput
	group.AuthorID = domain.Some(int64(1))
	group.Title = domain.Some("Подготовить отчет")
	group.Description = domain.Some("Квартальный отчет для команды")
	group.GroupID = domain.Some(int64(10))
	group.DoerID = domain.Some(int64(2))
	group.Priority = domain.Some(domain.PriorityHigh)
	group.Deadline = domain.Some(domain.DeadlineInput{
		Time:         ptr(time.Now().UTC().Add(72 * time.Hour).Truncate(time.Second)),
		RemindByTime: ptr(true),
	})
	if _, err := createTask(ctx, s, group); err != nil {
		return err
	}

	// 3. Комментарий и подзадача к личной задаче.
	if _, err := s.CreateComment(ctx, &domain.Comment{
		Parent:   domain.TaskParent(task.ID),
		AuthorID: 2,
		Text:     "Не забудь про скидочную карту",
	}); err != nil {
		return fmt.Errorf("fillWithMockData: failed to create comment: %w", err)
	}
	if _, err := s.CreateSubtask(ctx, &domain.Subtask{
		TaskID: task.ID,
		Text:   "Проверить холодильник",
		Status: domain.StatusUndone,
	}); err != nil {
		return fmt.Errorf("fillWithMockData: failed to create subtask: %w", err)
	}

	// 4. Заметка.
	var noteIn domain.NoteInput
	noteIn.AuthorID = domain.Some(int64(1))
	noteIn.Title = domain.Some("Идеи")
	noteIn.Description = domain.Some("Попробовать новый рецепт")
	n, err := merge.NewNote(noteIn)
	if err != nil {
		return fmt.Errorf("fillWithMockData: invalid note: %w", err)
	}
	if _, err := s.CreateNote(ctx, &n); err != nil {
		return fmt.Errorf("fillWithMockData: failed to create note: %w", err)
	}
	return nil
}

func createTask(ctx context.Context, s storage.Storage, in domain.TaskInput) (*domain.Task, error) {
	t, err := merge.NewTask(in)
	if err != nil {
		return nil, fmt.Errorf("fillWithMockData: invalid task: %w", err)
	}
	created, err := s.CreateTask(ctx, &t)
	if err != nil {
		return nil, fmt.Errorf("fillWithMockData: failed to create task: %w", err)
	}
	return created, nil
}
