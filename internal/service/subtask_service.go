package service

import (
	"context"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/storage"
	"github.com/UkralStul/task-notes-service/internal/validation"

	"github.com/sirupsen/logrus"
)

type SubtaskService struct {
	store storage.Storage
	log   logrus.FieldLogger
}

func NewSubtaskService(store storage.Storage, log logrus.FieldLogger) *SubtaskService {
	return &SubtaskService{store: store, log: log.WithField("service", "subtasks")}
}

// Add создает подзадачу со статусом UNDONE.
func (s *SubtaskService) Add(ctx context.Context, taskID int64, in domain.SubtaskInput) (*domain.Subtask, error) {
	if _, err := s.store.GetTaskByID(ctx, taskID); err != nil {
		return nil, err
	}
	if err := validation.ValidateSubtask(in); err != nil {
		return nil, err
	}
	created, err := s.store.CreateSubtask(ctx, &domain.Subtask{
		TaskID: taskID,
		Text:   in.Text.Value,
		Status: domain.StatusUndone,
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"id": created.ID, "task_id": taskID}).Debug("subtask added")
	return created, nil
}

func (s *SubtaskService) Get(ctx context.Context, id int64) (*domain.Subtask, error) {
	return s.store.GetSubtaskByID(ctx, id)
}

func (s *SubtaskService) UpdateStatus(ctx context.Context, id int64, in domain.SubtaskStatusInput) (*domain.Subtask, error) {
	updated, err := s.store.UpdateSubtask(ctx, id, func(current domain.Subtask) (domain.Subtask, error) {
		if err := validation.ValidateSubtaskStatus(in); err != nil {
			return current, err
		}
		current.Status = in.Status.Value
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"id": id, "status": updated.Status}).Debug("subtask status updated")
	return updated, nil
}

func (s *SubtaskService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteSubtask(ctx, id)
	logDelete(s.log, "subtask", id, err)
	return err
}
