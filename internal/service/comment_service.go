package service

import (
	"context"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/storage"
	"github.com/UkralStul/task-notes-service/internal/validation"

	"github.com/sirupsen/logrus"
)

// CommentService управляет комментариями задач и заметок. Id комментариев общие для обоих видов.
type CommentService struct {
	store storage.Storage
	log   logrus.FieldLogger
}

func NewCommentService(store storage.Storage, log logrus.FieldLogger) *CommentService {
	return &CommentService{store: store, log: log.WithField("service", "comments")}
}

func (s *CommentService) AddToTask(ctx context.Context, taskID int64, in domain.CommentInput) (*domain.Comment, error) {
	if _, err := s.store.GetTaskByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.add(ctx, domain.TaskParent(taskID), in)
}

func (s *CommentService) AddToNote(ctx context.Context, noteID int64, in domain.CommentInput) (*domain.Comment, error) {
	if _, err := s.store.GetNoteByID(ctx, noteID); err != nil {
		return nil, err
	}
	return s.add(ctx, domain.NoteParent(noteID), in)
}

// add вызывается после проверки владельца. Хранилище проверяет его еще раз атомарно.
func (s *CommentService) add(ctx context.Context, parent domain.ParentRef, in domain.CommentInput) (*domain.Comment, error) {
	if err := validation.ValidateComment(in); err != nil {
		return nil, err
	}
	created, err := s.store.CreateComment(ctx, &domain.Comment{
		Parent:   parent,
		AuthorID: in.AuthorID.Value,
		Text:     in.Text.Value,
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"id": created.ID, "parent": parent.String()}).Debug("comment added")
	return created, nil
}

// Delete удаляет комментарий по id независимо от владельца.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteComment(ctx, id)
	logDelete(s.log, "comment", id, err)
	return err
}
