package service

import (
	"context"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/merge"
	"github.com/UkralStul/task-notes-service/internal/storage"

	"github.com/sirupsen/logrus"
)

type NoteService struct {
	store storage.Storage
	lists *lister[domain.Note]
	log   logrus.FieldLogger
}

func NewNoteService(store storage.Storage, cache ListCache[domain.Note], log logrus.FieldLogger) *NoteService {
	log = log.WithField("service", "notes")
	return &NoteService{
		store: store,
		lists: &lister[domain.Note]{cache: cache, load: store.ListNotes, log: log},
		log:   log,
	}
}

func (s *NoteService) Create(ctx context.Context, in domain.NoteInput) (*domain.Note, error) {
	note, err := merge.NewNote(in)
	if err != nil {
		return nil, err
	}
	created, err := s.store.CreateNote(ctx, &note)
	if err != nil {
		return nil, err
	}
	s.lists.invalidate(ctx)
	s.log.WithField("id", created.ID).Debug("note created")
	return created, nil
}

func (s *NoteService) Get(ctx context.Context, id int64) (*domain.Note, error) {
	return s.store.GetNoteByID(ctx, id)
}

func (s *NoteService) Update(ctx context.Context, id int64, patch domain.NotePatch) (*domain.Note, error) {
	updated, err := s.store.UpdateNote(ctx, id, func(current domain.Note) (domain.Note, error) {
		return merge.Notes.Merge(current, patch)
	})
	if err != nil {
		return nil, err
	}
	s.lists.invalidate(ctx)
	s.log.WithField("id", id).Debug("note updated")
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteNote(ctx, id)
	logDelete(s.log, "note", id, err)
	if err != nil {
		return err
	}
	s.lists.invalidate(ctx)
	return nil
}

func (s *NoteService) Details(ctx context.Context, id int64) (*domain.NoteDetails, error) {
	note, err := s.store.GetNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.GetCommentsByParent(ctx, domain.NoteParent(id))
	if err != nil {
		return nil, err
	}
	return &domain.NoteDetails{Note: *note, Comments: comments}, nil
}

func (s *NoteService) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Note, error) {
	return s.lists.list(ctx, storage.Query{Axis: storage.ByAuthor, Key: authorID})
}

func (s *NoteService) ListPersonal(ctx context.Context, authorID int64) ([]*domain.Note, error) {
	return s.lists.list(ctx, storage.Query{Axis: storage.Personal, Key: authorID})
}

func (s *NoteService) ListByGroup(ctx context.Context, groupID int64) ([]*domain.Note, error) {
	return s.lists.list(ctx, storage.Query{Axis: storage.ByGroup, Key: groupID})
}
