package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ storage.Storage = (*Store)(nil)

// Store реализует интерфейс Storage с использованием PostgreSQL.
type Store struct {
	db *gorm.DB
}

// New создает новый экземпляр хранилища PostgreSQL и мигрирует схему.
func New(dsn string, logLevel logger.LogLevel) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&taskRow{}, &noteRow{}, &commentRow{}, &subtaskRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// notFound переводит gorm.ErrRecordNotFound в domain.ErrNotFound.
func notFound(err error, kind string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.NotFound(kind, id)
	}
	return err
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// === Task Methods ===

func (s *Store) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	row := newTaskRow(task)
	row.ID = 0
	row.CreatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (s *Store) GetTaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	var row taskRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "task", id)
	}
	return row.toDomain(), nil
}

func (s *Store) UpdateTask(ctx context.Context, id int64, fn storage.TaskMutator) (*domain.Task, error) {
	var out *domain.Task
	// SELECT ... FOR UPDATE держит строку до конца транзакции
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row taskRow
		if err := forUpdate(tx).First(&row, "id = ?", id).Error; err != nil {
			return notFound(err, "task", id)
		}
		current := row.toDomain()
		next, err := fn(*current)
		if err != nil {
			return err
		}
		next.ID = current.ID
		next.AuthorID = current.AuthorID
		next.CreatedAt = current.CreatedAt

		updated := newTaskRow(&next)
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		out = updated.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row taskRow
		if err := forUpdate(tx).Select("id").First(&row, "id = ?", id).Error; err != nil {
			return notFound(err, "task", id)
		}
		if err := tx.Where("parent_kind = ? AND parent_id = ?", string(domain.ParentTask), id).
			Delete(&commentRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&subtaskRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&taskRow{}, id).Error
	})
}

func (s *Store) ListTasks(ctx context.Context, q storage.Query) ([]*domain.Task, error) {
	query := s.db.WithContext(ctx).Order("id ASC")
	switch q.Axis {
	case storage.ByAuthor:
		query = query.Where("author_id = ?", q.Key)
	case storage.Personal:
		query = query.Where("author_id = ? AND group_id IS NULL", q.Key)
	case storage.ByDoer:
		query = query.Where("doer_id = ?", q.Key)
	case storage.ByGroup:
		query = query.Where("group_id = ?", q.Key)
	default:
		return []*domain.Task{}, nil
	}

	var rows []taskRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Task, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// === Note Methods ===

func (s *Store) CreateNote(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	row := newNoteRow(note)
	row.ID = 0
	row.CreatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (s *Store) GetNoteByID(ctx context.Context, id int64) (*domain.Note, error) {
	var row noteRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "note", id)
	}
	return row.toDomain(), nil
}

func (s *Store) UpdateNote(ctx context.Context, id int64, fn storage.NoteMutator) (*domain.Note, error) {
	var out *domain.Note
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row noteRow
		if err := forUpdate(tx).First(&row, "id = ?", id).Error; err != nil {
			return notFound(err, "note", id)
		}
		current := row.toDomain()
		next, err := fn(*current)
		if err != nil {
			return err
		}
		next.ID = current.ID
		next.AuthorID = current.AuthorID
		next.CreatedAt = current.CreatedAt

		updated := newNoteRow(&next)
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		out = updated.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row noteRow
		if err := forUpdate(tx).Select("id").First(&row, "id = ?", id).Error; err != nil {
			return notFound(err, "note", id)
		}
		if err := tx.Where("parent_kind = ? AND parent_id = ?", string(domain.ParentNote), id).
			Delete(&commentRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&noteRow{}, id).Error
	})
}

func (s *Store) ListNotes(ctx context.Context, q storage.Query) ([]*domain.Note, error) {
	query := s.db.WithContext(ctx).Order("id ASC")
	switch q.Axis {
	case storage.ByAuthor:
		query = query.Where("author_id = ?", q.Key)
	case storage.Personal:
		query = query.Where("author_id = ? AND group_id IS NULL", q.Key)
	case storage.ByGroup:
		query = query.Where("group_id = ?", q.Key)
	default:
		return []*domain.Note{}, nil
	}

	var rows []noteRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Note, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// === Comment Methods ===

func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	row := commentRow{
		ParentKind: string(comment.Parent.Kind),
		ParentID:   comment.Parent.ID,
		AuthorID:   comment.AuthorID,
		Text:       comment.Text,
		CreatedAt:  time.Now().UTC(),
	}

	// Владелец блокируется на чтение, чтобы параллельное удаление не оставило сирот.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent any
		switch comment.Parent.Kind {
		case domain.ParentTask:
			parent = &taskRow{}
		case domain.ParentNote:
			parent = &noteRow{}
		default:
			return storage.NotFound(string(comment.Parent.Kind), comment.Parent.ID)
		}
		err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Select("id").First(parent, "id = ?", comment.Parent.ID).Error
		if err != nil {
			return notFound(err, string(comment.Parent.Kind), comment.Parent.ID)
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&commentRow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.NotFound("comment", id)
	}
	return nil
}

func (s *Store) GetCommentsByParent(ctx context.Context, parent domain.ParentRef) ([]*domain.Comment, error) {
	var rows []commentRow
	err := s.db.WithContext(ctx).
		Where("parent_kind = ? AND parent_id = ?", string(parent.Kind), parent.ID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Comment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// === Subtask Methods ===

func (s *Store) CreateSubtask(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error) {
	row := subtaskRow{
		TaskID:    subtask.TaskID,
		Text:      subtask.Text,
		Status:    string(subtask.Status),
		CreatedAt: time.Now().UTC(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent taskRow
		err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Select("id").First(&parent, "id = ?", subtask.TaskID).Error
		if err != nil {
			return notFound(err, "task", subtask.TaskID)
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (s *Store) GetSubtaskByID(ctx context.Context, id int64) (*domain.Subtask, error) {
	var row subtaskRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "subtask", id)
	}
	return row.toDomain(), nil
}

func (s *Store) UpdateSubtask(ctx context.Context, id int64, fn storage.SubtaskMutator) (*domain.Subtask, error) {
	var out *domain.Subtask
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row subtaskRow
		if err := forUpdate(tx).First(&row, "id = ?", id).Error; err != nil {
			return notFound(err, "subtask", id)
		}
		current := row.toDomain()
		next, err := fn(*current)
		if err != nil {
			return err
		}
		row.Text = next.Text
		row.Status = string(next.Status)
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		out = row.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteSubtask(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&subtaskRow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return storage.NotFound("subtask", id)
	}
	return nil
}

func (s *Store) GetSubtasksByTaskID(ctx context.Context, taskID int64) ([]*domain.Subtask, error) {
	var rows []subtaskRow
	err := s.db.WithContext(ctx).Where("task_id = ?", taskID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Subtask, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}
