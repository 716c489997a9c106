package postgres

import (
	"time"

	"github.com/UkralStul/task-notes-service/internal/domain"
)

// Строки таблиц. Доменные модели не знают про gorm.

type locationColumns struct {
	Latitude  *float64
	Longitude *float64
	Name      *string `gorm:"type:varchar(200)"`
	Remind    *bool
}

func toLocationColumns(loc *domain.Location) locationColumns {
	if loc == nil {
		return locationColumns{}
	}
	return locationColumns{
		Latitude:  &loc.Latitude,
		Longitude: &loc.Longitude,
		Name:      &loc.Name,
		Remind:    &loc.RemindByLocation,
	}
}

// toDomain: локация существует только если заполнены все колонки.
func (c locationColumns) toDomain() *domain.Location {
	if c.Latitude == nil || c.Longitude == nil || c.Name == nil || c.Remind == nil {
		return nil
	}
	return &domain.Location{
		Latitude:         *c.Latitude,
		Longitude:        *c.Longitude,
		Name:             *c.Name,
		RemindByLocation: *c.Remind,
	}
}

type taskRow struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	Title        string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:varchar(1000);not null"`
	AuthorID     int64           `gorm:"not null;index"`
	GroupID      *int64          `gorm:"index"`
	DoerID       *int64          `gorm:"index"`
	Status       string          `gorm:"type:varchar(16);not null;default:UNDONE"`
	Priority     string          `gorm:"type:varchar(16);not null;default:MIDDLE"`
	Location     locationColumns `gorm:"embedded;embeddedPrefix:location_"`
	DeadlineTime *time.Time
	RemindByTime *bool
	CreatedAt    time.Time `gorm:"not null"`
}

func (taskRow) TableName() string { return "tasks" }

func newTaskRow(t *domain.Task) taskRow {
	row := taskRow{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		AuthorID:    t.AuthorID,
		GroupID:     t.GroupID,
		DoerID:      t.DoerID,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Location:    toLocationColumns(t.Location),
		CreatedAt:   t.CreatedAt,
	}
	if t.Deadline != nil {
		tm := t.Deadline.Time
		remind := t.Deadline.RemindByTime
		row.DeadlineTime = &tm
		row.RemindByTime = &remind
	}
	return row
}

func (r taskRow) toDomain() *domain.Task {
	t := &domain.Task{
		DoerID:   r.DoerID,
		Status:   domain.Status(r.Status),
		Priority: domain.Priority(r.Priority),
	}
	t.Record = domain.Record{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		AuthorID:    r.AuthorID,
		GroupID:     r.GroupID,
		Location:    r.Location.toDomain(),
		CreatedAt:   r.CreatedAt.UTC(),
	}
	if r.DeadlineTime != nil {
		d := &domain.Deadline{Time: r.DeadlineTime.UTC()}
		if r.RemindByTime != nil {
			d.RemindByTime = *r.RemindByTime
		}
		t.Deadline = d
	}
	return t
}

type noteRow struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:varchar(1000);not null"`
	AuthorID    int64           `gorm:"not null;index"`
	GroupID     *int64          `gorm:"index"`
	Location    locationColumns `gorm:"embedded;embeddedPrefix:location_"`
	CreatedAt   time.Time       `gorm:"not null"`
}

func (noteRow) TableName() string { return "notes" }

func newNoteRow(n *domain.Note) noteRow {
	return noteRow{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		AuthorID:    n.AuthorID,
		GroupID:     n.GroupID,
		Location:    toLocationColumns(n.Location),
		CreatedAt:   n.CreatedAt,
	}
}

func (r noteRow) toDomain() *domain.Note {
	return &domain.Note{Record: domain.Record{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		AuthorID:    r.AuthorID,
		GroupID:     r.GroupID,
		Location:    r.Location.toDomain(),
		CreatedAt:   r.CreatedAt.UTC(),
	}}
}

// commentRow - одна таблица для комментариев задач и заметок, id общий.
type commentRow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ParentKind string    `gorm:"type:varchar(8);not null;index:idx_comments_parent,priority:1"`
	ParentID   int64     `gorm:"not null;index:idx_comments_parent,priority:2"`
	AuthorID   int64     `gorm:"not null"`
	Text       string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (commentRow) TableName() string { return "comments" }

func (r commentRow) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        r.ID,
		Parent:    domain.ParentRef{Kind: domain.ParentKind(r.ParentKind), ID: r.ParentID},
		AuthorID:  r.AuthorID,
		Text:      r.Text,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type subtaskRow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	TaskID    int64     `gorm:"not null;index"`
	Text      string    `gorm:"type:varchar(255);not null"`
	Status    string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (subtaskRow) TableName() string { return "subtasks" }

func (r subtaskRow) toDomain() *domain.Subtask {
	return &domain.Subtask{
		ID:        r.ID,
		TaskID:    r.TaskID,
		Text:      r.Text,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
	}
}
