// Package merge строит новое состояние сущности из текущего и частичного обновления.
package merge

import (
	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/validation"
)

// Engine - частичное обновление для одного вида сущностей.
// Validate проверяет только переданные поля, Apply заменяет ровно их.
type Engine[E any, P any] struct {
	Validate func(P) error
	Apply    func(E, P) E
}

// Merge возвращает новое состояние. При любой ошибке валидации не применяется ни одно поле,
// current не изменяется в любом случае.
func (e Engine[E, P]) Merge(current E, patch P) (E, error) {
	if err := e.Validate(patch); err != nil {
		var zero E
		return zero, err
	}
	return e.Apply(current, patch), nil
}

var (
	Tasks = Engine[domain.Task, domain.TaskPatch]{
		Validate: validation.ValidateTaskPatch,
		Apply:    applyTask,
	}
	Notes = Engine[domain.Note, domain.NotePatch]{
		Validate: validation.ValidateNotePatch,
		Apply:    applyNote,
	}
)

// NewTask собирает новую задачу: статус UNDONE и приоритет MIDDLE, если не переданы.
// ID и CreatedAt назначает хранилище.
func NewTask(in domain.TaskInput) (domain.Task, error) {
	if err := validation.ValidateTaskCreate(in); err != nil {
		return domain.Task{}, err
	}
	base := domain.Task{
		Status:   domain.StatusUndone,
		Priority: domain.PriorityMiddle,
	}
	base.AuthorID = in.AuthorID.Value
	return applyTask(base, in.TaskPatch), nil
}

// NewNote собирает новую заметку.
func NewNote(in domain.NoteInput) (domain.Note, error) {
	if err := validation.ValidateNoteCreate(in); err != nil {
		return domain.Note{}, err
	}
	var base domain.Note
	base.AuthorID = in.AuthorID.Value
	return applyNote(base, in.NotePatch), nil
}

func applyRecord(r domain.Record, p domain.RecordPatch) domain.Record {
	if p.Title.Present() {
		r.Title = p.Title.Value
	}
	if p.Description.Present() {
		r.Description = p.Description.Value
	}
	if p.GroupID.Set {
		r.GroupID = p.GroupID.Ptr()
	}
	// Локация заменяется целиком.
	if p.Location.Set {
		r.Location = nil
		if !p.Location.Null {
			loc := p.Location.Value.ToLocation()
			r.Location = &loc
		}
	}
	return r
}

func applyTask(t domain.Task, p domain.TaskPatch) domain.Task {
	out := t.Clone()
	out.Record = applyRecord(out.Record, p.RecordPatch)
	if p.DoerID.Set {
		out.DoerID = p.DoerID.Ptr()
	}
	if p.Status.Present() {
		out.Status = p.Status.Value
	}
	if p.Priority.Present() {
		out.Priority = p.Priority.Value
	}
	if p.Deadline.Set {
		out.Deadline = nil
		if !p.Deadline.Null {
			d := p.Deadline.Value.ToDeadline()
			out.Deadline = &d
		}
	}
	return out
}

func applyNote(n domain.Note, p domain.NotePatch) domain.Note {
	out := n.Clone()
	out.Record = applyRecord(out.Record, p.RecordPatch)
	return out
}
