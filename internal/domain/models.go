package domain

import "time"

// Status - статус задачи.
type Status string

const (
	StatusUndone Status = "UNDONE"
	StatusDone   Status = "DONE"
)

// Priority - приоритет задачи.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMiddle Priority = "MIDDLE"
	PriorityHigh   Priority = "HIGH"
)

// Location - точка для напоминания по геопозиции. Хранится только целиком.
type Location struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Name             string  `json:"name"`
	RemindByLocation bool    `json:"remindByLocation"`
}

// Deadline - срок задачи и флаг напоминания по времени.
type Deadline struct {
	Time         time.Time `json:"time"`
	RemindByTime bool      `json:"remindByTime"`
}

// Record - общие поля задачи и заметки.
type Record struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    int64     `json:"authorId"`
	GroupID     *int64    `json:"groupId"`
	Location    *Location `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsPersonal сообщает, что запись не привязана к группе.
func (r Record) IsPersonal() bool {
	return r.GroupID == nil
}

func (r Record) clone() Record {
	out := r
	out.GroupID = cloneID(r.GroupID)
	if r.Location != nil {
		loc := *r.Location
		out.Location = &loc
	}
	return out
}

// Task представляет задачу.
type Task struct {
	Record
	DoerID   *int64    `json:"doerId"`
	Status   Status    `json:"status"`
	Priority Priority  `json:"priority"`
	Deadline *Deadline `json:"deadline"`
}

// Clone возвращает копию задачи, не разделяющую указатели с исходной.
func (t Task) Clone() Task {
	out := t
	out.Record = t.Record.clone()
	out.DoerID = cloneID(t.DoerID)
	if t.Deadline != nil {
		d := *t.Deadline
		out.Deadline = &d
	}
	return out
}

// Note представляет заметку: задача без статуса, приоритета, исполнителя и срока.
type Note struct {
	Record
}

// Clone возвращает копию заметки.
func (n Note) Clone() Note {
	return Note{Record: n.Record.clone()}
}

// Subtask - подзадача, принадлежит одной задаче.
type Subtask struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"taskId"`
	Text      string    `json:"text"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskDetails - задача вместе с комментариями и подзадачами.
type TaskDetails struct {
	Task
	Comments []*Comment `json:"comments"`
	Subtasks []*Subtask `json:"subtasks"`
}

// NoteDetails - заметка вместе с комментариями.
type NoteDetails struct {
	Note
	Comments []*Comment `json:"comments"`
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
