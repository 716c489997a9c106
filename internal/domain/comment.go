package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParentKind - тип сущности, которой принадлежит комментарий.
type ParentKind string

const (
	ParentTask ParentKind = "task"
	ParentNote ParentKind = "note"
)

// ParentRef ссылается на владельца комментария: задачу или заметку.
type ParentRef struct {
	Kind ParentKind
	ID   int64
}

func TaskParent(id int64) ParentRef { return ParentRef{Kind: ParentTask, ID: id} }
func NoteParent(id int64) ParentRef { return ParentRef{Kind: ParentNote, ID: id} }

func (p ParentRef) String() string {
	return fmt.Sprintf("%s %d", p.Kind, p.ID)
}

// Comment - комментарий к задаче или заметке. ID уникален во всей системе.
type Comment struct {
	ID        int64
	Parent    ParentRef
	AuthorID  int64
	Text      string
	CreatedAt time.Time
}

type commentJSON struct {
	ID         int64      `json:"id"`
	ParentID   int64      `json:"parentId"`
	ParentType ParentKind `json:"parentType"`
	TaskID     *int64     `json:"taskId,omitempty"`
	NoteID     *int64     `json:"noteId,omitempty"`
	AuthorID   int64      `json:"authorId"`
	Text       string     `json:"text"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// MarshalJSON кроме parentId отдает taskId или noteId в зависимости от владельца.
func (c Comment) MarshalJSON() ([]byte, error) {
	out := commentJSON{
		ID:         c.ID,
		ParentID:   c.Parent.ID,
		ParentType: c.Parent.Kind,
		AuthorID:   c.AuthorID,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
	parentID := c.Parent.ID
	switch c.Parent.Kind {
	case ParentTask:
		out.TaskID = &parentID
	case ParentNote:
		out.NoteID = &parentID
	}
	return json.Marshal(out)
}
