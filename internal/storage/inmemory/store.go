package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/storage"
)

var _ storage.Storage = (*Store)(nil)

// Store реализует интерфейс Storage в памяти.
//
// mu защищает карты и индексы и держится недолго. Чтение-изменение-запись одной
// сущности сериализуется через keyedMutex по ее id.
type Store struct {
	mu       sync.RWMutex
	tasks    map[int64]*domain.Task
	notes    map[int64]*domain.Note
	comments map[int64]*domain.Comment
	subtasks map[int64]*domain.Subtask

	taskIdx          *axisIndex
	noteIdx          *axisIndex
	commentsByParent map[domain.ParentRef][]int64 // ownership: владелец -> id комментариев
	subtasksByTask   map[int64][]int64

	taskLocks    *keyedMutex
	noteLocks    *keyedMutex
	subtaskLocks *keyedMutex

	// Последние выданные id. Id не переиспользуются после удаления.
	lastTaskID    int64
	lastNoteID    int64
	lastCommentID int64
	lastSubtaskID int64

	now func() time.Time
}

// New создает новый экземпляр in-memory хранилища.
func New() *Store {
	return &Store{
		tasks:            make(map[int64]*domain.Task),
		notes:            make(map[int64]*domain.Note),
		comments:         make(map[int64]*domain.Comment),
		subtasks:         make(map[int64]*domain.Subtask),
		taskIdx:          newAxisIndex(),
		noteIdx:          newAxisIndex(),
		commentsByParent: make(map[domain.ParentRef][]int64),
		subtasksByTask:   make(map[int64][]int64),
		taskLocks:        newKeyedMutex(),
		noteLocks:        newKeyedMutex(),
		subtaskLocks:     newKeyedMutex(),
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Close() error { return nil }

// === Task Methods ===

func (s *Store) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTaskID++
	stored := task.Clone()
	stored.ID = s.lastTaskID
	stored.CreatedAt = s.now()
	s.tasks[stored.ID] = &stored
	s.taskIdx.add(stored.Record, stored.DoerID)

	out := stored.Clone()
	return &out, nil
}

func (s *Store) GetTaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, storage.NotFound("task", id)
	}
	out := task.Clone()
	return &out, nil
}

func (s *Store) UpdateTask(ctx context.Context, id int64, fn storage.TaskMutator) (*domain.Task, error) {
	unlock := s.taskLocks.Lock(id)
	defer unlock()

	current, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := fn(*current)
	if err != nil {
		return nil, err
	}
	// Неизменяемые поля всегда берутся из сохраненной версии.
	next.ID = current.ID
	next.AuthorID = current.AuthorID
	next.CreatedAt = current.CreatedAt

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.tasks[id]
	if !ok {
		return nil, storage.NotFound("task", id)
	}
	s.taskIdx.remove(old.Record, old.DoerID)
	stored := next.Clone()
	s.tasks[id] = &stored
	s.taskIdx.add(stored.Record, stored.DoerID)

	out := stored.Clone()
	return &out, nil
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	unlock := s.taskLocks.Lock(id)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return storage.NotFound("task", id)
	}
	s.dropComments(domain.TaskParent(id))
	for _, sid := range s.subtasksByTask[id] {
		delete(s.subtasks, sid)
	}
	delete(s.subtasksByTask, id)
	s.taskIdx.remove(task.Record, task.DoerID)
	delete(s.tasks, id)
	return nil
}

func (s *Store) ListTasks(ctx context.Context, q storage.Query) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.taskIdx.lookup(q)
	out := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.tasks[id]; ok {
			c := t.Clone()
			out = append(out, &c)
		}
	}
	return out, nil
}

// === Note Methods ===

func (s *Store) CreateNote(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastNoteID++
	stored := note.Clone()
	stored.ID = s.lastNoteID
	stored.CreatedAt = s.now()
	s.notes[stored.ID] = &stored
	s.noteIdx.add(stored.Record, nil)

	out := stored.Clone()
	return &out, nil
}

func (s *Store) GetNoteByID(ctx context.Context, id int64) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, storage.NotFound("note", id)
	}
	out := note.Clone()
	return &out, nil
}

func (s *Store) UpdateNote(ctx context.Context, id int64, fn storage.NoteMutator) (*domain.Note, error) {
	unlock := s.noteLocks.Lock(id)
	defer unlock()

	current, err := s.GetNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := fn(*current)
	if err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.AuthorID = current.AuthorID
	next.CreatedAt = current.CreatedAt

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.notes[id]
	if !ok {
		return nil, storage.NotFound("note", id)
	}
	s.noteIdx.remove(old.Record, nil)
	stored := next.Clone()
	s.notes[id] = &stored
	s.noteIdx.add(stored.Record, nil)

	out := stored.Clone()
	return &out, nil
}

func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	unlock := s.noteLocks.Lock(id)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok {
		return storage.NotFound("note", id)
	}
	s.dropComments(domain.NoteParent(id))
	s.noteIdx.remove(note.Record, nil)
	delete(s.notes, id)
	return nil
}

func (s *Store) ListNotes(ctx context.Context, q storage.Query) ([]*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.noteIdx.lookup(q)
	out := make([]*domain.Note, 0, len(ids))
	for _, id := range ids {
		if n, ok := s.notes[id]; ok {
			c := n.Clone()
			out = append(out, &c)
		}
	}
	return out, nil
}

// === Comment Methods ===

func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.parentExists(comment.Parent) {
		return nil, storage.NotFound(string(comment.Parent.Kind), comment.Parent.ID)
	}

	s.lastCommentID++
	stored := *comment
	stored.ID = s.lastCommentID
	stored.CreatedAt = s.now()
	s.comments[stored.ID] = &stored
	s.commentsByParent[stored.Parent] = append(s.commentsByParent[stored.Parent], stored.ID)

	out := stored
	return &out, nil
}

func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[id]
	if !ok {
		return storage.NotFound("comment", id)
	}
	ids := s.commentsByParent[comment.Parent]
	for i, cid := range ids {
		if cid == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(s.commentsByParent, comment.Parent)
	} else {
		s.commentsByParent[comment.Parent] = ids
	}
	delete(s.comments, id)
	return nil
}

func (s *Store) GetCommentsByParent(ctx context.Context, parent domain.ParentRef) ([]*domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.commentsByParent[parent]
	out := make([]*domain.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.comments[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// dropComments вызывается под s.mu.
func (s *Store) dropComments(parent domain.ParentRef) {
	for _, id := range s.commentsByParent[parent] {
		delete(s.comments, id)
	}
	delete(s.commentsByParent, parent)
}

func (s *Store) parentExists(p domain.ParentRef) bool {
	switch p.Kind {
	case domain.ParentTask:
		_, ok := s.tasks[p.ID]
		return ok
	case domain.ParentNote:
		_, ok := s.notes[p.ID]
		return ok
	}
	return false
}

// === Subtask Methods ===

func (s *Store) CreateSubtask(ctx context.Context, subtask *domain.Subtask) (*domain.Subtask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[subtask.TaskID]; !ok {
		return nil, storage.NotFound("task", subtask.TaskID)
	}

	s.lastSubtaskID++
	stored := *subtask
	stored.ID = s.lastSubtaskID
	stored.CreatedAt = s.now()
	s.subtasks[stored.ID] = &stored
	s.subtasksByTask[stored.TaskID] = append(s.subtasksByTask[stored.TaskID], stored.ID)

	out := stored
	return &out, nil
}

func (s *Store) GetSubtaskByID(ctx context.Context, id int64) (*domain.Subtask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.subtasks[id]
	if !ok {
		return nil, storage.NotFound("subtask", id)
	}
	out := *st
	return &out, nil
}

func (s *Store) UpdateSubtask(ctx context.Context, id int64, fn storage.SubtaskMutator) (*domain.Subtask, error) {
	unlock := s.subtaskLocks.Lock(id)
	defer unlock()

	s.mu.RLock()
	st, ok := s.subtasks[id]
	var current domain.Subtask
	if ok {
		current = *st
	}
	s.mu.RUnlock()
	if !ok {
		return nil, storage.NotFound("subtask", id)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.TaskID = current.TaskID
	next.CreatedAt = current.CreatedAt

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subtasks[id]; !ok {
		return nil, storage.NotFound("subtask", id)
	}
	stored := next
	s.subtasks[id] = &stored
	out := stored
	return &out, nil
}

func (s *Store) DeleteSubtask(ctx context.Context, id int64) error {
	unlock := s.subtaskLocks.Lock(id)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.subtasks[id]
	if !ok {
		return storage.NotFound("subtask", id)
	}
	ids := s.subtasksByTask[st.TaskID]
	for i, sid := range ids {
		if sid == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(s.subtasksByTask, st.TaskID)
	} else {
		s.subtasksByTask[st.TaskID] = ids
	}
	delete(s.subtasks, id)
	return nil
}

func (s *Store) GetSubtasksByTaskID(ctx context.Context, taskID int64) ([]*domain.Subtask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.subtasksByTask[taskID]
	out := make([]*domain.Subtask, 0, len(ids))
	for _, id := range ids {
		if st, ok := s.subtasks[id]; ok {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, nil
}
