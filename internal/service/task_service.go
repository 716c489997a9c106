package service

import (
	"context"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/merge"
	"github.com/UkralStul/task-notes-service/internal/storage"

	"github.com/sirupsen/logrus"
)

type TaskService struct {
	store storage.Storage
	lists *lister[domain.Task]
	log   logrus.FieldLogger
}

// NewTaskService создает TaskService. Если cache nil, кэш списков отключен.
func NewTaskService(store storage.Storage, cache ListCache[domain.Task], log logrus.FieldLogger) *TaskService {
	log = log.WithField("service", "tasks")
	return &TaskService{
		store: store,
		lists: &lister[domain.Task]{cache: cache, load: store.ListTasks, log: log},
		log:   log,
	}
}

func (s *TaskService) Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	task, err := merge.NewTask(in)
	if err != nil {
		return nil, err
	}
	created, err := s.store.CreateTask(ctx, &task)
	if err != nil {
		return nil, err
	}
	s.lists.invalidate(ctx)
	s.log.WithField("id", created.ID).Debug("task created")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.store.GetTaskByID(ctx, id)
}

// Update применяет частичное обновление к последней версии задачи.
func (s *TaskService) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	updated, err := s.store.UpdateTask(ctx, id, func(current domain.Task) (domain.Task, error) {
		return merge.Tasks.Merge(current, patch)
	})
	if err != nil {
		return nil, err
	}
	s.lists.invalidate(ctx)
	s.log.WithField("id", id).Debug("task updated")
	return updated, nil
}

// Delete удаляет задачу вместе с комментариями и подзадачами.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteTask(ctx, id)
	logDelete(s.log, "task", id, err)
	if err != nil {
		return err
	}
	s.lists.invalidate(ctx)
	return nil
}

// Details возвращает задачу с комментариями и подзадачами в порядке создания.
func (s *TaskService) Details(ctx context.Context, id int64) (*domain.TaskDetails, error) {
	task, err := s.store.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.GetCommentsByParent(ctx, domain.TaskParent(id))
	if err != nil {
		return nil, err
	}
	subtasks, err := s.store.GetSubtasksByTaskID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.TaskDetails{Task: *task, Comments: comments, Subtasks: subtasks}, nil
}

func (s *TaskService) ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Task, error) {
	return s.lists.list(ctx, storage.Query{Axis: storage.ByAuthor, Key: authorID})
}

// ListPersonal возвращает задачи автора без группы.
func (s *TaskService) ListPersonal(ctx context.Context, authorID int64) ([]*domain.Task, error) {
	return s.lists.list(ctx, storage.Query{Axis: storage.Personal, Key: authorID})
}

func (s *TaskService) ListByDoer(ctx context.Context, doerID int64) ([]*domain.Task, error) {
	return s.lists.list(ctx, storage.Query{Axis: storage.ByDoer, Key: doerID})
}

func (s *TaskService) ListByGroup(ctx context.Context, groupID int64) ([]*domain.Task, error) {
	return s.lists.list(ctx, storage.Query{Axis: storage.ByGroup, Key: groupID})
}
