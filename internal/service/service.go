// Package service связывает валидацию, слияние и хранилище в операции над задачами,
// заметками, комментариями и подзадачами.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/storage"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ListCache - кэш выборок. Реализуется cache.ListCache.
type ListCache[T any] interface {
	Get(ctx context.Context, axis string, key int64) ([]*T, error)
	Set(ctx context.Context, gen int64, axis string, key int64, list []*T) error
	Generation(ctx context.Context) (int64, error)
	InvalidateAll(ctx context.Context) error
}

// lister выполняет выборки через кэш, если он задан.
// Одновременные промахи по одному ключу идут в хранилище один раз.
type lister[T any] struct {
	cache ListCache[T]
	sf    singleflight.Group
	load  func(ctx context.Context, q storage.Query) ([]*T, error)
	log   logrus.FieldLogger
}

func (l *lister[T]) list(ctx context.Context, q storage.Query) ([]*T, error) {
	if l.cache == nil {
		return l.load(ctx, q)
	}

	key := fmt.Sprintf("%s:%d", q.Axis, q.Key)
	// результат общий для всех ожидающих, поэтому отмена запроса ведущего его не прерывает
	fillCtx := context.WithoutCancel(ctx)
	v, err, _ := l.sf.Do(key, func() (any, error) {
		list, err := l.cache.Get(fillCtx, string(q.Axis), q.Key)
		if err == nil && list != nil {
			return list, nil
		}
		if err != nil {
			l.log.WithError(err).Warn("list cache read failed")
		}

		// поколение читается до выборки, иначе устаревший результат переживет инвалидацию
		gen, genErr := l.cache.Generation(fillCtx)
		list, err = l.load(fillCtx, q)
		if err != nil {
			return nil, err
		}
		if genErr == nil {
			if err := l.cache.Set(fillCtx, gen, string(q.Axis), q.Key, list); err != nil {
				l.log.WithError(err).Warn("list cache write failed")
			}
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*T), nil
}

func (l *lister[T]) invalidate(ctx context.Context) {
	if l.cache == nil {
		return
	}
	if err := l.cache.InvalidateAll(ctx); err != nil {
		l.log.WithError(err).Warn("list cache invalidation failed")
	}
}

// logDelete пишет результат удаления: "не найдено" - на info, остальное - на debug.
func logDelete(log logrus.FieldLogger, kind string, id int64, err error) {
	entry := log.WithFields(logrus.Fields{"kind": kind, "id": id})
	switch {
	case err == nil:
		entry.Debug("deleted")
	case errors.Is(err, domain.ErrNotFound):
		entry.Info("delete of unknown id")
	}
}
