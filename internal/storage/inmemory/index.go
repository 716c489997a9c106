package inmemory

import (
	"sort"

	"github.com/UkralStul/task-notes-service/internal/domain"
	"github.com/UkralStul/task-notes-service/internal/storage"
)

// index - map[key][]id, id внутри ключа отсортированы по возрастанию (порядок создания).
type index map[int64][]int64

func (ix index) add(key, id int64) {
	ids := ix[key]
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if i < len(ids) && ids[i] == id {
		return
	}
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	ix[key] = ids
}

func (ix index) remove(key, id int64) {
	ids := ix[key]
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if i == len(ids) || ids[i] != id {
		return
	}
	ids = append(ids[:i], ids[i+1:]...)
	if len(ids) == 0 {
		delete(ix, key)
		return
	}
	ix[key] = ids
}

// axisIndex - индексы для выборок по автору, личным записям, исполнителю и группе.
type axisIndex struct {
	author   index
	personal index
	doer     index
	group    index
}

func newAxisIndex() *axisIndex {
	return &axisIndex{
		author:   make(index),
		personal: make(index),
		doer:     make(index),
		group:    make(index),
	}
}

func (ax *axisIndex) add(r domain.Record, doerID *int64) {
	ax.author.add(r.AuthorID, r.ID)
	if r.IsPersonal() {
		ax.personal.add(r.AuthorID, r.ID)
	} else {
		ax.group.add(*r.GroupID, r.ID)
	}
	if doerID != nil {
		ax.doer.add(*doerID, r.ID)
	}
}

func (ax *axisIndex) remove(r domain.Record, doerID *int64) {
	ax.author.remove(r.AuthorID, r.ID)
	if r.IsPersonal() {
		ax.personal.remove(r.AuthorID, r.ID)
	} else {
		ax.group.remove(*r.GroupID, r.ID)
	}
	if doerID != nil {
		ax.doer.remove(*doerID, r.ID)
	}
}

func (ax *axisIndex) lookup(q storage.Query) []int64 {
	switch q.Axis {
	case storage.ByAuthor:
		return ax.author[q.Key]
	case storage.Personal:
		return ax.personal[q.Key]
	case storage.ByDoer:
		return ax.doer[q.Key]
	case storage.ByGroup:
		return ax.group[q.Key]
	}
	return nil
}
