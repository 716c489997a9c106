package httpapi

import (
	"context"
	"net/http"

	"github.com/UkralStul/task-notes-service/internal/domain"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var in domain.TaskInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	task, err := h.Tasks.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "taskId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	task, err := h.Tasks.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "taskId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	// несуществующий id важнее ошибок в теле
	if _, err := h.Tasks.Get(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var patch domain.TaskPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	task, err := h.Tasks.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "taskId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if err := h.Tasks.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) taskDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "taskId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	details, err := h.Tasks.Details(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) tasksByAuthor(w http.ResponseWriter, r *http.Request) {
	h.listTasks(w, r, "userId", h.Tasks.ListByAuthor)
}

func (h *Handler) personalTasks(w http.ResponseWriter, r *http.Request) {
	h.listTasks(w, r, "userId", h.Tasks.ListPersonal)
}

func (h *Handler) tasksByDoer(w http.ResponseWriter, r *http.Request) {
	h.listTasks(w, r, "userId", h.Tasks.ListByDoer)
}

func (h *Handler) tasksByGroup(w http.ResponseWriter, r *http.Request) {
	h.listTasks(w, r, "groupId", h.Tasks.ListByGroup)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request, param string,
	list func(context.Context, int64) ([]*domain.Task, error)) {
	key, err := pathID(r, param)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	tasks, err := list(r.Context(), key)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
