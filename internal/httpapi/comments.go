package httpapi

import (
	"net/http"

	"github.com/UkralStul/task-notes-service/internal/domain"
)

// Комментарии и подзадачи.

func (h *Handler) addTaskComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "taskId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	// владелец проверяется раньше тела
	if _, err := h.Tasks.Get(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var in domain.CommentInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	comment, err := h.Comments.AddToTask(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (h *Handler) addNoteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "noteId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if _, err := h.Notes.Get(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var in domain.CommentInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	comment, err := h.Comments.AddToNote(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// deleteComment обслуживает оба маршрута: id комментариев общие для задач и заметок.
func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "commentId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if err := h.Comments.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addSubtask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "taskId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if _, err := h.Tasks.Get(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var in domain.SubtaskInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	subtask, err := h.Subtasks.Add(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, subtask)
}

func (h *Handler) updateSubtaskStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "subtaskId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if _, err := h.Subtasks.Get(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var in domain.SubtaskStatusInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	subtask, err := h.Subtasks.UpdateStatus(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, subtask)
}

func (h *Handler) deleteSubtask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "subtaskId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if err := h.Subtasks.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
