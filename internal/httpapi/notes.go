package httpapi

import (
	"context"
	"net/http"

	"github.com/UkralStul/task-notes-service/internal/domain"
)

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	var in domain.NoteInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	note, err := h.Notes.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "noteId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	note, err := h.Notes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "noteId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if _, err := h.Notes.Get(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	var patch domain.NotePatch
	if err := decode(r, &patch); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	note, err := h.Notes.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "noteId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	if err := h.Notes.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) noteDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "noteId")
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	details, err := h.Notes.Details(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) notesByAuthor(w http.ResponseWriter, r *http.Request) {
	h.listNotes(w, r, "userId", h.Notes.ListByAuthor)
}

func (h *Handler) personalNotes(w http.ResponseWriter, r *http.Request) {
	h.listNotes(w, r, "userId", h.Notes.ListPersonal)
}

func (h *Handler) notesByGroup(w http.ResponseWriter, r *http.Request) {
	h.listNotes(w, r, "groupId", h.Notes.ListByGroup)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request, param string,
	list func(context.Context, int64) ([]*domain.Note, error)) {
	key, err := pathID(r, param)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	notes, err := list(r.Context(), key)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}
