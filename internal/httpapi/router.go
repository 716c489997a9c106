// Package httpapi - REST-интерфейс сервиса задач и заметок.
package httpapi

import (
	"net/http"

	"github.com/UkralStul/task-notes-service/internal/logging"
	"github.com/UkralStul/task-notes-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Handler держит сервисы, которые обслуживают HTTP-запросы.
type Handler struct {
	Tasks    *service.TaskService
	Notes    *service.NoteService
	Comments *service.CommentService
	Subtasks *service.SubtaskService
	Log      logrus.FieldLogger
}

// NewRouter собирает chi-роутер со всеми маршрутами.
// Статические сегменты (note, details, comment, ...) у chi приоритетнее параметров.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(logging.RequestID)
	r.Use(logging.Requests(h.Log))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.createTask)
		r.Get("/{taskId}", h.getTask)
		r.Put("/{taskId}", h.updateTask)
		r.Delete("/{taskId}", h.deleteTask)
		r.Get("/details/{taskId}", h.taskDetails)

		r.Put("/{taskId}/comment", h.addTaskComment)
		r.Delete("/comment/{commentId}", h.deleteComment)

		r.Post("/{taskId}/subtask", h.addSubtask)
		r.Put("/subtasks/{subtaskId}/status", h.updateSubtaskStatus)
		r.Delete("/subtasks/{subtaskId}", h.deleteSubtask)

		r.Get("/user/{userId}", h.tasksByAuthor)
		r.Get("/personal/{userId}", h.personalTasks)
		r.Get("/doer/{userId}", h.tasksByDoer)
		r.Get("/group/{groupId}", h.tasksByGroup)

		r.Route("/note", func(r chi.Router) {
			r.Post("/", h.createNote)
			r.Get("/{noteId}", h.getNote)
			r.Put("/{noteId}", h.updateNote)
			r.Delete("/{noteId}", h.deleteNote)
			r.Get("/details/{noteId}", h.noteDetails)

			r.Put("/{noteId}/comment", h.addNoteComment)
			r.Delete("/comment/{commentId}", h.deleteComment)

			r.Get("/user/{userId}", h.notesByAuthor)
			r.Get("/personal/{userId}", h.personalNotes)
			r.Get("/group/{groupId}", h.notesByGroup)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
