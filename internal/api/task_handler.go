package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/pomodoro-api/internal/api/shared"
	"github.com/phrazzld/pomodoro-api/internal/domain"
	"github.com/phrazzld/pomodoro-api/internal/service/task"
)

// TaskHandler serves the task endpoints.
type TaskHandler struct {
	taskService *task.Service
}

// NewTaskHandler creates a TaskHandler backed by the given service.
func NewTaskHandler(taskService *task.Service) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// GetAll handles GET /tasks/all: every task, served through the cache.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.GetTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /tasks/. Zero-valued fields in the payload are
// replaced with defaults before the task is stored.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}

	created, err := h.taskService.Create(r.Context(), domain.TaskInput{
		Name:          req.Name,
		PomodoroCount: req.PomodoroCount,
		CategoryID:    req.CategoryID,
	}, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// GetByID handles GET /tasks/id/{task_id}. The lookup is global, not scoped
// to the caller.
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathID(r, "task_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	t, err := h.taskService.GetByID(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, t)
}

// GetByName handles GET /tasks/name/{task_name}. Global lookup; with the
// per-user unique constraint the same name can exist for several users, the
// lowest ID wins.
func (h *TaskHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "task_name")
	if name == "" {
		HandleAPIError(w, r, domain.NewValidationError("task_name", "is required", domain.ErrValidation), "")
		return
	}

	t, err := h.taskService.GetByName(r.Context(), name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, t)
}

// GetOwn handles GET /tasks/users-tasks: the caller's tasks, read directly
// from the database. An empty result is reported as not found.
func (h *TaskHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.GetTasksForUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetForUser handles GET /tasks/users-tasks/{user_id}: any user's tasks,
// served through the per-user cache bucket.
func (h *TaskHandler) GetForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathID(r, "user_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.GetUserTasks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// UpdateName handles PATCH /tasks/{task_id}?new_name=. The update is scoped
// to the caller's own tasks; someone else's task reads as not found.
func (h *TaskHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	taskID, err := getPathID(r, "task_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	newName := r.URL.Query().Get("new_name")
	if newName == "" {
		HandleAPIError(w, r, domain.NewValidationError("new_name", "is required", domain.ErrValidation), "")
		return
	}

	updated, err := h.taskService.UpdateName(r.Context(), taskID, newName, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /tasks/{task_id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	taskID, err := getPathID(r, "task_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.Delete(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
