package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/scheduler"
	"github.com/katalis-hr/attendance-backend-go/internal/handler/http/response"
)

type SchedulerHandler interface {
	RunJob(w http.ResponseWriter, r *http.Request)
	ListLogs(w http.ResponseWriter, r *http.Request)
	GetLog(w http.ResponseWriter, r *http.Request)
}

type schedulerHandlerImpl struct {
	schedulerService scheduler.Service
}

func NewSchedulerHandler(schedulerService scheduler.Service) SchedulerHandler {
	return &schedulerHandlerImpl{
		schedulerService: schedulerService,
	}
}

// RunJob implements SchedulerHandler.
func (h *schedulerHandlerImpl) RunJob(w http.ResponseWriter, r *http.Request) {
	var req scheduler.RunJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.schedulerService.RunJob(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job executed", result)
}

// ListLogs implements SchedulerHandler.
func (h *schedulerHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := scheduler.LogFilter{
		JobName: query.Get("job_name"),
		Status:  query.Get("status"),
		Page:    page,
		Limit:   limit,
	}

	result, err := h.schedulerService.ListLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if result.Limit > 0 {
		totalPages = int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	}
	response.SuccessWithMeta(w, result.Logs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

// GetLog implements SchedulerHandler.
func (h *schedulerHandlerImpl) GetLog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Log id must be a number", nil)
		return
	}

	result, err := h.schedulerService.GetLog(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
