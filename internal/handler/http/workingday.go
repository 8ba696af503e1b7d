package http

import (
	"net/http"

	"github.com/katalis-hr/attendance-backend-go/internal/domain/workday"
	"github.com/katalis-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/katalis-hr/attendance-backend-go/internal/pkg/validator"
)

type WorkingDayHandler interface {
	GetToday(w http.ResponseWriter, r *http.Request)
	GetByDate(w http.ResponseWriter, r *http.Request)
}

type workingDayHandlerImpl struct {
	calendar workday.Calendar
}

func NewWorkingDayHandler(calendar workday.Calendar) WorkingDayHandler {
	return &workingDayHandlerImpl{calendar: calendar}
}

// GetToday implements WorkingDayHandler.
func (h *workingDayHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	info, err := h.calendar.ResolveToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, info)
}

// GetByDate implements WorkingDayHandler.
func (h *workingDayHandlerImpl) GetByDate(w http.ResponseWriter, r *http.Request) {
	date, ok := validator.IsValidDate(r.URL.Query().Get("date"))
	if !ok {
		response.BadRequest(w, "Query param 'date' must be formatted as YYYY-MM-DD", nil)
		return
	}

	info, err := h.calendar.Resolve(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, info)
}
