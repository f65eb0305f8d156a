package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tallyhr/attendance-backend-go/internal/domain/payroll"
	"github.com/tallyhr/attendance-backend-go/internal/handler/http/response"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/validator"
	"github.com/tallyhr/attendance-backend-go/internal/service/sheet"
)

type SheetHandler interface {
	GetMonthlySheet(w http.ResponseWriter, r *http.Request)
	GetView(w http.ResponseWriter, r *http.Request)
	SetViewPeriod(w http.ResponseWriter, r *http.Request)
}

type sheetHandlerImpl struct {
	sheetService payroll.SheetService
	view         *sheet.View
}

func NewSheetHandler(sheetService payroll.SheetService, view *sheet.View) SheetHandler {
	return &sheetHandlerImpl{
		sheetService: sheetService,
		view:         view,
	}
}

// GetMonthlySheet implements SheetHandler. It builds the sheet on demand for
// any period, independent of the operator's active view.
func (h *sheetHandlerImpl) GetMonthlySheet(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriodParams(w, r)
	if !ok {
		return
	}

	employeeID := r.URL.Query().Get("employee_id")

	result, err := h.sheetService.BuildMonthlySheet(r.Context(), year, month, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewSheetResponse(result))
}

// GetView implements SheetHandler, returning the active view's sheet. Right
// after a period switch there may be no data yet; the client sees the period
// with loaded=false and empty rows.
func (h *sheetHandlerImpl) GetView(w http.ResponseWriter, r *http.Request) {
	year, month := h.view.Period()
	result, loaded := h.view.Snapshot()

	payload := struct {
		Year   int                   `json:"year"`
		Month  int                   `json:"month"`
		Loaded bool                  `json:"loaded"`
		Sheet  payroll.SheetResponse `json:"sheet"`
	}{
		Year:   year,
		Month:  month,
		Loaded: loaded,
		Sheet:  payroll.NewSheetResponse(result),
	}

	response.Success(w, payload)
}

// SetViewPeriod implements SheetHandler. Switching periods drops the old
// rows immediately and kicks off a refresh for the new period.
func (h *sheetHandlerImpl) SetViewPeriod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !validator.IsValidYear(req.Year) || !validator.IsValidMonth(req.Month) {
		response.ValidationError(w, map[string]string{
			"period": "year must be 2000-2100 and month 1-12",
		})
		return
	}

	h.view.SetPeriod(req.Year, req.Month)
	if err := h.view.Refresh(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	year, month := h.view.Period()
	response.SuccessWithMessage(w, "View period updated", map[string]int{
		"year":  year,
		"month": month,
	})
}

func parsePeriodParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || !validator.IsValidYear(year) {
		response.BadRequest(w, "Path parameter 'year' must be a year between 2000 and 2100", nil)
		return 0, 0, false
	}

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || !validator.IsValidMonth(month) {
		response.BadRequest(w, "Path parameter 'month' must be between 1 and 12", nil)
		return 0, 0, false
	}

	return year, month, true
}
