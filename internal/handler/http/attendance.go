package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tallyhr/attendance-backend-go/internal/domain/attendance"
	"github.com/tallyhr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/tallyhr/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	QuickToggle(w http.ResponseWriter, r *http.Request)
	RunBulkAction(w http.ResponseWriter, r *http.Request)
	ListDay(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.MarkedBy = middleware.ActorID(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.Mark(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked", attendance.NewRecordResponse(record))
}

// Edit implements AttendanceHandler.
func (h *attendanceHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	var req attendance.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.MarkedBy = middleware.ActorID(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.Edit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", attendance.NewRecordResponse(record))
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record id is required", nil)
		return
	}

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}

// QuickToggle implements AttendanceHandler.
func (h *attendanceHandlerImpl) QuickToggle(w http.ResponseWriter, r *http.Request) {
	var req attendance.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.MarkedBy = middleware.ActorID(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.QuickToggle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance toggled", attendance.NewRecordResponse(record))
}

// RunBulkAction implements AttendanceHandler.
func (h *attendanceHandlerImpl) RunBulkAction(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.MarkedBy = middleware.ActorID(r.Context())

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.RunBulkAction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("bulk attendance action finished",
		"date", req.Date,
		"action", req.Action,
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)

	response.Success(w, result)
}

// ListDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListDay(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		response.BadRequest(w, "Query parameter 'date' is required", nil)
		return
	}

	date, err := time.Parse(attendance.DateLayout, dateStr)
	if err != nil {
		response.BadRequest(w, "Query parameter 'date' must be in YYYY-MM-DD format", nil)
		return
	}

	entries, err := h.attendanceService.ListDay(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
