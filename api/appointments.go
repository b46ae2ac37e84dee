package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"scheduling-service/appointment"
	"scheduling-service/audit"
)

type scheduleAppointmentRequest struct {
	AppointmentTime *appointment.LocalTime `json:"appointmentTime" validate:"required"`
	UserID          string                 `json:"userId" validate:"required,notblank"`
}

func (a *API) scheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req scheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, appointment.ErrInvalidAppointmentTime) {
			a.Response(w, http.StatusBadRequest, err.Error())
			return
		}
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		a.Response(w, http.StatusBadRequest, fmt.Sprintf("validate: %v", err))
		return
	}

	scheduleReq := appointment.ScheduleRequest{
		AppointmentTime: req.AppointmentTime.Time,
		UserID:          req.UserID,
	}
	resp, outcome := a.registry.GetOrCreate(req.UserID).Schedule(scheduleReq)
	a.metrics.RecordDecision(string(outcome))
	a.recordDecision(r.Context(), scheduleReq, resp)

	if resp.AppointmentAccepted {
		a.log.Debug("appointment accepted",
			zap.String("user_id", req.UserID),
			zap.Time("start", scheduleReq.AppointmentTime),
		)
		a.JSON(w, http.StatusCreated, resp)
		return
	}

	a.log.Info("appointment rejected",
		zap.String("user_id", req.UserID),
		zap.String("outcome", string(outcome)),
	)
	a.JSON(w, http.StatusOK, resp)
}

// recordDecision appends the outcome to the audit log. Failures are logged and
// never change the response.
func (a *API) recordDecision(ctx context.Context, req appointment.ScheduleRequest, resp appointment.ScheduleResponse) {
	_, err := a.recorder.InsertDecision(ctx, audit.Decision{
		UserID:        req.UserID,
		RequestedAt:   req.AppointmentTime,
		Accepted:      resp.AppointmentAccepted,
		StatusMessage: resp.StatusMessage,
		DecidedAt:     a.now().UTC(),
	})
	if err != nil {
		a.log.Error("record decision", zap.String("user_id", req.UserID), zap.Error(err))
	}
}
