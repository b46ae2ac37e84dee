package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"scheduling-service/audit"
)

func userID(r *http.Request) string {
	return mux.Vars(r)["userId"]
}

func (a *API) getUserAppointments(w http.ResponseWriter, r *http.Request) {
	id := userID(r)
	if id == "" {
		a.Response(w, http.StatusBadRequest, "user ID is required")
		return
	}

	scheduler, ok := a.registry.Lookup(id)
	if !ok {
		a.NoContent(w)
		return
	}

	listing := scheduler.AllAppointments()
	if listing.IsEmpty() {
		a.NoContent(w)
		return
	}
	a.JSON(w, http.StatusOK, listing.Appointments)
}

func (a *API) getUserDecisions(w http.ResponseWriter, r *http.Request) {
	id := userID(r)
	if id == "" {
		a.Response(w, http.StatusBadRequest, "user ID is required")
		return
	}

	decisions, err := a.recorder.GetDecisions(r.Context(), id)
	if errors.Is(err, audit.ErrDisabled) {
		a.Response(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		a.log.Error("get decisions", zap.String("user_id", id), zap.Error(err))
		a.Response(w, http.StatusInternalServerError, "failed to load decisions")
		return
	}
	if len(decisions) == 0 {
		a.NoContent(w)
		return
	}
	a.JSON(w, http.StatusOK, decisions)
}
