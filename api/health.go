package api

import "net/http"

type healthResponse struct {
	Status          string `json:"status"`
	RegisteredUsers int    `json:"registeredUsers"`
}

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	a.JSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		RegisteredUsers: a.registry.Len(),
	})
}
