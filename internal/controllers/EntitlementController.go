package controllers

import (
	"net/http"

	"fontpair/internal/services"
)

type EntitlementController struct {
	service services.EntitlementServiceInterface
}

func NewEntitlementController(service services.EntitlementServiceInterface) *EntitlementController {
	return &EntitlementController{service: service}
}

func (ec *EntitlementController) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ec.service.Summary())
}

func (ec *EntitlementController) ContinueFree(w http.ResponseWriter, r *http.Request) {
	if err := ec.service.ContinueFree(); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ec.service.Summary())
}
