package handlers

import (
	"log"
	"net/http"

	"github.com/gfranca7/branchboard/internal/usecase"
)

type DashboardHandler struct {
	UseCase *usecase.DashboardUseCase
}

func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{UseCase: uc}
}

func (h *DashboardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ParseFilter(r.URL.Query())

	result, err := h.UseCase.Execute(r.Context(), filter)
	if err != nil {
		if usecase.IsDataAccessError(err) {
			log.Printf("ERROR dashboard: %v", err)
			writeErrorResponse(w, http.StatusBadGateway, "DATA_ACCESS_ERROR", "Failed to query lead data")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute dashboard")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *DashboardHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.UseCase.Options(r.Context())
	if err != nil {
		if usecase.IsDataAccessError(err) {
			log.Printf("ERROR filter options: %v", err)
			writeErrorResponse(w, http.StatusBadGateway, "DATA_ACCESS_ERROR", "Failed to query filter options")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load filter options")
		return
	}

	writeJSON(w, http.StatusOK, opts)
}
