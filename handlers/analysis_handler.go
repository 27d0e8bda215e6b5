package handlers

import (
	"net/http"

	"github.com/Dosada05/chess-federation/services"
)

type AnalysisHandler struct {
	analysisService services.AnalysisService
}

func NewAnalysisHandler(as services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: as}
}

// Analyze проксирует позицию во внешний движок и возвращает его ответ без изменений.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var input services.AnalyzeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.analysisService.Analyze(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
