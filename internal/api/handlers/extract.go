package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/Graceus777/Route-Optimizer/internal/api/dto"
	"github.com/Graceus777/Route-Optimizer/internal/extract"
)

// ExtractHandler exposes address extraction on its own so presentation
// layers can show the candidates found in OCR output before committing
// to a delivery run.
type ExtractHandler struct {
	Extractor *extract.Extractor
}

func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var req dto.ExtractRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_input", "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid_input", "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_input", "text is required")
		return
	}

	addresses := h.Extractor.Extract(req.Text)
	if addresses == nil {
		addresses = []string{}
	}

	writeJSON(w, r, http.StatusOK, dto.ExtractResponse{Addresses: addresses})
}
