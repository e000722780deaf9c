package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http/dto"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/infrastructure/metrics"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/usecase"
)

// IngestService defines the behavior needed by IngestHandler.
type IngestService interface {
	IngestReceipt(ctx context.Context, sub domain.ReceiptSubmission) (*usecase.IngestResult, error)
}

// IngestHandler handles receipt submission requests.
type IngestHandler struct {
	ingestUC IngestService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestUC IngestService) *IngestHandler {
	return &IngestHandler{ingestUC: ingestUC}
}

// Ingest accepts a receipt submission. The response acknowledges acceptance
// only; processing happens after the response is sent. Duplicates get the
// same 202 with an "already processed" message.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sub := req.ToDomain()
	if err := domain.ValidateSubmission(sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid submission", err.Error())
		return
	}

	result, err := h.ingestUC.IngestReceipt(r.Context(), sub)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to accept submission", err.Error())

		return
	}

	if result.Duplicate {
		metrics.ReceiptsDuplicate.Inc()
		writeJSON(w, http.StatusAccepted, dto.IngestReceiptResponse{
			Status:  dto.StatusAccepted,
			Message: dto.MessageAlreadyHandled,
		})

		return
	}

	metrics.ReceiptsAccepted.Inc()
	writeJSON(w, http.StatusAccepted, dto.IngestReceiptResponse{
		Status:         dto.StatusAccepted,
		IdempotencyKey: result.IdempotencyKey,
	})
}
