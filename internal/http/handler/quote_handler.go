package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/mapper"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/service"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

func toQuoteDTO(q *service.Quote) domain.QuoteDTO {
	return mapper.ToQuoteDTO(q.Payload, q.Details, q.Hash)
}

// @Summary Calculate a quote
// @Description Prices the form answers and returns the quote with its shareable hash.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param serviceType path string true "Service type"
// @Param request body domain.CalculateQuoteRequest true "Form answers"
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Router /quotes/{serviceType} [post]
func (h *QuoteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req domain.CalculateQuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Neplatný požadavek")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	q, err := h.quoteService.Calculate(r.Context(), chi.URLParam(r, "serviceType"), req.FormData)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toQuoteDTO(q))
}

// @Summary Load a quote from its hash
// @Description Decodes the hash. A start date that is no longer allowed is moved to the earliest allowed day and the returned hash carries the correction.
// @Tags Quotes
// @Produce json
// @Param hash query string true "Quote hash"
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Router /quotes [get]
func (h *QuoteHandler) Hydrate(w http.ResponseWriter, r *http.Request) {
	hash := r.URL.Query().Get("hash")
	if hash == "" {
		respondWithError(w, http.StatusBadRequest, "Chybí parametr hash")
		return
	}

	q, err := h.quoteService.Hydrate(r.Context(), hash)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toQuoteDTO(q))
}

// @Summary Update a quote
// @Description Merges contact details, start date and the order note into the quote and returns a new hash.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body domain.UpdateQuoteRequest true "Details to merge"
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Router /quotes [put]
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateQuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Neplatný požadavek")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	q, err := h.quoteService.Update(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toQuoteDTO(q))
}
