package handler

import (
	"fmt"
	"net/http"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/service"
	"go.uber.org/zap"
)

type OfferHandler struct {
	offerService *service.OfferService
	logger       *zap.Logger
}

func NewOfferHandler(offerService *service.OfferService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
		logger:       logger,
	}
}

// @Summary Preview the offer document
// @Tags Offers
// @Produce html
// @Param hash query string true "Quote hash"
// @Success 200 {string} string "Offer document"
// @Failure 400 {object} domain.APIError
// @Router /offers/preview [get]
func (h *OfferHandler) Preview(w http.ResponseWriter, r *http.Request) {
	hash := r.URL.Query().Get("hash")
	if hash == "" {
		respondWithError(w, http.StatusBadRequest, "Chybí parametr hash")
		return
	}

	offer, err := h.offerService.Preview(r.Context(), hash)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", offer.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", offer.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(offer.Body)
}

// @Summary Submit an offer
// @Description Confirms the quote, archives the offer document and notifies the office. The customer gets a copy on request.
// @Tags Offers
// @Accept json
// @Produce json
// @Param request body domain.SubmitOfferRequest true "Final quote details"
// @Success 201 {object} domain.SubmissionDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 429 {object} domain.APIError
// @Router /offers [post]
func (h *OfferHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitOfferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Neplatný požadavek")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	submission, err := h.offerService.Submit(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, submission)
}
