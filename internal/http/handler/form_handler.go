package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/service"
	"go.uber.org/zap"
)

// FormHandler serves the read-only catalogue: services, their forms,
// regions and start dates.
type FormHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewFormHandler(quoteService *service.QuoteService, logger *zap.Logger) *FormHandler {
	return &FormHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// @Summary List services
// @Tags Forms
// @Produce json
// @Success 200 {array} domain.ServiceSummaryDTO
// @Router /forms [get]
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.quoteService.Services())
}

// @Summary Get service form configuration
// @Tags Forms
// @Produce json
// @Param serviceType path string true "Service type"
// @Success 200 {object} form.Config
// @Failure 404 {object} domain.APIError
// @Router /forms/{serviceType} [get]
func (h *FormHandler) GetByServiceType(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.quoteService.Form(chi.URLParam(r, "serviceType"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

// @Summary List regions
// @Tags Forms
// @Produce json
// @Success 200 {array} region.Option
// @Router /regions [get]
func (h *FormHandler) Regions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.quoteService.Regions())
}

// @Summary Get minimum start date
// @Description Earliest day the service can start. Hourly services need one day of notice, recurring ones ten.
// @Tags Forms
// @Produce json
// @Param serviceType path string true "Service type"
// @Success 200 {object} domain.StartDateDTO
// @Failure 404 {object} domain.APIError
// @Router /start-date/{serviceType} [get]
func (h *FormHandler) MinimumStartDate(w http.ResponseWriter, r *http.Request) {
	dto, err := h.quoteService.MinimumStartDate(chi.URLParam(r, "serviceType"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, dto)
}
