package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/calendar"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/hashcodec"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/logger"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/region"
	"go.uber.org/zap"
)

// Quote is a decoded quote ready for display: its payload, the form it was
// calculated with, the full audit trail and the token carrying it.
type Quote struct {
	Payload *hashcodec.Payload
	Config  *form.Config
	Details pricing.CalculationDetails
	Hash    string
}

// QuoteOptions are the settings of the quote service.
type QuoteOptions struct {
	Currency string
	// Optimized leaves the audit trail out of issued tokens.
	Optimized bool
}

// QuoteService prices forms and keeps quote tokens consistent across edits.
type QuoteService struct {
	registry *form.Registry
	engine   *pricing.Engine
	policy   *calendar.Policy
	opts     QuoteOptions
	now      func() time.Time
	logger   *zap.Logger
}

// NewQuoteService creates a new QuoteService instance
func NewQuoteService(registry *form.Registry, engine *pricing.Engine, policy *calendar.Policy, opts QuoteOptions, logger *zap.Logger) *QuoteService {
	if opts.Currency == "" {
		opts.Currency = "CZK"
	}
	return &QuoteService{
		registry: registry,
		engine:   engine,
		policy:   policy,
		opts:     opts,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the time source used for payload timestamps.
func (s *QuoteService) WithClock(now func() time.Time) *QuoteService {
	s.now = now
	return s
}

// ============================================================================
// Catalogue
// ============================================================================

// Services lists the available services in registry order.
func (s *QuoteService) Services() []domain.ServiceSummaryDTO {
	configs := s.registry.List()
	out := make([]domain.ServiceSummaryDTO, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, domain.ServiceSummaryDTO{
			ID:          cfg.ID,
			Title:       cfg.Title,
			Description: cfg.Description,
			Billing:     cfg.Billing,
			BasePrice:   cfg.BasePrice,
		})
	}
	return out
}

// Form returns the form configuration of a service.
func (s *QuoteService) Form(serviceType string) (*form.Config, error) {
	cfg, err := s.registry.Get(serviceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return cfg, nil
}

// Regions lists the regions a postal code can resolve to.
func (s *QuoteService) Regions() []region.Option {
	return s.engine.Regions().Available()
}

// MinimumStartDate returns the earliest start day of a service.
func (s *QuoteService) MinimumStartDate(serviceType string) (*domain.StartDateDTO, error) {
	cfg, err := s.Form(serviceType)
	if err != nil {
		return nil, err
	}
	category := calendar.CategoryOf(cfg.IsHourly())
	return &domain.StartDateDTO{
		ServiceType:      cfg.ID,
		Category:         string(category),
		LeadDays:         category.LeadDays(),
		MinimumStartDate: calendar.FormatISO(s.policy.MinimumStartDate(category)),
	}, nil
}

// ============================================================================
// Quote lifecycle
// ============================================================================

// Calculate prices the answers and issues the first token of the quote.
// The start date defaults to the earliest allowed day.
func (s *QuoteService) Calculate(ctx context.Context, serviceType string, data form.Data) (*Quote, error) {
	cfg, err := s.Form(serviceType)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Calculate(ctx, data, cfg)
	if err != nil {
		return nil, err
	}

	payload := hashcodec.NewPayload(cfg, data, result, s.opts.Currency, s.now())
	start := s.policy.MinimumStartDate(calendar.CategoryOf(cfg.IsHourly()))
	payload.CalculationData.StartDate = &start

	hash, err := s.encode(payload)
	if err != nil {
		return nil, err
	}

	logger.WithQuote(s.logger, cfg.ID, result.OrderID).Info("Quote calculated",
		zap.Float64("totalMonthlyPrice", result.TotalMonthlyPrice),
		zap.String("region", result.Region),
	)

	return &Quote{Payload: payload, Config: cfg, Details: result.CalculationDetails, Hash: hash}, nil
}

// Hydrate decodes a token. A start date before the minimum is raised to it,
// and the returned Hash then carries the corrected date.
func (s *QuoteService) Hydrate(ctx context.Context, hash string) (*Quote, error) {
	payload, err := hashcodec.Decode(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuote, err)
	}

	cfg, err := s.registry.Get(payload.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuote, err)
	}

	q := &Quote{
		Payload: payload,
		Config:  cfg,
		Details: s.engine.Expand(ctx, payload.Breakdown(), payload.CalculationData.FormData, cfg),
		Hash:    hash,
	}

	if s.correctStartDate(q) {
		if q.Hash, err = s.encode(payload); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// Update merges details collected after the quote and issues a new token.
// Nil request fields leave the stored value alone; the origin form note is
// never touched.
func (s *QuoteService) Update(ctx context.Context, req domain.UpdateQuoteRequest) (*Quote, error) {
	q, err := s.Hydrate(ctx, req.Hash)
	if err != nil {
		return nil, err
	}
	calc := &q.Payload.CalculationData

	if req.Contact != nil {
		calc.Contact = req.Contact.ToContact()
	}
	if req.StartDate != "" {
		d, err := calendar.ParseDate(req.StartDate, s.policy.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		calc.StartDate = &d
		s.correctStartDate(q)
	}
	if req.ConfirmationStepNote != nil {
		calc.ConfirmationStepNote = strings.TrimSpace(*req.ConfirmationStepNote)
	}

	if q.Hash, err = s.encode(q.Payload); err != nil {
		return nil, err
	}
	return q, nil
}

// correctStartDate applies the minimum delay and reports whether the stored
// date changed.
func (s *QuoteService) correctStartDate(q *Quote) bool {
	calc := &q.Payload.CalculationData
	category := calendar.CategoryOf(q.Config.IsHourly())

	var candidate civil.Date
	if calc.StartDate != nil {
		candidate = *calc.StartDate
	}
	corrected := s.policy.EnforceMinimumDelay(candidate, category)
	if calc.StartDate != nil && *calc.StartDate == corrected {
		return false
	}
	calc.StartDate = &corrected
	return true
}

func (s *QuoteService) encode(p *hashcodec.Payload) (string, error) {
	encode := hashcodec.Encode
	if s.opts.Optimized {
		encode = hashcodec.EncodeOptimized
	}
	token, err := encode(p)
	if err != nil {
		return "", fmt.Errorf("failed to encode quote: %w", err)
	}
	return token, nil
}

// IsMissingAnswer reports whether err is a required-answer failure of the
// pricing engine.
func IsMissingAnswer(err error) bool {
	var missing *pricing.RequiredFieldError
	return errors.As(err, &missing)
}
