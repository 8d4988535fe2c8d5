package pricing

import (
	"context"
	"errors"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"go.uber.org/zap"
)

// Reconstruct recomputes the audit trail of a stored calculation from its
// form answers. The stored base price and final coefficient are kept when
// present. If the answers no longer price, the details come back without a
// trail.
func (e *Engine) Reconstruct(ctx context.Context, data form.Data, cfg *form.Config, partial *CalculationResult) CalculationDetails {
	var stored CalculationDetails
	if partial != nil {
		stored = partial.CalculationDetails
	}

	out, err := e.evaluate(ctx, data, cfg)
	if err != nil {
		var required *RequiredFieldError
		if !errors.As(err, &required) {
			e.logger.Warn("Failed to reconstruct calculation details", zap.Error(err))
		}
		return Summarize(stored).Details()
	}

	details := out.details
	if stored.BasePrice != 0 {
		details.BasePrice = stored.BasePrice
	}
	if stored.FinalCoefficient != 0 {
		details.FinalCoefficient = stored.FinalCoefficient
	}
	if stored.TotalFixedAddons != 0 {
		details.TotalFixedAddons = stored.TotalFixedAddons
	}
	return details
}

// Expand turns a breakdown into full details, reconstructing the trail of a
// summary-only breakdown.
func (e *Engine) Expand(ctx context.Context, b Breakdown, data form.Data, cfg *form.Config) CalculationDetails {
	switch b := b.(type) {
	case FullBreakdown:
		return b.Details
	case SummaryBreakdown:
		return e.Reconstruct(ctx, data, cfg, &CalculationResult{CalculationDetails: b.Details()})
	default:
		return CalculationDetails{}
	}
}
