package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/form"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/region"
	"go.uber.org/zap"
)

const defaultResolveTimeout = 2 * time.Second

// TransportFeeField is the audit trail field of the transport fee entry.
const TransportFeeField = "transportFee"

// OrderIDGenerator produces the opaque identifier attached to each calculation.
type OrderIDGenerator interface {
	NewOrderID() string
}

// OrderIDFunc adapts a function to OrderIDGenerator.
type OrderIDFunc func() string

func (f OrderIDFunc) NewOrderID() string { return f() }

// UUIDOrderIDs yields identifiers like HH-20250305-1A2B3C4D.
type UUIDOrderIDs struct {
	Now func() time.Time
}

func (g UUIDOrderIDs) NewOrderID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("HH-%s-%s", now().Format("20060102"), strings.ToUpper(id[:8]))
}

// WinterFees are the fixed winter maintenance charges. They are never part
// of a price total.
type WinterFees struct {
	ServiceFee float64
	CalloutFee float64
}

// FeeTables maps a service type to flat transport fees keyed by region.
type FeeTables map[string]map[string]float64

// DefaultFeeTables returns the transport fees of the recurring services.
func DefaultFeeTables() FeeTables {
	return FeeTables{
		form.ServiceResidentialBuilding: {"stredocesky": 300, "ostatni": 600},
		form.ServiceCommercialSpaces:    {"stredocesky": 400, "ostatni": 800},
		form.ServiceOfficeCleaning:      {"stredocesky": 400, "ostatni": 800},
	}
}

// Fee returns the transport fee for a service in a region.
func (f FeeTables) Fee(serviceType, regionKey string) (float64, bool) {
	fee, ok := f[serviceType][regionKey]
	return fee, ok && fee != 0
}

// Engine prices submitted forms.
type Engine struct {
	resolver       region.Resolver
	regions        region.Table
	fees           FeeTables
	winter         WinterFees
	office         OfficeTables
	orderIDs       OrderIDGenerator
	resolveTimeout time.Duration
	logger         *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

func WithRegionTable(t region.Table) Option { return func(e *Engine) { e.regions = t } }

func WithFeeTables(f FeeTables) Option { return func(e *Engine) { e.fees = f } }

func WithWinterFees(w WinterFees) Option { return func(e *Engine) { e.winter = w } }

func WithOfficeTables(t OfficeTables) Option { return func(e *Engine) { e.office = t } }

func WithOrderIDs(g OrderIDGenerator) Option { return func(e *Engine) { e.orderIDs = g } }

func WithResolveTimeout(d time.Duration) Option { return func(e *Engine) { e.resolveTimeout = d } }

// NewEngine creates a pricing engine. A nil resolver never resolves.
func NewEngine(resolver region.Resolver, logger *zap.Logger, opts ...Option) *Engine {
	if resolver == nil {
		resolver = region.SkipResolver{}
	}
	e := &Engine{
		resolver:       resolver,
		regions:        region.DefaultTable(),
		fees:           DefaultFeeTables(),
		winter:         WinterFees{ServiceFee: 500, CalloutFee: 1500},
		office:         DefaultOfficeTables(),
		orderIDs:       UUIDOrderIDs{},
		resolveTimeout: defaultResolveTimeout,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Regions returns the region table the engine prices with.
func (e *Engine) Regions() region.Table { return e.regions }

// outcome is everything a calculation derives before presentation.
type outcome struct {
	details   CalculationDetails
	regular   float64
	regionKey string
	fee       float64
}

// Calculate prices the answers against the configuration. The only error is
// a *RequiredFieldError from the office cleaning path.
func (e *Engine) Calculate(ctx context.Context, data form.Data, cfg *form.Config) (*CalculationResult, error) {
	out, err := e.evaluate(ctx, data, cfg)
	if err != nil {
		return nil, err
	}

	result := &CalculationResult{
		RegularCleaningPrice: out.regular,
		TotalMonthlyPrice:    out.regular,
		Region:               out.regionKey,
		OrderID:              e.orderIDs.NewOrderID(),
		CalculationDetails:   out.details,
	}

	if out.fee != 0 {
		result.TransportFee = floatPtr(out.fee)
	}

	if cfg.IsHourly() {
		result.HourlyRate = floatPtr(out.regular)
		if hours, ok := minimumHours(cfg, data); ok {
			result.MinimumHours = floatPtr(hours)
		}
	} else {
		result.TotalMonthlyPrice = RoundToTenth(out.regular + out.fee)
	}

	if price, frequency, ok := generalCleaning(cfg, data); ok {
		result.GeneralCleaningPrice = floatPtr(price)
		result.GeneralCleaningFrequency = frequency
	}

	if winterOptedIn(cfg, data) {
		result.WinterServiceFee = floatPtr(e.winter.ServiceFee)
		result.WinterCalloutFee = floatPtr(e.winter.CalloutFee)
	}

	return result, nil
}

func (e *Engine) evaluate(ctx context.Context, data form.Data, cfg *form.Config) (outcome, error) {
	base := cfg.BasePriceFor(data)
	regionKey, start := e.localize(ctx, data, cfg)

	var (
		t   tally
		err error
	)
	switch cfg.Strategy {
	case form.StrategyOffice:
		t, err = e.officeWalk(cfg, data, start)
		if err != nil {
			return outcome{}, err
		}
	default:
		t = walk(cfg, data, start)
	}

	out := outcome{regionKey: regionKey}
	if fee, ok := e.fees.Fee(cfg.ID, regionKey); ok {
		out.fee = fee
		r, _ := e.regions.Lookup(regionKey)
		t = t.flat(TransportFeeField, "Doprava: "+r.Label, fee)
	}

	addons := t.addons
	if cfg.IsHourly() {
		out.regular = hourlyRate(base, t.coefficient)
	} else {
		out.regular = regularPrice(base, t.coefficient, addons)
	}

	out.details = CalculationDetails{
		BasePrice:           base,
		AppliedCoefficients: t.entries,
		FinalCoefficient:    t.coefficient,
		TotalFixedAddons:    addons,
	}
	return out, nil
}

// localize resolves the postal code and starts the tally with the region
// entry. Resolution failures fall back to the baseline region.
func (e *Engine) localize(ctx context.Context, data form.Data, cfg *form.Config) (string, tally) {
	field := cfg.PostalCodeField
	if field == "" {
		field = "zipCode"
	}

	r := e.regions.BaselineRegion()
	resolved := ""
	if zip := data.Get(field); zip != "" {
		key, err := e.resolve(ctx, zip)
		switch {
		case err != nil:
			e.logger.Warn("Region resolution failed, using baseline region",
				zap.String("zip", zip),
				zap.String("baseline", r.Value),
				zap.Error(err),
			)
		default:
			if found, ok := e.regions.Lookup(key); ok {
				r, resolved = found, key
			} else {
				e.logger.Warn("Resolved region is not priced, using baseline region",
					zap.String("zip", zip),
					zap.String("region", key),
				)
			}
		}
	}

	return resolved, newTally().locality(field, "Lokalita: "+r.Label, r.Coefficient)
}

func (e *Engine) resolve(ctx context.Context, zip string) (key string, err error) {
	ctx, cancel := context.WithTimeout(ctx, e.resolveTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			key, err = "", fmt.Errorf("region resolver panicked: %v", r)
		}
	}()

	key, err = e.resolver.Resolve(ctx, zip)
	if err == nil && key == "" {
		err = region.ErrRegionNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("region resolution timed out after %s: %w", e.resolveTimeout, err)
	}
	return key, err
}

func minimumHours(cfg *form.Config, data form.Data) (float64, bool) {
	if cfg.Hourly == nil {
		return 0, false
	}
	hours, ok := cfg.Hourly.MinimumHours[data.Get(cfg.Hourly.MinimumHoursField)]
	return hours, ok
}

// generalCleaning prices the separate general cleaning stream from its own
// base price and coefficient chain.
func generalCleaning(cfg *form.Config, data form.Data) (float64, string, bool) {
	gc := cfg.GeneralCleaning
	if gc == nil || data.Get(gc.OptInField) != gc.OptInValue {
		return 0, "", false
	}
	kind := data.Get(gc.TypeField)
	base, ok := gc.BasePrices[kind]
	if !ok {
		return 0, "", false
	}
	coefficient := chain(cfg, data, gc.CoefficientFields)
	return regularPrice(base, coefficient, 0), cfg.DisplayValue(gc.TypeField, data[gc.TypeField]), true
}

func winterOptedIn(cfg *form.Config, data form.Data) bool {
	return cfg.Winter != nil && data.Get(cfg.Winter.OptInField) == cfg.Winter.OptInValue
}
