package form

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrUnknownService = errors.New("unknown service type")

// Service type identifiers of the built-in configurations.
const (
	ServiceResidentialBuilding = "residential-building"
	ServiceOfficeCleaning      = "office-cleaning"
	ServiceOneTimeCleaning     = "one-time-cleaning"
	ServiceHandyman            = "handyman-services"
	ServiceCommercialSpaces    = "commercial-spaces"
	ServiceHomeCleaning        = "home-cleaning"
)

// Registry holds the form configurations keyed by service type.
type Registry struct {
	configs map[string]*Config
	order   []string
}

// NewRegistry validates and indexes the given configurations.
func NewRegistry(configs ...*Config) (*Registry, error) {
	r := &Registry{configs: make(map[string]*Config, len(configs))}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.configs[cfg.ID]; dup {
			return nil, fmt.Errorf("service %s registered twice", cfg.ID)
		}
		r.configs[cfg.ID] = cfg
		r.order = append(r.order, cfg.ID)
	}
	return r, nil
}

// DefaultRegistry returns the built-in service configurations.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		ResidentialBuilding(),
		OfficeCleaning(),
		OneTimeCleaning(),
		HandymanServices(),
		CommercialSpaces(),
		HomeCleaning(),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the configuration of a service type.
func (r *Registry) Get(serviceType string) (*Config, error) {
	cfg, ok := r.configs[serviceType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, serviceType)
	}
	return cfg, nil
}

// List returns the configurations in registration order.
func (r *Registry) List() []*Config {
	out := make([]*Config, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.configs[id])
	}
	return out
}

// Builders shared by the built-in configurations.

func opt(value, label string, coefficient float64) Option {
	return Option{Value: value, Label: label, Coefficient: coefficient}
}

func addon(value, label string, amount float64) Option {
	return Option{Value: value, Label: label, FixedAddon: amount}
}

func radio(id, label string, required bool, options ...Option) *Choice {
	return &Choice{Type: KindRadio, ID: id, Label: label, Required: required, Options: options}
}

func selectField(id, label string, required bool, options ...Option) *Choice {
	return &Choice{Type: KindSelect, ID: id, Label: label, Required: required, Options: options}
}

func checkbox(id, label string, options ...Option) *Choice {
	return &Choice{Type: KindCheckbox, ID: id, Label: label, Options: options}
}

func yesNo(id, label string, yesCoefficient float64) *Choice {
	return radio(id, label, true,
		opt("yes", "Ano", yesCoefficient),
		opt("no", "Ne", 1),
	)
}

func postalCode(id string) *Input {
	return &Input{ID: id, Label: "PSČ místa úklidu", Required: true, InputType: "text", Placeholder: "110 00"}
}

func notes(id string) *Input {
	return &Input{ID: id, Label: "Poznámka", Multiline: true, Placeholder: "Cokoliv, co bychom měli vědět"}
}

// countOptions builds numeric options from..to where coefficient(n) prices each count.
func countOptions(from, to int, coefficient func(n int) float64) []Option {
	out := make([]Option, 0, to-from+1)
	for n := from; n <= to; n++ {
		v := strconv.Itoa(n)
		out = append(out, opt(v, v, coefficient(n)))
	}
	return out
}
