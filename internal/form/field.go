package form

import "encoding/json"

// FieldKind is the UI variant of a field.
type FieldKind string

const (
	KindRadio       FieldKind = "radio"
	KindSelect      FieldKind = "select"
	KindCheckbox    FieldKind = "checkbox"
	KindInput       FieldKind = "input"
	KindTextarea    FieldKind = "textarea"
	KindConditional FieldKind = "conditional"
	KindAlert       FieldKind = "alert"
)

// Field is one of *Choice, *Input, *Conditional or *Alert.
type Field interface {
	FieldID() string
	Kind() FieldKind
	sealed()
}

// Option is a selectable value of a choice field. A zero Coefficient is
// treated as the neutral 1.0.
type Option struct {
	Value       string  `json:"value"`
	Label       string  `json:"label"`
	Coefficient float64 `json:"coefficient,omitempty"`
	FixedAddon  float64 `json:"fixedAddon,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// EffectiveCoefficient returns the option coefficient with the neutral default applied.
func (o Option) EffectiveCoefficient() float64 {
	if o.Coefficient == 0 {
		return 1
	}
	return o.Coefficient
}

// Choice is a radio, select or checkbox field.
type Choice struct {
	Type        FieldKind `json:"-"`
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required"`
	Options     []Option  `json:"options"`
}

func (c *Choice) FieldID() string { return c.ID }
func (c *Choice) Kind() FieldKind { return c.Type }
func (*Choice) sealed()           {}

// Multiple reports whether several options may be selected at once.
func (c *Choice) Multiple() bool { return c.Type == KindCheckbox }

// Option finds an option by value.
func (c *Choice) Option(value string) (Option, bool) {
	for _, o := range c.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

func (c *Choice) MarshalJSON() ([]byte, error) {
	type plain Choice
	return json.Marshal(struct {
		Type FieldKind `json:"type"`
		*plain
	}{c.Type, (*plain)(c)})
}

// Input is a free text or numeric field. Inputs never affect the price.
type Input struct {
	Multiline   bool     `json:"-"`
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Required    bool     `json:"required"`
	InputType   string   `json:"inputType,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
}

func (i *Input) FieldID() string { return i.ID }

func (i *Input) Kind() FieldKind {
	if i.Multiline {
		return KindTextarea
	}
	return KindInput
}

func (*Input) sealed() {}

func (i *Input) MarshalJSON() ([]byte, error) {
	type plain Input
	return json.Marshal(struct {
		Type FieldKind `json:"type"`
		*plain
	}{i.Kind(), (*plain)(i)})
}

// Conditional groups fields that are shown and required only while its
// condition holds.
type Conditional struct {
	ID        string    `json:"id"`
	Condition Condition `json:"condition"`
	Fields    []Field   `json:"fields"`
}

func (c *Conditional) FieldID() string { return c.ID }
func (*Conditional) Kind() FieldKind   { return KindConditional }
func (*Conditional) sealed()           {}

func (c *Conditional) MarshalJSON() ([]byte, error) {
	type plain Conditional
	return json.Marshal(struct {
		Type FieldKind `json:"type"`
		*plain
	}{KindConditional, (*plain)(c)})
}

// Alert is a display-only message.
type Alert struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
	Variant string `json:"variant,omitempty"`
}

func (a *Alert) FieldID() string { return a.ID }
func (*Alert) Kind() FieldKind   { return KindAlert }
func (*Alert) sealed()           {}

func (a *Alert) MarshalJSON() ([]byte, error) {
	type plain Alert
	return json.Marshal(struct {
		Type FieldKind `json:"type"`
		*plain
	}{KindAlert, (*plain)(a)})
}

// Effect is the pricing contribution of one answered field.
type Effect struct {
	Coefficient float64
	Addon       float64
	// Labels are the labels of every matched option; AddonLabels only those
	// carrying a fixed addon.
	Labels      []string
	AddonLabels []string
}

// Neutral is the effect of anything the configuration does not price.
var Neutral = Effect{Coefficient: 1}

// IsNeutral reports whether the effect changes nothing.
func (e Effect) IsNeutral() bool {
	return e.Coefficient == 1 && e.Addon == 0
}

// effectOf matches the submitted values against the field's own options.
// Checkbox coefficients multiply and addons sum.
func effectOf(f Field, v Value) Effect {
	switch f := f.(type) {
	case *Choice:
		eff := Effect{Coefficient: 1}
		values := v.Values()
		if !f.Multiple() && len(values) > 1 {
			values = values[:1]
		}
		for _, val := range values {
			opt, ok := f.Option(val)
			if !ok {
				continue
			}
			eff.Coefficient *= opt.EffectiveCoefficient()
			eff.Addon += opt.FixedAddon
			eff.Labels = append(eff.Labels, opt.Label)
			if opt.FixedAddon != 0 {
				eff.AddonLabels = append(eff.AddonLabels, opt.Label)
			}
		}
		return eff
	case *Input, *Conditional, *Alert:
		return Neutral
	default:
		return Neutral
	}
}
