package form

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator compares a submitted answer with an expected value.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "notEquals"
	OpIn          Operator = "in"
	OpNotIn       Operator = "notIn"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greaterThan"
	OpLessThan    Operator = "lessThan"
	OpIsEmpty     Operator = "isEmpty"
	OpIsNotEmpty  Operator = "isNotEmpty"
)

// Condition is either a leaf comparison (Field, Operator, Value) or a
// boolean tree (And / Or). A tree takes precedence over the leaf.
type Condition struct {
	Field    string      `json:"field,omitempty"`
	Operator Operator    `json:"operator,omitempty"`
	Value    any         `json:"value,omitempty"`
	And      []Condition `json:"and,omitempty"`
	Or       []Condition `json:"or,omitempty"`
}

func When(field string, op Operator, value any) Condition {
	return Condition{Field: field, Operator: op, Value: value}
}

func AllOf(conds ...Condition) Condition { return Condition{And: conds} }

func AnyOf(conds ...Condition) Condition { return Condition{Or: conds} }

// Evaluate checks the condition against the current answers.
func (c Condition) Evaluate(data Data) bool {
	switch {
	case len(c.And) > 0:
		for _, sub := range c.And {
			if !sub.Evaluate(data) {
				return false
			}
		}
		return true
	case len(c.Or) > 0:
		for _, sub := range c.Or {
			if sub.Evaluate(data) {
				return true
			}
		}
		return false
	}

	answer, answered := data[c.Field]
	empty := !answered || answer.IsEmpty()

	switch c.Operator {
	case OpIsEmpty:
		return empty
	case OpIsNotEmpty:
		return !empty
	case OpEquals:
		return !empty && answer.String() == expectedString(c.Value)
	case OpNotEquals:
		return empty || answer.String() != expectedString(c.Value)
	case OpIn:
		return !empty && containsString(expectedList(c.Value), answer.String())
	case OpNotIn:
		return empty || !containsString(expectedList(c.Value), answer.String())
	case OpContains:
		return !empty && containsString(answer.Values(), expectedString(c.Value))
	case OpGreaterThan, OpLessThan:
		got, ok := answer.Float()
		if !ok {
			return false
		}
		want, err := strconv.ParseFloat(expectedString(c.Value), 64)
		if err != nil {
			return false
		}
		if c.Operator == OpGreaterThan {
			return got > want
		}
		return got < want
	default:
		return false
	}
}

func expectedString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}

func expectedList(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, expectedString(item))
		}
		return out
	case string:
		return strings.Split(x, ",")
	default:
		return []string{expectedString(v)}
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
