package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindNull valueKind = iota
	kindString
	kindNumber
	kindList
	kindBool
)

// Value is a single submitted answer: a string, a number, a list of strings
// (checkbox selections), a boolean, or nothing.
type Value struct {
	kind valueKind
	str  string
	num  float64
	list []string
	flag bool
}

// Data maps field ids to submitted answers.
type Data map[string]Value

func String(s string) Value { return Value{kind: kindString, str: s} }

func Number(n float64) Value { return Value{kind: kindNumber, num: n} }

func Bool(b bool) Value { return Value{kind: kindBool, flag: b} }

func List(items ...string) Value {
	return Value{kind: kindList, list: append(make([]string, 0, len(items)), items...)}
}

// IsEmpty reports whether the answer carries nothing worth pricing.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case kindString:
		return strings.TrimSpace(v.str) == ""
	case kindList:
		return len(v.list) == 0
	case kindNumber, kindBool:
		return false
	default:
		return true
	}
}

// Bool returns the answer of a yes/no input. ok is false for other kinds.
func (v Value) Bool() (flag, ok bool) { return v.flag, v.kind == kindBool }

// IsList reports whether the answer came from a multi-select.
func (v Value) IsList() bool { return v.kind == kindList }

// String renders a scalar answer the way option values are spelled.
func (v Value) String() string {
	switch v.kind {
	case kindString:
		return v.str
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.flag)
	case kindList:
		return strings.Join(v.list, ", ")
	default:
		return ""
	}
}

// Values returns every selected value; scalars yield a single element.
func (v Value) Values() []string {
	switch v.kind {
	case kindList:
		return append([]string(nil), v.list...)
	case kindNull:
		return nil
	default:
		return []string{v.String()}
	}
}

// Float returns the numeric reading of the answer, if it has one.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case kindNumber:
		return v.num, true
	case kindString:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v.str), ",", "."), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindString:
		return json.Marshal(v.str)
	case kindNumber:
		return json.Marshal(v.num)
	case kindBool:
		return json.Marshal(v.flag)
	case kindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = String(s)
	case '[':
		var raw []any
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		items := make([]string, 0, len(raw))
		for _, item := range raw {
			if item == nil {
				continue
			}
			items = append(items, scalarString(item))
		}
		*v = Value{kind: kindList, list: items}
	case 't', 'f':
		var flag bool
		if err := json.Unmarshal(b, &flag); err != nil {
			return err
		}
		*v = Bool(flag)
	default:
		var n float64
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("unsupported form value %s: %w", string(b), err)
		}
		*v = Number(n)
	}
	return nil
}

func scalarString(item any) string {
	switch x := item.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// Get returns the answer for a field as a string, or "" if absent.
func (d Data) Get(fieldID string) string {
	return d[fieldID].String()
}

// Has reports whether the field was answered with a non-empty value.
func (d Data) Has(fieldID string) bool {
	v, ok := d[fieldID]
	return ok && !v.IsEmpty()
}

// Clone returns a shallow copy safe to mutate.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
