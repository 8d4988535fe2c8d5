// Package hashcodec turns a quote into a compact URL-safe token and back.
//
// Tokens are "h1" followed by the unpadded base64url encoding of the
// deflated payload JSON with shortened keys. Older tokens, plain base64 of
// the long-key JSON, are still accepted by Decode.
package hashcodec

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/calendar"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
)

// ErrInvalidToken marks every token that cannot be decoded into a quote.
// Callers treat it as no prior state.
var ErrInvalidToken = errors.New("invalid quote token")

const (
	tokenPrefix     = "h1"
	maxTokenLength  = 64 << 10
	maxPayloadBytes = 1 << 20
)

var dateLocation = loadLocation("Europe/Prague")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Encode produces a token carrying the full payload.
func Encode(p *Payload) (string, error) {
	return encode(p)
}

// EncodeOptimized produces a token without the audit trail. The trail is
// rebuilt from the form answers when needed.
func EncodeOptimized(p *Payload) (string, error) {
	c := p.Clone()
	details := c.CalculationData.CalculationDetails
	c.CalculationData.CalculationDetails = pricing.Summarize(details).Details()
	return encode(c)
}

func encode(p *Payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	tree, err := parseJSON(raw)
	if err != nil {
		return "", err
	}
	compact, err := json.Marshal(shrink(tree, payloadSchema))
	if err != nil {
		return "", fmt.Errorf("failed to marshal compact payload: %w", err)
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := w.Write(compact); err != nil {
		return "", fmt.Errorf("failed to compress payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to compress payload: %w", err)
	}

	return tokenPrefix + base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reads a token produced by Encode, EncodeOptimized or the legacy
// encoder. Any failure, including a panic in the pipeline, is reported as
// ErrInvalidToken.
func Decode(token string) (p *Payload, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%w: %v", ErrInvalidToken, r)
		}
	}()

	token = normalizeToken(token)
	switch {
	case token == "":
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	case len(token) > maxTokenLength:
		return nil, fmt.Errorf("%w: token too long", ErrInvalidToken)
	}

	var tree map[string]any
	if strings.HasPrefix(token, tokenPrefix) {
		tree, err = decodeCompact(token[len(tokenPrefix):])
	} else {
		tree, err = decodeLegacy(token)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	normalizeStartDate(tree)

	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	var out Payload
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if out.ServiceType == "" {
		return nil, fmt.Errorf("%w: not a quote", ErrInvalidToken)
	}
	return &out, nil
}

// normalizeToken undoes the damage a token may take in transit: URL
// escaping and '+' turned into a space by form decoding.
func normalizeToken(token string) string {
	token = strings.TrimSpace(token)
	if strings.Contains(token, "%") {
		if unescaped, err := url.QueryUnescape(token); err == nil {
			token = unescaped
		}
	}
	return strings.ReplaceAll(token, " ", "+")
}

func decodeCompact(s string) (map[string]any, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("bad encoding: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	raw, err := io.ReadAll(io.LimitReader(r, maxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("bad compression: %w", err)
	}
	if len(raw) > maxPayloadBytes {
		return nil, errors.New("payload too large")
	}

	tree, err := parseJSON(raw)
	if err != nil {
		return nil, err
	}
	obj, ok := expand(tree, payloadSchema).(map[string]any)
	if !ok {
		return nil, errors.New("payload is not an object")
	}
	return obj, nil
}

var legacyEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

func decodeLegacy(s string) (map[string]any, error) {
	var raw []byte
	for _, enc := range legacyEncodings {
		if b, err := enc.DecodeString(s); err == nil {
			raw = b
			break
		}
	}
	if raw == nil {
		return nil, errors.New("bad encoding")
	}

	raw = bytes.TrimSpace(raw)
	if bytes.HasPrefix(raw, []byte("%7B")) {
		unescaped, err := url.QueryUnescape(string(raw))
		if err != nil {
			return nil, fmt.Errorf("bad escaping: %w", err)
		}
		raw = []byte(unescaped)
	}
	if len(raw) > maxPayloadBytes {
		return nil, errors.New("payload too large")
	}

	tree, err := parseJSON(raw)
	if err != nil {
		return nil, err
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, errors.New("payload is not an object")
	}
	migrateLegacyNotes(obj)
	return obj, nil
}

// migrateLegacyNotes fills the two note fields of payloads written before
// they existed. The form's "notes" answer is the origin form note; a
// calculation-level "notes" is the confirmation step note. A field that is
// already present is never overwritten.
func migrateLegacyNotes(payload map[string]any) {
	data, ok := payload["calculationData"].(map[string]any)
	if !ok {
		return
	}

	if legacy, ok := data["notes"].(string); ok {
		if _, present := data["confirmationStepNote"]; !present && legacy != "" {
			data["confirmationStepNote"] = legacy
		}
		delete(data, "notes")
	}

	if _, present := data["originFormNote"]; present {
		return
	}
	if answers, ok := data["formData"].(map[string]any); ok {
		if note, ok := answers["notes"].(string); ok && note != "" {
			data["originFormNote"] = note
		}
	}
}

// normalizeStartDate rewrites a start date in any accepted format to ISO and
// drops one that cannot be read. The date is re-derived by the start-date
// policy anyway.
func normalizeStartDate(payload map[string]any) {
	data, ok := payload["calculationData"].(map[string]any)
	if !ok {
		return
	}
	raw, ok := data["startDate"]
	if !ok || raw == nil {
		return
	}
	s, _ := raw.(string)
	d, err := calendar.ParseDate(s, dateLocation)
	if err != nil {
		delete(data, "startDate")
		return
	}
	data["startDate"] = calendar.FormatISO(d)
}

// parseJSON decodes a single JSON value keeping numbers as literals.
func parseJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("bad json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("bad json: trailing data")
	}
	return v, nil
}
