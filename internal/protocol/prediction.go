package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	ResultClassRain   = "rain-expected"
	ResultClassNoRain = "no-rain"
)

// ErrMalformedResult marks a 200 response that does not match the
// prediction result schema.
var ErrMalformedResult = errors.New("malformed prediction result")

// PredictionResult is the /predict success payload. Prediction, Confidence
// and Features are required; the rest is optional.
type PredictionResult struct {
	Prediction   string         `json:"prediction"`
	Confidence   float64        `json:"confidence"`
	ResultClass  string         `json:"result_class,omitempty"`
	Features     map[string]any `json:"features"`
	DemoMode     bool           `json:"demo_mode,omitempty"`
	FeatureCount int            `json:"feature_count,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ModelInfo struct {
	ModelLoaded      bool     `json:"model_loaded"`
	ModelReady       bool     `json:"model_ready"`
	ModelType        string   `json:"model_type"`
	ModelVersion     string   `json:"model_version"`
	ExpectedFeatures int      `json:"expected_features"`
	FeatureNames     []string `json:"feature_names"`
	FeatureCount     int      `json:"feature_count"`
}

type ServerInfo struct {
	Name       string `json:"name"`
	APIVersion int    `json:"api_version"`
	Version    string `json:"version"`
	Hostname   string `json:"hostname,omitempty"`
}

// SchemaError lists every way a payload deviates from the result schema.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedResult, strings.Join(e.Problems, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrMalformedResult
}

// DecodePredictionResult validates data against the result schema before
// decoding it. Feature values keep their JSON number text (json.Number) so
// they can be displayed exactly as sent.
func DecodePredictionResult(data []byte) (PredictionResult, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return PredictionResult{}, &SchemaError{Problems: []string{"body is not a JSON object"}}
	}

	var problems []string
	requireKind := func(key, kind string) {
		v, ok := raw[key]
		if !ok || isNull(v) {
			problems = append(problems, key+" is required")
			return
		}
		if got := jsonKind(v); got != kind {
			problems = append(problems, fmt.Sprintf("%s must be a %s, got %s", key, kind, got))
		}
	}
	optionalKind := func(key, kind string) {
		v, ok := raw[key]
		if !ok || isNull(v) {
			return
		}
		if got := jsonKind(v); got != kind {
			problems = append(problems, fmt.Sprintf("%s must be a %s, got %s", key, kind, got))
		}
	}
	requireKind("prediction", "string")
	requireKind("confidence", "number")
	requireKind("features", "object")
	optionalKind("result_class", "string")
	optionalKind("demo_mode", "boolean")
	optionalKind("feature_count", "number")
	if len(problems) > 0 {
		return PredictionResult{}, &SchemaError{Problems: problems}
	}

	var res PredictionResult
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return PredictionResult{}, &SchemaError{Problems: []string{err.Error()}}
	}
	if strings.TrimSpace(res.Prediction) == "" {
		return PredictionResult{}, &SchemaError{Problems: []string{"prediction must not be empty"}}
	}
	return res, nil
}

// DecodeErrorMessage extracts the "error" field from a failure body, or "".
func DecodeErrorMessage(data []byte) string {
	var e ErrorResponse
	if err := json.Unmarshal(data, &e); err != nil {
		return ""
	}
	return strings.TrimSpace(e.Error)
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}

func jsonKind(v json.RawMessage) string {
	t := bytes.TrimSpace(v)
	if len(t) == 0 {
		return "empty"
	}
	switch t[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// MDNSService is the DNS-SD service type the server advertises.
const MDNSService = "_raincast._tcp"
