package page

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/izzyreal/raincast/internal/features"
	"github.com/izzyreal/raincast/internal/protocol"
)

type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

const (
	ColorHigh   = "#10b981"
	ColorMedium = "#f59e0b"
	ColorLow    = "#ef4444"
)

type FeatureRow struct {
	Key   string
	Name  string
	Value string
	Icon  string
}

// Rendered is everything the result region displays.
type Rendered struct {
	Text           string
	Class          string
	Confidence     float64
	ConfidenceText string
	Band           Band
	Color          string
	Features       []FeatureRow
	DemoMode       bool
}

type Renderer struct {
	Catalog features.Catalog
}

func NewRenderer() Renderer {
	return Renderer{Catalog: features.Default()}
}

func (r Renderer) Render(res protocol.PredictionResult) Rendered {
	band, color := ConfidenceBand(res.Confidence)
	out := Rendered{
		Text:           res.Prediction,
		Class:          ResultClass(res),
		Confidence:     res.Confidence,
		ConfidenceText: "Confidence: " + features.FormatValue(res.Confidence) + "%",
		Band:           band,
		Color:          color,
		DemoMode:       res.DemoMode,
	}
	keys := make([]string, 0, len(res.Features))
	for k := range res.Features {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Features = append(out.Features, FeatureRow{
			Key:   k,
			Name:  features.FormatName(k),
			Value: DisplayValue(res.Features[k]),
			Icon:  r.Catalog.Icon(k),
		})
	}
	return out
}

// ResultClass prefers the explicit result_class. Otherwise text that says
// rain is "Expected", and is not a "No ..." message, is classed as rain.
func ResultClass(res protocol.PredictionResult) string {
	if c := strings.TrimSpace(res.ResultClass); c != "" {
		return c
	}
	if strings.Contains(res.Prediction, "Expected") && !strings.Contains(res.Prediction, "No ") {
		return protocol.ResultClassRain
	}
	return protocol.ResultClassNoRain
}

func ConfidenceBand(confidence float64) (Band, string) {
	switch {
	case confidence > 70:
		return BandHigh, ColorHigh
	case confidence > 50:
		return BandMedium, ColorMedium
	default:
		return BandLow, ColorLow
	}
}

// DisplayValue renders a feature value the way it arrived on the wire.
func DisplayValue(v any) string {
	switch x := v.(type) {
	case json.Number:
		return x.String()
	case float64:
		return features.FormatValue(x)
	case string:
		return x
	case nil:
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
