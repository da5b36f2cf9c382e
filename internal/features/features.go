package features

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

const fallbackIcon = "chart-line"

type Feature struct {
	Name        string  `yaml:"name" json:"name"`
	Unit        string  `yaml:"unit" json:"unit"`
	Default     float64 `yaml:"default" json:"default"`
	Icon        string  `yaml:"icon" json:"icon"`
	Description string  `yaml:"description" json:"description"`
	Min         float64 `yaml:"min" json:"min"`
	Max         float64 `yaml:"max" json:"max"`
}

// Label is the human readable name shown next to inputs and result rows.
func (f Feature) Label() string {
	return FormatName(f.Name)
}

type Catalog struct {
	Features []Feature `yaml:"features"`
}

// Vector holds parsed feature values in catalog order.
type Vector struct {
	Names  []string
	Values []float64
}

// Get returns the value for name and whether it was present.
func (v Vector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Map returns name -> value, the shape the /predict response echoes back.
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(v.Names))
	for i, n := range v.Names {
		out[n] = v.Values[i]
	}
	return out
}

// ValueError reports a feature that is missing or cannot be used.
type ValueError struct {
	Feature string
	Value   string
	Reason  string
}

func (e *ValueError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("feature %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("feature %s=%q: %s", e.Feature, e.Value, e.Reason)
}

var defaultCatalog = mustParseCatalog(catalogYAML)

// Default returns the built-in twelve feature catalog.
func Default() Catalog {
	out := Catalog{Features: make([]Feature, len(defaultCatalog.Features))}
	copy(out.Features, defaultCatalog.Features)
	return out
}

func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("parse feature catalog: %w", err)
	}
	if len(c.Features) == 0 {
		return Catalog{}, fmt.Errorf("feature catalog is empty")
	}
	seen := map[string]struct{}{}
	for i, f := range c.Features {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return Catalog{}, fmt.Errorf("features[%d].name is required", i)
		}
		if _, dup := seen[name]; dup {
			return Catalog{}, fmt.Errorf("features[%d].name duplicate %q", i, name)
		}
		seen[name] = struct{}{}
		if f.Max < f.Min {
			return Catalog{}, fmt.Errorf("features[%d] max below min", i)
		}
	}
	return c, nil
}

func mustParseCatalog(data []byte) Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Catalog) Names() []string {
	out := make([]string, 0, len(c.Features))
	for _, f := range c.Features {
		out = append(out, f.Name)
	}
	return out
}

func (c Catalog) Lookup(name string) (Feature, bool) {
	for _, f := range c.Features {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// Icon matches an exact catalog name first, then the first catalog name
// contained in the lower-cased input.
func (c Catalog) Icon(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if f, ok := c.Lookup(lower); ok && f.Icon != "" {
		return f.Icon
	}
	for _, f := range c.Features {
		if f.Icon != "" && strings.Contains(lower, f.Name) {
			return f.Icon
		}
	}
	return fallbackIcon
}

// Defaults returns a snapshot holding every feature's default value.
func (c Catalog) Defaults() url.Values {
	out := url.Values{}
	for _, f := range c.Features {
		out.Set(f.Name, FormatValue(f.Default))
	}
	return out
}

// Parse reads every catalog feature from a form snapshot. Values must be
// present, numeric, finite and within the feature's range.
func (c Catalog) Parse(values url.Values) (Vector, error) {
	vec := Vector{
		Names:  make([]string, 0, len(c.Features)),
		Values: make([]float64, 0, len(c.Features)),
	}
	for _, f := range c.Features {
		raw := strings.TrimSpace(values.Get(f.Name))
		if raw == "" {
			return Vector{}, &ValueError{Feature: f.Name, Reason: "value is required"}
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Vector{}, &ValueError{Feature: f.Name, Value: raw, Reason: "not a number"}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Vector{}, &ValueError{Feature: f.Name, Value: raw, Reason: "not a finite number"}
		}
		if f.Min != f.Max && (v < f.Min || v > f.Max) {
			return Vector{}, &ValueError{
				Feature: f.Name,
				Value:   raw,
				Reason:  fmt.Sprintf("out of range [%s, %s]", FormatValue(f.Min), FormatValue(f.Max)),
			}
		}
		vec.Names = append(vec.Names, f.Name)
		vec.Values = append(vec.Values, v)
	}
	return vec, nil
}

// FormatName turns snake_case feature keys into title-cased words:
// "humidity_pct" becomes "Humidity Pct".
func FormatName(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		if size == 0 {
			continue
		}
		parts[i] = string(unicode.ToUpper(r)) + p[size:]
	}
	return strings.Join(parts, " ")
}

// FormatValue renders a number in its shortest decimal form (82, 82.5).
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
