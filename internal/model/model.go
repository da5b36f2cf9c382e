package model

import (
	"fmt"
	"math"

	"github.com/izzyreal/raincast/internal/features"
	"github.com/izzyreal/raincast/internal/protocol"
)

const (
	RainText   = "Rainfall Expected 🌧️"
	NoRainText = "No Rainfall Expected ☀️"

	// TypeRule is reported by /model_info for the built-in rule model.
	TypeRule = "rule:humidity+cloud_cover+precipitation_3hr"
)

// Predictor turns a parsed feature vector into a prediction result.
type Predictor interface {
	Predict(vec features.Vector) (protocol.PredictionResult, error)
	Info() protocol.ModelInfo
}

// RuleModel scores humidity, cloud cover and recent precipitation. It stands
// in for a trained classifier and always reports demo_mode.
type RuleModel struct {
	Catalog       features.Catalog
	Version       string
	RainThreshold float64
	MaxConfidence float64
}

func NewRuleModel(catalog features.Catalog, version string, threshold, maxConfidence float64) *RuleModel {
	return &RuleModel{
		Catalog:       catalog,
		Version:       version,
		RainThreshold: threshold,
		MaxConfidence: maxConfidence,
	}
}

// Score is humidity*0.3 + cloud_cover*0.3 + precipitation_3hr*2.
func Score(vec features.Vector) (float64, error) {
	humidity, ok := vec.Get("humidity")
	if !ok {
		return 0, fmt.Errorf("missing feature: humidity")
	}
	cloud, ok := vec.Get("cloud_cover")
	if !ok {
		return 0, fmt.Errorf("missing feature: cloud_cover")
	}
	recent, ok := vec.Get("precipitation_3hr")
	if !ok {
		return 0, fmt.Errorf("missing feature: precipitation_3hr")
	}
	return humidity*0.3 + cloud*0.3 + recent*2.0, nil
}

func (m *RuleModel) Predict(vec features.Vector) (protocol.PredictionResult, error) {
	score, err := Score(vec)
	if err != nil {
		return protocol.PredictionResult{}, err
	}
	confidence := math.Max(0, math.Min(score, m.MaxConfidence))

	res := protocol.PredictionResult{
		Confidence:   Round2(confidence),
		Features:     make(map[string]any, len(vec.Names)),
		DemoMode:     true,
		FeatureCount: len(vec.Values),
	}
	for name, v := range vec.Map() {
		res.Features[name] = v
	}
	if score > m.RainThreshold {
		res.Prediction = RainText
		res.ResultClass = protocol.ResultClassRain
	} else {
		res.Prediction = NoRainText
		res.ResultClass = protocol.ResultClassNoRain
	}
	return res, nil
}

func (m *RuleModel) Info() protocol.ModelInfo {
	names := m.Catalog.Names()
	return protocol.ModelInfo{
		ModelLoaded:      true,
		ModelReady:       true,
		ModelType:        TypeRule,
		ModelVersion:     m.Version,
		ExpectedFeatures: len(names),
		FeatureNames:     names,
		FeatureCount:     len(names),
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
