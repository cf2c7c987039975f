package derive

import (
	"math"
	"strconv"
	"strings"

	apperrors "github.com/vladimiradmaev/pet-diabetes-tracker/internal/errors"
)

// Glucose thresholds in mg/dL. The chart reference lines use the same values.
const (
	GlucoseLowThreshold  = 80.0
	GlucoseHighThreshold = 180.0
)

// GlucoseLevel classifies a reading.
type GlucoseLevel string

const (
	LevelLow           GlucoseLevel = "low"
	LevelNormal        GlucoseLevel = "normal"
	LevelHigh          GlucoseLevel = "high"
	LevelIndeterminate GlucoseLevel = "indeterminate"
)

// ParseValue reads a numeric event value. Empty, non-numeric and non-finite
// inputs yield a parse error.
func ParseValue(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.NewParseError(value)
	}
	return v, nil
}

// ClassifyGlucose classifies a glucose value given as text.
func ClassifyGlucose(value string) GlucoseLevel {
	v, err := ParseValue(value)
	if err != nil {
		return LevelIndeterminate
	}
	return ClassifyGlucoseValue(v)
}

// ClassifyGlucoseValue classifies a parsed glucose value.
func ClassifyGlucoseValue(v float64) GlucoseLevel {
	switch {
	case v < GlucoseLowThreshold:
		return LevelLow
	case v > GlucoseHighThreshold:
		return LevelHigh
	default:
		return LevelNormal
	}
}

// Evaluation is a classified reading with its display colour.
type Evaluation struct {
	Level GlucoseLevel
	Color string
	// Warning is set for out-of-range readings.
	Warning bool
}

// EvaluateGlucose classifies value and picks the tag colour.
func EvaluateGlucose(value string) Evaluation {
	switch level := ClassifyGlucose(value); level {
	case LevelLow, LevelHigh:
		return Evaluation{Level: level, Color: "red", Warning: true}
	case LevelNormal:
		return Evaluation{Level: level, Color: "green"}
	default:
		return Evaluation{Level: level, Color: "default"}
	}
}

// ReferenceLine is a horizontal marker on the glucose chart.
type ReferenceLine struct {
	Value float64
	Label string
}

// ReferenceLines returns the minimum and maximum markers.
func ReferenceLines() []ReferenceLine {
	return []ReferenceLine{
		{Value: GlucoseLowThreshold, Label: "Mínimo"},
		{Value: GlucoseHighThreshold, Label: "Máximo"},
	}
}
