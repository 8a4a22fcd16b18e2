// Package models defines server-side data models persisted in the database.
package models

import "time"

// FeatureVector is one iris sample. The struct is comparable and is used as
// a cache key as-is, so lookups use exact float equality.
type FeatureVector struct {
	SepalLength float64
	SepalWidth  float64
	PetalLength float64
	PetalWidth  float64
}

// Slice returns the features in model input order.
func (f FeatureVector) Slice() []float64 {
	return []float64{f.SepalLength, f.SepalWidth, f.PetalLength, f.PetalWidth}
}

// Prediction is one audit row of the predictions table.
type Prediction struct {
	// ID is assigned by the store, strictly increasing in insertion order.
	ID       int64
	Features FeatureVector
	// PredictedClass is nullable in storage; the service always sets it.
	PredictedClass *int
	CreatedAt      time.Time
}

// NewPrediction builds an unsaved record for features and label.
func NewPrediction(f FeatureVector, label int) *Prediction {
	return &Prediction{Features: f, PredictedClass: &label}
}
