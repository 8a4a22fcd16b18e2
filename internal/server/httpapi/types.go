package httpapi

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/irispredictor/internal/server/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// predictRequest uses pointers so an absent field is distinguishable from 0.
type predictRequest struct {
	SepalLength *float64 `json:"sepal_length"`
	SepalWidth  *float64 `json:"sepal_width"`
	PetalLength *float64 `json:"petal_length"`
	PetalWidth  *float64 `json:"petal_width"`
}

func (p predictRequest) features() (models.FeatureVector, error) {
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"sepal_length", p.SepalLength},
		{"sepal_width", p.SepalWidth},
		{"petal_length", p.PetalLength},
		{"petal_width", p.PetalWidth},
	} {
		if f.v == nil {
			return models.FeatureVector{}, fmt.Errorf("field required: %s", f.name)
		}
	}
	return models.FeatureVector{
		SepalLength: *p.SepalLength,
		SepalWidth:  *p.SepalWidth,
		PetalLength: *p.PetalLength,
		PetalWidth:  *p.PetalWidth,
	}, nil
}

type predictResponse struct {
	PredictedClass int `json:"predicted_class"`
}

type predictionRecord struct {
	ID             int64   `json:"id"`
	SepalLength    float64 `json:"sepal_length"`
	SepalWidth     float64 `json:"sepal_width"`
	PetalLength    float64 `json:"petal_length"`
	PetalWidth     float64 `json:"petal_width"`
	PredictedClass *int    `json:"predicted_class"`
	CreatedAt      string  `json:"created_at"`
}

func toRecords(items []*models.Prediction) []predictionRecord {
	out := make([]predictionRecord, 0, len(items))
	for _, p := range items {
		out = append(out, predictionRecord{
			ID:             p.ID,
			SepalLength:    p.Features.SepalLength,
			SepalWidth:     p.Features.SepalWidth,
			PetalLength:    p.Features.PetalLength,
			PetalWidth:     p.Features.PetalWidth,
			PredictedClass: p.PredictedClass,
			CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}
