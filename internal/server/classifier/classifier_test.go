package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/irispredictor/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModel_ClassifiesTextbookSamples(t *testing.T) {
	lr, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "iris-logreg", lr.Name())

	tests := []struct {
		name string
		in   models.FeatureVector
		want int
	}{
		{"setosa", models.FeatureVector{SepalLength: 5.1, SepalWidth: 3.5, PetalLength: 1.4, PetalWidth: 0.2}, 0},
		{"versicolor", models.FeatureVector{SepalLength: 5.9, SepalWidth: 3.0, PetalLength: 4.2, PetalWidth: 1.5}, 1},
		{"virginica", models.FeatureVector{SepalLength: 6.7, SepalWidth: 3.0, PetalLength: 5.2, PetalWidth: 2.3}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lr.Classify(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	lr, err := Load("")
	require.NoError(t, err)

	in := models.FeatureVector{SepalLength: 6.1, SepalWidth: 2.8, PetalLength: 4.7, PetalWidth: 1.2}
	first, err := lr.Classify(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, _ := lr.Classify(in)
		assert.Equal(t, first, got)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"name": "always-seven",
		"classes": [3, 7],
		"coef": [[0,0,0,0],[0,0,0,0]],
		"intercept": [0, 1]
	}`), 0o600))

	lr, err := Load(path)
	require.NoError(t, err)

	got, err := lr.Classify(models.FeatureVector{})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model file not found")
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":          `{`,
		"no classes":        `{"classes": [], "coef": [], "intercept": []}`,
		"shape mismatch":    `{"classes": [0,1], "coef": [[1,1,1,1]], "intercept": [0,0]}`,
		"short coef row":    `{"classes": [0], "coef": [[1,1,1]], "intercept": [0]}`,
		"missing intercept": `{"classes": [0], "coef": [[1,1,1,1]]}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}
