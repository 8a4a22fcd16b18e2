package predictions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampScan(t *testing.T) {
	want := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	withMillis := time.Date(2025, 3, 1, 10, 0, 0, 123000000, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time", want.In(time.FixedZone("CET", 3600)), want},
		{"sqlite text", "2025-03-01 10:00:00", want},
		{"sqlite millis", "2025-03-01 10:00:00.123", withMillis},
		{"bytes", []byte("2025-03-01T10:00:00Z"), want},
		{"offset", "2025-03-01 11:00:00+01:00", want},
		{"null", nil, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got time.Time
			require.NoError(t, timestamp{&got}.Scan(tt.in))
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestTimestampScan_Errors(t *testing.T) {
	var got time.Time
	assert.Error(t, timestamp{&got}.Scan("yesterday"))
	assert.Error(t, timestamp{&got}.Scan(42))
}
