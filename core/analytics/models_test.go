package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrendSeries_Latest(t *testing.T) {
	_, ok := TrendSeries{Metric: MetricEnrollment}.Latest()
	assert.False(t, ok)

	ts := TrendSeries{Metric: MetricEnrollment, Points: []TrendPoint{{Period: "2023", Value: 410}, {Period: "2024", Value: 452}}}
	p, ok := ts.Latest()
	assert.True(t, ok)
	assert.Equal(t, TrendPoint{Period: "2024", Value: 452}, p)
}
