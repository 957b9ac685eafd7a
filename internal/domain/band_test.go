package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shadowmov/easyqso/backend/internal/domain"
)

func TestBandForFrequency(t *testing.T) {
	tests := []struct {
		mhz  float64
		want string
	}{
		{1.85, "160m"},
		{3.573, "80m"},
		{7.074, "40m"},
		{10.136, "30m"},
		{14.250, "20m"},
		{18.1, "17m"},
		{21.074, "15m"},
		{24.915, "12m"},
		{28.5, "10m"},
		{50.313, "6m"},
		{145.8, "2m"},
		{435.0, "70cm"},
	}

	for _, tc := range tests {
		got, ok := domain.BandForFrequency(tc.mhz)
		assert.True(t, ok, "%.3f MHz", tc.mhz)
		assert.Equal(t, tc.want, got, "%.3f MHz", tc.mhz)
	}
}

func TestBandForFrequency_Edges(t *testing.T) {
	got, ok := domain.BandForFrequency(14.0)
	assert.True(t, ok)
	assert.Equal(t, "20m", got)

	got, ok = domain.BandForFrequency(14.35)
	assert.True(t, ok)
	assert.Equal(t, "20m", got)
}

func TestBandForFrequency_OutsideAnyBand(t *testing.T) {
	for _, mhz := range []float64{0, 2.5, 13.999, 100.0, 500.0} {
		_, ok := domain.BandForFrequency(mhz)
		assert.False(t, ok, "%.3f MHz should not resolve to a band", mhz)
	}
}
