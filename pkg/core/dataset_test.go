package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset(t *testing.T) {
	ds, err := NewDataset([]LaunchRecord{
		{Site: "B", PayloadMass: 2000, Outcome: Success},
		{Site: "A", PayloadMass: 500, Outcome: Success},
		{Site: "B", PayloadMass: 1500, Outcome: Failure},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"B", "A"}, ds.Sites())
	assert.Equal(t, PayloadRange{Min: 500, Max: 2000}, ds.PayloadBounds())
	assert.True(t, ds.HasSite("A"))
	assert.False(t, ds.HasSite("C"))
}

func TestNewDataset_Empty(t *testing.T) {
	ds, err := NewDataset(nil)
	require.NoError(t, err)
	assert.Zero(t, ds.Len())
	assert.Empty(t, ds.Sites())
	assert.Equal(t, PayloadRange{}, ds.PayloadBounds())
}

func TestNewDataset_NegativePayload(t *testing.T) {
	_, err := NewDataset([]LaunchRecord{{Site: "A", PayloadMass: -1}})
	require.ErrorIs(t, err, ErrNegativePayload)
}

func TestNewDataset_NonFinitePayload(t *testing.T) {
	for _, mass := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewDataset([]LaunchRecord{
			{Site: "A", PayloadMass: 100},
			{Site: "A", PayloadMass: mass},
		})
		require.ErrorIs(t, err, ErrInvalidPayload, "mass %v", mass)
	}
}

func TestDataset_RecordsIsCopy(t *testing.T) {
	ds, err := NewDataset([]LaunchRecord{{Site: "A", PayloadMass: 1}})
	require.NoError(t, err)

	records := ds.Records()
	records[0].Site = "changed"
	assert.Equal(t, "A", ds.Records()[0].Site)
}

func TestDataset_Select(t *testing.T) {
	ds, err := NewDataset([]LaunchRecord{
		{FlightNumber: 1, Site: "A", PayloadMass: 500, Outcome: Success},
		{FlightNumber: 2, Site: "A", PayloadMass: 1500, Outcome: Failure},
		{FlightNumber: 3, Site: "B", PayloadMass: 2000, Outcome: Success},
	})
	require.NoError(t, err)

	assert.Len(t, ds.Select(), 3)
	assert.Len(t, ds.Select(WithSite(AllSites)), 3)
	assert.Len(t, ds.Select(WithSite("A")), 2)
	assert.Empty(t, ds.Select(WithSite("C")))

	selected := ds.Select(WithOutcome(Success), WithPayloadIn(PayloadRange{Min: 0, Max: 2000}))
	require.Len(t, selected, 2)
	assert.Equal(t, 1, selected[0].FlightNumber)
	assert.Equal(t, 3, selected[1].FlightNumber)
}

func TestBounds(t *testing.T) {
	r := PayloadRange{Min: 100, Max: 200}
	assert.True(t, r.Contains(100))
	assert.True(t, r.Contains(200))
	assert.False(t, r.Contains(99.9))
	assert.False(t, r.Contains(200.1))

	assert.Equal(t, r, PayloadRange{Min: 200, Max: 100}.Normalize())
	assert.Equal(t, r, r.Normalize())
}

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		raw      string
		expected Outcome
		wantErr  bool
	}{
		{"1", Success, false},
		{"0", Failure, false},
		{"Success", Success, false},
		{" failure ", Failure, false},
		{"TRUE", Success, false},
		{"maybe", Failure, true},
		{"", Failure, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			outcome, err := ParseOutcome(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOutcome)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, outcome)
		})
	}
}

func TestOutcome_Value(t *testing.T) {
	assert.Equal(t, 1, Success.Value())
	assert.Equal(t, 0, Failure.Value())
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "Failure", Failure.String())
}
