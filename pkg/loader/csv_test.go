package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raykavin/launchdash/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const launchCSV = `,Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
0,1,CCAFS LC-40,0,0.0,F9 v1.0  B0003,v1.0
1,2,CCAFS LC-40,0,0.0,F9 v1.0  B0004,v1.0
2,3,CCAFS LC-40,0,525.0,F9 v1.0  B0005,v1.0
3,4,VAFB SLC-4E,1,500.0,F9 v1.1  B1003,v1.1
4,5,KSC LC-39A,1,9600.0,F9 FT B1031.1,FT
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(launchCSV))
	require.NoError(t, err)

	require.Equal(t, 5, ds.Len())
	assert.Equal(t, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"}, ds.Sites())
	assert.Equal(t, core.PayloadRange{Min: 0, Max: 9600}, ds.PayloadBounds())

	records := ds.Records()
	assert.Equal(t, core.LaunchRecord{
		FlightNumber:   3,
		Site:           "CCAFS LC-40",
		PayloadMass:    525,
		Outcome:        core.Failure,
		BoosterVersion: "v1.0",
	}, records[2])
	assert.Equal(t, core.Success, records[4].Outcome)
	assert.Equal(t, "FT", records[4].BoosterVersion)
}

func TestReadCSV_AlternateSchema(t *testing.T) {
	data := "LaunchSite,PayloadMass,Class,BoosterVersion\n" +
		"A,500,Success,v1.0\n" +
		"A,1500,Failure,v1.1\n" +
		"B,2000,Success,FT\n"

	ds, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)

	records := ds.Records()
	require.Len(t, records, 3)
	assert.Equal(t, core.Success, records[0].Outcome)
	assert.Equal(t, core.Failure, records[1].Outcome)
	assert.Zero(t, records[0].FlightNumber)
	assert.Equal(t, "FT", records[2].BoosterVersion)
}

func TestReadCSV_WholeFloatFlightNumber(t *testing.T) {
	data := "Flight Number,Launch Site,Payload Mass (kg),class,Booster Version\n7.0,A,100,1,v1\n"

	ds, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 7, ds.Records()[0].FlightNumber)
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("Launch Site,Payload Mass (kg),class,Booster Version Category\n"))
	require.NoError(t, err)
	assert.Zero(t, ds.Len())
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{
			name: "empty file",
			data: "",
			err:  core.ErrEmptyFile,
		},
		{
			name: "missing column",
			data: "Launch Site,class,Booster Version\nA,1,v1\n",
			err:  core.ErrMissingColumn,
		},
		{
			name: "bad payload",
			data: "Launch Site,Payload Mass (kg),class,Booster Version\nA,heavy,1,v1\n",
			err:  core.ErrInvalidPayload,
		},
		{
			name: "NaN payload",
			data: "Launch Site,Payload Mass (kg),class,Booster Version\nA,NaN,1,v1\n",
			err:  core.ErrInvalidPayload,
		},
		{
			name: "infinite payload",
			data: "Launch Site,Payload Mass (kg),class,Booster Version\nA,+Inf,1,v1\n",
			err:  core.ErrInvalidPayload,
		},
		{
			name: "negative infinite payload",
			data: "Launch Site,Payload Mass (kg),class,Booster Version\nA,-Inf,1,v1\n",
			err:  core.ErrInvalidPayload,
		},
		{
			name: "fractional flight number",
			data: "Flight Number,Launch Site,Payload Mass (kg),class,Booster Version\n1.7,A,100,1,v1\n",
			err:  core.ErrInvalidFlight,
		},
		{
			name: "non-numeric flight number",
			data: "Flight Number,Launch Site,Payload Mass (kg),class,Booster Version\nfirst,A,100,1,v1\n",
			err:  core.ErrInvalidFlight,
		},
		{
			name: "bad outcome",
			data: "Launch Site,Payload Mass (kg),class,Booster Version\nA,100,2,v1\n",
			err:  core.ErrInvalidOutcome,
		},
		{
			name: "negative payload",
			data: "Launch Site,Payload Mass (kg),class,Booster Version\nA,-100,1,v1\n",
			err:  core.ErrNegativePayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFromCSV(t *testing.T) {
	file := filepath.Join(t.TempDir(), "spacex_launch_dash.csv")
	require.NoError(t, os.WriteFile(file, []byte(launchCSV), 0o600))

	ds, err := FromCSV(file)
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())
}

func TestFromCSV_MissingFile(t *testing.T) {
	_, err := FromCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "payloadmasskg", normalizeHeader("Payload Mass (kg)"))
	assert.Equal(t, "launchsite", normalizeHeader(" LaunchSite "))
	assert.Equal(t, "", normalizeHeader(""))
}
