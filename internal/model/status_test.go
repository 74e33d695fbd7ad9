package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeStamp_String(t *testing.T) {
	tests := []struct {
		name string
		ts   TimeStamp
		want string
	}{
		{"zero", TimeStamp{}, "0.000000000000000"},
		{"eighth", TimeStamp{Femtos: 125_000_000_000_000}, "0.125000000000000"},
		{"one femto", TimeStamp{Femtos: 1}, "0.000000000000001"},
		{"seconds", TimeStamp{Secs: 42, Femtos: 5}, "42.000000000000005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ts.String())
		})
	}
}

func TestParseTimeStamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeStamp
		wantErr bool
	}{
		{"full precision", "0.125000000000000", TimeStamp{Femtos: 125_000_000_000_000}, false},
		{"short fraction", "1.5", TimeStamp{Secs: 1, Femtos: 500_000_000_000_000}, false},
		{"integer", "3", TimeStamp{Secs: 3}, false},
		{"empty", "", TimeStamp{}, true},
		{"trailing dot", "1.", TimeStamp{}, true},
		{"too precise", "0.0000000000000001", TimeStamp{}, true},
		{"negative", "-1.0", TimeStamp{}, true},
		{"garbage", "abc", TimeStamp{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeStamp(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTime)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeStamp_AddCarries(t *testing.T) {
	ts := TimeStamp{Secs: 1, Femtos: FemtosPerSecond - 1}

	got := ts.Add(2)

	assert.Equal(t, TimeStamp{Secs: 2, Femtos: 1}, got)
	assert.True(t, ts.Before(got))
	assert.True(t, got.After(ts))
	assert.Equal(t, 0, got.Compare(got))
}

func TestSimulationStatus_JSON(t *testing.T) {
	status := SimulationStatus{Status: StatePaused}

	data, err := json.Marshal(status)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"paused","latest_time":"0.000000000000000"}`, string(data))

	var decoded SimulationStatus
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, status, decoded)
}
