package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected TimeString
		wantErr  bool
	}{
		{"09:00", "09:00", false},
		{"23:59", "23:59", false},
		{"09:00:00", "09:00", false}, // секунды отбрасываются
		{"9:00", "09:00", false},     // ведущий ноль нормализуется
		{"25:00", "", true},
		{"09:60", "", true},
		{"morning", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.String(), ts.String())
		})
	}
}

func TestTimeStringMinutes(t *testing.T) {
	ts := TimeString("09:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	shifted, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "10:15", shifted.String())

	// Переход через полночь не поддерживается
	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:10").AddMinutes(-30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringComparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("17:00"))
	assert.True(t, TimeString("17:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}

func TestTimeStringOnDate(t *testing.T) {
	loc := time.FixedZone("UTC-05:00", -5*60*60)

	ts := TimeString("09:30")
	instant, err := ts.OnDate(2026, time.January, 26, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.January, 26, 9, 30, 0, 0, loc), instant)
	// 09:30 в UTC-5 это 14:30 UTC
	assert.Equal(t, time.Date(2026, time.January, 26, 14, 30, 0, 0, time.UTC).Unix(), instant.Unix())
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, "09:30", ts.String())

	require.NoError(t, ts.Scan([]byte("17:00:00")))
	assert.Equal(t, "17:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(2026, time.January, 26, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, "08:15", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
