package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("14:00")
	require.NoError(t, err)
	assert.Equal(t, "14:00", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("garbage")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("08:30")
	m, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 510, m)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("14:00")

	end, err := ts.AddMinutes(50)
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:50"), end)

	// Переход через полночь запрещен
	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_IsBefore(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:00"))
	// Строгое сравнение: равные времена не "раньше"
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// lib/pq отдает TIME как "HH:MM:SS"
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("17:45:00")))
	assert.Equal(t, TimeString("17:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 2, 11, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("11:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.Equal(t, TimeString(""), ts)
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("14:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "14:00:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
