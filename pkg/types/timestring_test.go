package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{name: "valid morning", value: "09:00"},
		{name: "valid midnight", value: "00:00"},
		{name: "valid end of day", value: "23:59"},
		{name: "hour out of range", value: "24:00", wantErr: ErrInvalidTimeString},
		{name: "minute out of range", value: "10:60", wantErr: ErrInvalidTimeString},
		{name: "missing zero padding", value: "9:00", wantErr: ErrInvalidTimeString},
		{name: "wrong separator", value: "09.00", wantErr: ErrInvalidTimeString},
		{name: "with seconds", value: "09:00:00", wantErr: ErrInvalidTimeString},
		{name: "letters", value: "ab:cd", wantErr: ErrInvalidTimeString},
		{name: "empty", value: "", wantErr: ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 540, TimeString("09:00").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		add     int
		want    TimeString
		wantErr error
	}{
		{name: "whole hour", start: "09:00", add: 60, want: "10:00"},
		{name: "partial hour", start: "09:30", add: 45, want: "10:15"},
		{name: "up to last minute", start: "23:00", add: 59, want: "23:59"},
		{name: "exactly midnight", start: "23:00", add: 60, wantErr: ErrTimeOutOfRange},
		{name: "past midnight", start: "23:30", add: 45, wantErr: ErrTimeOutOfRange},
		{name: "negative below zero", start: "00:30", add: -60, wantErr: ErrTimeOutOfRange},
		{name: "invalid source", start: "9:00", add: 30, wantErr: ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.add)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	early := TimeString("09:00")
	late := TimeString("10:30")

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsAfter(early))
	assert.Equal(t, 90, early.MinutesUntil(late))
	assert.Equal(t, -90, late.MinutesUntil(early))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	got := TimeString("14:30").At(date)

	assert.Equal(t, time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC), got)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	got, err := NewTimeStringFromMinutes(615)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	_, err = NewTimeStringFromMinutes(1440)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:00:00"))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan([]byte("18:45")))
	assert.Equal(t, TimeString("18:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
