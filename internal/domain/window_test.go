package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkhmelev/RCP-FacilityService/pkg/types"
)

func TestParseOperatingWindow(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OperatingWindow
		wantErr error
	}{
		{
			name:  "valid window",
			input: "09:00-21:00",
			want:  OperatingWindow{Open: "09:00", Close: "21:00"},
		},
		{
			name:  "full day",
			input: "00:00-23:59",
			want:  OperatingWindow{Open: "00:00", Close: "23:59"},
		},
		{name: "missing separator", input: "09:00 21:00", wantErr: ErrWindowFormat},
		{name: "too many parts", input: "09:00-13:00-21:00", wantErr: ErrWindowFormat},
		{name: "spaces around separator", input: "09:00 - 21:00", wantErr: ErrWindowFormat},
		{name: "no zero padding", input: "9:00-21:00", wantErr: ErrWindowFormat},
		{name: "hour out of range", input: "09:00-24:00", wantErr: ErrWindowTime},
		{name: "close equals open", input: "09:00-09:00", wantErr: ErrWindowOrder},
		{name: "close before open", input: "21:00-09:00", wantErr: ErrWindowOrder},
		{name: "empty", input: "", wantErr: ErrWindowFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOperatingWindow(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperatingWindow_Slots(t *testing.T) {
	t.Run("two hour window with hour slots", func(t *testing.T) {
		w, err := ParseOperatingWindow("09:00-11:00")
		require.NoError(t, err)

		slots := w.Slots(60)
		require.Len(t, slots, 2)
		assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
		assert.Equal(t, types.TimeString("10:00"), slots[1].StartTime)
		assert.Equal(t, 60, slots[0].DurationMinutes)
	})

	t.Run("trailing partial slot is dropped", func(t *testing.T) {
		w, err := ParseOperatingWindow("09:00-10:30")
		require.NoError(t, err)

		slots := w.Slots(60)
		require.Len(t, slots, 1)
		assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	})

	t.Run("window shorter than one slot yields empty grid", func(t *testing.T) {
		w, err := ParseOperatingWindow("09:00-09:30")
		require.NoError(t, err)

		assert.Empty(t, w.Slots(60))
	})

	t.Run("grid is contiguous without gaps or overlaps", func(t *testing.T) {
		w, err := ParseOperatingWindow("08:00-22:00")
		require.NoError(t, err)

		slots := w.Slots(45)
		require.NotEmpty(t, slots)

		for i, slot := range slots {
			end, err := slot.EndTime()
			require.NoError(t, err)

			// Слот целиком внутри окна
			assert.GreaterOrEqual(t, slot.StartTime.Minutes(), w.Open.Minutes())
			assert.LessOrEqual(t, end.Minutes(), w.Close.Minutes())

			// Следующий слот начинается ровно в конце предыдущего
			if i > 0 {
				prevEnd, err := slots[i-1].EndTime()
				require.NoError(t, err)
				assert.Equal(t, prevEnd, slot.StartTime)
			}
		}
	})

	t.Run("slot grid can reach end of day", func(t *testing.T) {
		w, err := ParseOperatingWindow("22:00-23:59")
		require.NoError(t, err)

		slots := w.Slots(60)
		require.Len(t, slots, 1)
		assert.Equal(t, types.TimeString("22:00"), slots[0].StartTime)
	})

	t.Run("invalid slot minutes falls back to default", func(t *testing.T) {
		w, err := ParseOperatingWindow("09:00-11:00")
		require.NoError(t, err)

		assert.Len(t, w.Slots(0), 2)
	})
}

func TestOperatingWindow_FindSlot(t *testing.T) {
	w, err := ParseOperatingWindow("09:00-12:00")
	require.NoError(t, err)

	slot, ok := w.FindSlot(60, "10:00")
	assert.True(t, ok)
	assert.Equal(t, types.TimeString("10:00"), slot.StartTime)

	// Время внутри окна, но не на границе слота
	_, ok = w.FindSlot(60, "10:30")
	assert.False(t, ok)

	// За пределами окна
	_, ok = w.FindSlot(60, "12:00")
	assert.False(t, ok)
}
