package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	kb := NewBuilder().
		Grid(3, Button("1", "a"), Button("2", "b"), Button("3", "c"), Button("4", "d")).
		AddBackButton("back").
		Build()

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, "back", kb.InlineKeyboard[2][0].CallbackData)
}

func TestPeriodNavigation(t *testing.T) {
	row := PeriodNavigation("Неделя", "prev", "next")
	require.Len(t, row, 3)
	assert.Equal(t, "prev", row[0].CallbackData)
	assert.Equal(t, "noop", row[1].CallbackData)
	assert.Equal(t, "next", row[2].CallbackData)
}
