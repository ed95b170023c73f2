package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskLabel_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "Buy milk", TaskLabel("Buy milk"))
	assert.Equal(t, "", TaskLabel(""))
}

func TestTaskLabel_ExactLimitUnchanged(t *testing.T) {
	text := "14 chars exact" // exactly 14
	assert.Equal(t, text, TaskLabel(text))
}

func TestTaskLabel_LongTextTruncated(t *testing.T) {
	assert.Equal(t, "This is a very...", TaskLabel("This is a very long task"))
}

func TestTaskLabel_TruncatesByRunes(t *testing.T) {
	text := "ääääääääääääääää" // 16 runes
	assert.Equal(t, "ääääääääääääää...", TaskLabel(text))
}

func TestDueDate_EmptyBecomesSentinel(t *testing.T) {
	assert.Equal(t, NoDueDate, DueDate(""))
}

func TestDueDate_ValuePassesThrough(t *testing.T) {
	assert.Equal(t, "2024-05-01", DueDate("2024-05-01"))
	assert.Equal(t, NoDueDate, DueDate(NoDueDate))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Completed", StatusLabel(true))
	assert.Equal(t, "Pending", StatusLabel(false))
}
