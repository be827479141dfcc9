package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_ToggleIsIdempotent(t *testing.T) {
	tr := NewTracker()

	tr.Toggle("1", true)
	tr.Toggle("1", true)
	tr.Toggle("2", true)
	assert.Equal(t, []string{"1", "2"}, tr.IDs())

	tr.Toggle("2", false)
	tr.Toggle("2", false)
	tr.Toggle("missing", false)
	assert.Equal(t, []string{"1"}, tr.IDs())
	assert.True(t, tr.Has("1"))
	assert.False(t, tr.Has("2"))
}

func TestTracker_SelectAllVisibleReplaces(t *testing.T) {
	tr := NewTracker()
	tr.Toggle("1", true)
	tr.Toggle("2", true)

	tr.SelectAllVisible([]string{"3", "2"})

	assert.Equal(t, []string{"2", "3"}, tr.IDs())

	tr.SelectAllVisible(nil)
	assert.Equal(t, 0, tr.Len())
}

func TestTracker_ClearAndPrune(t *testing.T) {
	tr := NewTracker()
	tr.SelectAllVisible([]string{"1", "2", "3"})

	tr.Prune([]string{"2", "9"})
	assert.Equal(t, []string{"1", "3"}, tr.IDs())

	tr.Clear()
	assert.Empty(t, tr.IDs())
}

func TestTracker_IDsIsSnapshot(t *testing.T) {
	tr := NewTracker()
	tr.Toggle("1", true)

	snapshot := tr.IDs()
	tr.Toggle("2", true)

	assert.Equal(t, []string{"1"}, snapshot)
}
