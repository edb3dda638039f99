package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_AddAndDedup(t *testing.T) {
	t.Parallel()

	q := NewQuery()
	assert.True(t, q.Empty())

	q.AddDetected("Egg", "milk")
	q.AddManual(" EGG ")
	q.AddManual("Rice")
	q.AddManual("   ")

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []string{"Egg", "milk", "Rice"}, q.Raw())
	assert.Equal(t, []string{"egg", "milk", "rice"}, q.Set().Sorted())

	items := q.Items()
	assert.Equal(t, SourceDetected, items[0].Source)
	assert.Equal(t, SourceManual, items[2].Source)
}

func TestQuery_AddManualList(t *testing.T) {
	t.Parallel()

	q := NewQuery()
	added := q.AddManualList("rice, bread;\nchicken, Rice,,")
	assert.Equal(t, 3, added)
	assert.Equal(t, []string{"rice", "bread", "chicken"}, q.Raw())
}

func TestQuery_RemoveAndReset(t *testing.T) {
	t.Parallel()

	q := NewQuery()
	q.AddDetected("egg", "milk", "butter")

	assert.True(t, q.Remove("MILK"))
	assert.False(t, q.Remove("milk"))
	assert.Equal(t, []string{"egg", "butter"}, q.Raw())

	// index stays consistent after removal
	assert.True(t, q.Remove("butter"))
	assert.Equal(t, []string{"egg"}, q.Raw())

	q.Reset()
	assert.True(t, q.Empty())
	q.AddManual("egg")
	assert.Equal(t, 1, q.Len())
}

func TestFromItems(t *testing.T) {
	t.Parallel()

	q := FromItems([]Item{
		{Raw: "egg", Source: SourceDetected},
		{Raw: "Egg", Source: SourceManual},
		{Raw: "salt", Source: SourceManual},
	})
	assert.Equal(t, []string{"egg", "salt"}, q.Raw())
}
