package cache

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// lruModel is a slow reference implementation: a slice of keys ordered most
// to least recently used.
type lruModel struct {
	capacity int
	weigher  Weigher[int]
	order    []string
	values   map[string]int
}

func (m *lruModel) touch(key string) {
	m.order = slices.DeleteFunc(m.order, func(k string) bool {
		return k == key
	})
	m.order = append([]string{key}, m.order...)
}

func (m *lruModel) weight() int {
	total := 0
	for _, k := range m.order {
		total += m.weigher(m.values[k])
	}
	return total
}

func (m *lruModel) get(key string) (int, bool) {
	v, ok := m.values[key]
	if ok {
		m.touch(key)
	}
	return v, ok
}

func (m *lruModel) set(key string, value int) {
	m.values[key] = value
	m.touch(key)

	for m.weight() > m.capacity && len(m.order) > 1 {
		victim := m.order[len(m.order)-1]
		m.order = m.order[:len(m.order)-1]
		delete(m.values, victim)
	}
}

// TestCacheMatchesModel drives the cache and the model with the same random
// Get/Set sequence and checks they never diverge.
func TestCacheMatchesModel(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 12).Draw(t, "capacity")
		weighted := rapid.Bool().Draw(t, "weighted")

		w := UnitWeigher[int]()
		if weighted {
			w = identity
		}

		c := New[string, int](Config[int]{
			Capacity: capacity,
			Weigher:  w,
		})
		m := &lruModel{
			capacity: capacity,
			weigher:  w,
			order:    []string{},
			values:   make(map[string]int),
		}

		keyGen := rapid.SampledFrom([]string{"a", "b", "c", "d", "e", "f"})
		valGen := rapid.IntRange(0, 8)

		t.Repeat(map[string]func(*rapid.T){
			"get": func(t *rapid.T) {
				key := keyGen.Draw(t, "key")

				want, wantOK := m.get(key)
				got, gotOK := c.Get(key)
				require.Equal(t, wantOK, gotOK)
				require.Equal(t, want, got)
			},
			"set": func(t *rapid.T) {
				key := keyGen.Draw(t, "key")
				val := valGen.Draw(t, "value")

				m.set(key, val)
				c.Set(key, val)
			},
			"": func(t *rapid.T) {
				require.Equal(t, m.order, c.Keys())
				require.Equal(t, len(m.order), c.ItemCount())
				require.Equal(t, m.weight(), c.TotalWeight())

				if c.ItemCount() > 1 {
					require.LessOrEqual(t, c.TotalWeight(),
						capacity)
				}

				keys := []string{}
				for k := range c.Entries() {
					keys = append(keys, k)
				}
				require.Equal(t, c.Keys(), keys)
			},
		})
	})
}
