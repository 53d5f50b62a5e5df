package idx

import (
	"sort"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNewProducesSortableValidIDs(t *testing.T) {
	ids := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		id := New().String()
		_, err := ulid.ParseStrict(id)
		require.NoError(t, err, "id %q must be a canonical ULID", id)
		ids = append(ids, id)
	}

	require.True(t, sort.StringsAreSorted(ids), "ids must be monotonic within a process")
}

func TestNewIsSafeForConcurrentUse(t *testing.T) {
	var (
		mu  sync.Mutex
		ids = make(map[string]struct{})
		wg  sync.WaitGroup
	)

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := New().String()
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, ids, 8*200)
}
