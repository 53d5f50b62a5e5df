// Package idx generates lexicographically sortable ULID identifiers for
// all persisted entities.
package idx

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a new ULID-based ID using the current UTC time and a
// monotonic entropy source, safe for concurrent use.
func New() ID {
	mu.Lock()
	defer mu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String())
}

// String returns the canonical string form.
func (id ID) String() string { return string(id) }
