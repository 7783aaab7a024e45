package formula

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Interner maps structurally equal formulas to one shared instance.
// Entries are bucketed by Hash and confirmed with Equal, so hash
// collisions only cost a comparison. The least recently used buckets are
// evicted once size is exceeded.
type Interner struct {
	mu     sync.Mutex
	cache  *lru.Cache[uint64, []Formula]
	hits   uint64
	misses uint64
}

func NewInterner(size int) (*Interner, error) {
	cache, err := lru.New[uint64, []Formula](size)
	if err != nil {
		return nil, fmt.Errorf("creating interner: %w", err)
	}
	return &Interner{cache: cache}, nil
}

// Intern returns the canonical instance equal to f, registering f if none
// is known yet. shared reports whether an equal formula was already held.
func (in *Interner) Intern(f Formula) (canonical Formula, shared bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	h := f.Hash()
	bucket, _ := in.cache.Get(h)
	for _, known := range bucket {
		if known.Equal(f) {
			in.hits++
			return known, true
		}
	}
	in.misses++
	in.cache.Add(h, append(bucket[:len(bucket):len(bucket)], f))
	return f, false
}

// Contains reports whether a formula equal to f has been interned.
func (in *Interner) Contains(f Formula) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	bucket, _ := in.cache.Peek(f.Hash())
	for _, known := range bucket {
		if known.Equal(f) {
			return true
		}
	}
	return false
}

// Len is the number of hash buckets currently held.
func (in *Interner) Len() int { return in.cache.Len() }

// Counts returns the hit and miss totals.
func (in *Interner) Counts() (hits, misses uint64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.hits, in.misses
}
