package archive

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Chain searches several archives. Archives added later take priority, the
// same way client patch archives override the base data.
type Chain struct {
	archives []Archive
	mu       sync.RWMutex
}

// NewChain creates an empty chain.
func NewChain(archives ...Archive) *Chain {
	c := &Chain{}
	for _, a := range archives {
		c.Add(a)
	}
	return c
}

// Add appends an archive with the highest priority so far.
func (c *Chain) Add(a Archive) {
	c.mu.Lock()
	c.archives = append(c.archives, a)
	c.mu.Unlock()
}

// Len returns the number of archives in the chain.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.archives)
}

// ReadFile returns name from the highest-priority archive that has it.
func (c *Chain) ReadFile(name string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := len(c.archives) - 1; i >= 0; i-- {
		data, err := c.archives[i].ReadFile(name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// List returns the union of all archive listings, deduplicated by
// normalized name and sorted. Archives without a listing are skipped.
func (c *Chain) List() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for i := len(c.archives) - 1; i >= 0; i-- {
		names, err := c.archives[i].List()
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			key := NormalizePath(n)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Close closes every archive and empties the chain.
func (c *Chain) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, a := range c.archives {
		if err := a.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.archives = nil
	return errors.Join(errs...)
}
