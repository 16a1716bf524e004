// Package failover implements sticky ordered-endpoint failover for the
// synthesis and transcription services. Each client owns an independent
// Endpoints value with its own last-good state.
package failover

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"reelsmith/pkg/log"
)

// Endpoints is an ordered list of candidate service addresses plus a cached
// last-good index. The cached address is tried first; on failure the remaining
// addresses are tried in their configured order. The cache is updated only on
// success. Safe for concurrent use.
type Endpoints struct {
	mu       sync.Mutex
	addrs    []string
	lastGood int
}

// New creates an Endpoints over the given addresses, tried in order.
func New(addrs []string) (*Endpoints, error) {
	if len(addrs) == 0 {
		return nil, fmt.Errorf("at least one endpoint address is required")
	}
	cloned := make([]string, len(addrs))
	copy(cloned, addrs)
	return &Endpoints{addrs: cloned}, nil
}

// Addrs returns a snapshot of the configured addresses in their original order.
func (e *Endpoints) Addrs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ret := make([]string, len(e.addrs))
	copy(ret, e.addrs)
	return ret
}

// Do invokes call against candidate addresses until one succeeds. The cached
// last-good address goes first, then the rest in configured order. On success
// the winning address becomes the new first choice for subsequent calls. When
// every candidate fails, the returned error names all attempted addresses.
func (e *Endpoints) Do(ctx context.Context, call func(ctx context.Context, addr string) error) error {
	e.mu.Lock()
	order := make([]int, 0, len(e.addrs))
	order = append(order, e.lastGood)
	for i := range e.addrs {
		if i != e.lastGood {
			order = append(order, i)
		}
	}
	addrs := make([]string, len(e.addrs))
	copy(addrs, e.addrs)
	e.mu.Unlock()

	failures := make([]string, 0, len(order))
	for _, idx := range order {
		addr := addrs[idx]
		if err := call(ctx, addr); err != nil {
			log.Warn("Endpoint %s failed: %v", addr, err)
			failures = append(failures, fmt.Sprintf("%s: %v", addr, err))
			continue
		}
		e.mu.Lock()
		e.lastGood = idx
		e.mu.Unlock()
		return nil
	}

	return fmt.Errorf("all %d endpoints failed: %s", len(order), strings.Join(failures, "; "))
}
