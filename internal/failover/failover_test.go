package failover

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAddresses(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestDo_TriesAllInOrderAndSticks(t *testing.T) {
	eps, err := New([]string{"http://a", "http://b", "http://c"})
	require.NoError(t, err)

	var attempted []string
	call := func(_ context.Context, addr string) error {
		attempted = append(attempted, addr)
		if addr != "http://c" {
			return fmt.Errorf("connection refused")
		}
		return nil
	}

	require.NoError(t, eps.Do(context.Background(), call))
	assert.Equal(t, []string{"http://a", "http://b", "http://c"}, attempted)

	// Subsequent call must try the last successful address first.
	attempted = nil
	require.NoError(t, eps.Do(context.Background(), call))
	assert.Equal(t, []string{"http://c"}, attempted)
}

func TestDo_FallsBackFromStickyAddress(t *testing.T) {
	eps, err := New([]string{"http://a", "http://b"})
	require.NoError(t, err)

	// Make b the sticky choice.
	require.NoError(t, eps.Do(context.Background(), func(_ context.Context, addr string) error {
		if addr != "http://b" {
			return fmt.Errorf("down")
		}
		return nil
	}))

	var attempted []string
	require.NoError(t, eps.Do(context.Background(), func(_ context.Context, addr string) error {
		attempted = append(attempted, addr)
		if addr != "http://a" {
			return fmt.Errorf("down")
		}
		return nil
	}))
	assert.Equal(t, []string{"http://b", "http://a"}, attempted)
}

func TestDo_AggregatedErrorNamesAllAddresses(t *testing.T) {
	eps, err := New([]string{"http://a", "http://b", "http://c"})
	require.NoError(t, err)

	err = eps.Do(context.Background(), func(_ context.Context, addr string) error {
		return fmt.Errorf("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 endpoints failed")
	assert.Contains(t, err.Error(), "http://a")
	assert.Contains(t, err.Error(), "http://b")
	assert.Contains(t, err.Error(), "http://c")
}
