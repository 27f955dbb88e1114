package opfskit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/river0g/opfs-kit/errors"
)

func TestDeferredAwait(t *testing.T) {
	d := dispatch(func() (int, error) { return 42, nil }, nil)
	require.NotNil(t, d)

	v, err := d.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	// A completed deferred may be awaited again.
	v, err = d.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestDeferredAwaitFailure(t *testing.T) {
	cause := fmt.Errorf("backend exploded")
	d := dispatch(func() (int, error) { return 0, cause }, nil)

	v, err := d.Await(context.Background())
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, v)
}

func TestDeferredAwaitContextExpiry(t *testing.T) {
	release := make(chan struct{})
	d := dispatch(func() (int, error) {
		<-release
		return 1, nil
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := d.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Expiry abandoned the wait, not the operation: once the operation
	// finishes, a fresh Await still observes its outcome.
	close(release)
	v, err := d.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestDeferredAwaitNil(t *testing.T) {
	var d *Deferred[int]
	_, err := d.Await(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidInput))
}

func TestDeferredWait(t *testing.T) {
	d := dispatchVoid(func() error { return nil }, nil)
	assert.NoError(t, d.Wait(context.Background()))
}

func TestDispatchCallbackConvention(t *testing.T) {
	done := make(chan int, 1)
	d := dispatch(func() (int, error) { return 7, nil }, func(err error, v int) {
		assert.NoError(t, err)
		done <- v
	})
	assert.Nil(t, d, "callback calls return no deferred")

	select {
	case v := <-done:
		assert.Equal(t, 7, v)
	case <-time.After(5 * time.Second):
		t.Fatal("callback was never invoked")
	}
}

func TestDispatchCallbackZeroOnFailure(t *testing.T) {
	done := make(chan int, 1)
	dispatch(func() (int, error) { return 99, fmt.Errorf("nope") }, func(err error, v int) {
		assert.Error(t, err)
		done <- v
	})

	select {
	case v := <-done:
		assert.Zero(t, v, "failure delivers the zero value, not the partial result")
	case <-time.After(5 * time.Second):
		t.Fatal("callback was never invoked")
	}
}
