package fstest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	opfskit "github.com/river0g/opfs-kit"
	"github.com/river0g/opfs-kit/core"
	"github.com/river0g/opfs-kit/errors"
)

const callbackTimeout = 30 * time.Second

// testDispatch validates that the callback and deferred calling conventions
// deliver the same outcomes, and that the synchronous variants stay
// unsupported.
func testDispatch(t *testing.T, backend core.Backend, config Config) {
	f := opfskit.New(backend)
	ctx := context.Background()

	t.Run("WriteCallback", func(t *testing.T) {
		done := make(chan error, 1)
		d := f.WriteFile("/cb-write.txt", "via callback", opfskit.DoneCallback(func(err error) {
			done <- err
		}))
		if d != nil {
			t.Error("callback call: got a deferred, want nil")
		}
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("callback: got error %v, want nil", err)
			}
		case <-time.After(callbackTimeout):
			t.Fatal("callback was never invoked")
		}
	})

	t.Run("ReadCallbackMatchesDeferred", func(t *testing.T) {
		if err := f.WriteFile("/cb-read.txt", "same either way").Wait(ctx); err != nil {
			t.Fatalf("WriteFile: setup failed: %v", err)
		}

		viaDeferred, err := f.ReadFile("/cb-read.txt").Await(ctx)
		if err != nil {
			t.Fatalf("deferred read: got error %v, want nil", err)
		}

		got := make(chan string, 1)
		f.ReadFile("/cb-read.txt", opfskit.ReadCallback(func(err error, data opfskit.FileData) {
			if err != nil {
				t.Errorf("callback read: got error %v, want nil", err)
			}
			got <- data.Text()
		}))
		select {
		case viaCallback := <-got:
			if viaCallback != viaDeferred.Text() {
				t.Errorf("callback read: got %q, deferred read got %q", viaCallback, viaDeferred.Text())
			}
		case <-time.After(callbackTimeout):
			t.Fatal("callback was never invoked")
		}
	})

	t.Run("ReadCallbackFailureValue", func(t *testing.T) {
		type outcome struct {
			err  error
			text string
		}
		got := make(chan outcome, 1)
		f.ReadFile("/cb-missing.txt", opfskit.ReadCallback(func(err error, data opfskit.FileData) {
			got <- outcome{err: err, text: data.Text()}
		}))
		select {
		case o := <-got:
			if o.err == nil {
				t.Fatal("callback: got nil error, want not-found")
			}
			if o.text != "" {
				t.Errorf("fallback value: got %q, want empty string", o.text)
			}
		case <-time.After(callbackTimeout):
			t.Fatal("callback was never invoked")
		}
	})

	t.Run("ExistsCallback", func(t *testing.T) {
		got := make(chan bool, 1)
		f.Exists("/cb-read.txt", opfskit.ExistsCallback(func(err error, exists bool) {
			if err != nil {
				t.Errorf("Exists callback: got error %v, want nil", err)
			}
			got <- exists
		}))
		select {
		case exists := <-got:
			if !exists {
				t.Error("Exists callback: got false, want true")
			}
		case <-time.After(callbackTimeout):
			t.Fatal("callback was never invoked")
		}
	})

	t.Run("SyncVariantsUnsupported", func(t *testing.T) {
		if _, err := f.ReadFileSync("/cb-read.txt"); !errors.IsCode(err, errors.CodeUnsupported) {
			t.Errorf("ReadFileSync: got %v, want %s", err, errors.CodeUnsupported)
		}
		if err := f.WriteFileSync("/cb-read.txt", "x"); !errors.IsCode(err, errors.CodeUnsupported) {
			t.Errorf("WriteFileSync: got %v, want %s", err, errors.CodeUnsupported)
		}
		if _, err := f.ExistsSync("/cb-read.txt"); !errors.IsCode(err, errors.CodeUnsupported) {
			t.Errorf("ExistsSync: got %v, want %s", err, errors.CodeUnsupported)
		}
	})
}

// testConcurrency validates that independent writes to distinct paths are
// safe to issue concurrently, and that same-path racing writes settle on
// one of the competing bodies.
func testConcurrency(t *testing.T, backend core.Backend, config Config) {
	f := opfskit.New(backend)
	ctx := context.Background()

	t.Run("IndependentWrites", func(t *testing.T) {
		const writers = 10

		var g errgroup.Group
		for i := 0; i < writers; i++ {
			g.Go(func() error {
				path := fmt.Sprintf("/c-%d.txt", i)
				body := fmt.Sprintf("Content for file %d", i)
				return f.WriteFile(path, body).Wait(ctx)
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatalf("concurrent writes: got error %v, want nil", err)
		}

		for i := 0; i < writers; i++ {
			path := fmt.Sprintf("/c-%d.txt", i)
			data, err := f.ReadFile(path).Await(ctx)
			if err != nil {
				t.Errorf("ReadFile(%s): got error %v, want nil", path, err)
				continue
			}
			if want := fmt.Sprintf("Content for file %d", i); data.Text() != want {
				t.Errorf("ReadFile(%s): got %q, want %q", path, data.Text(), want)
			}
		}
	})

	t.Run("SamePathRace", func(t *testing.T) {
		// Racing writes to one path are not serialized by this layer:
		// whichever stream close lands last wins. Both writes must
		// succeed, and the final content must be exactly one of the two
		// bodies, never an interleaving.
		const bodyA = "body written by writer A"
		const bodyB = "body written by writer B"

		var g errgroup.Group
		g.Go(func() error { return f.WriteFile("/race.txt", bodyA).Wait(ctx) })
		g.Go(func() error { return f.WriteFile("/race.txt", bodyB).Wait(ctx) })
		if err := g.Wait(); err != nil {
			t.Fatalf("racing writes: got error %v, want nil", err)
		}

		data, err := f.ReadFile("/race.txt").Await(ctx)
		if err != nil {
			t.Fatalf("ReadFile: got error %v, want nil", err)
		}
		if got := data.Text(); got != bodyA && got != bodyB {
			t.Errorf("final content: got %q, want %q or %q", got, bodyA, bodyB)
		}
	})
}
