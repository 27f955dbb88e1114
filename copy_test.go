package opfskit

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/river0g/opfs-kit/backend/billy"
)

func TestCopyFromFS(t *testing.T) {
	src := fstest.MapFS{
		"templates/base.txt":        {Data: []byte("base")},
		"templates/nested/deep.txt": {Data: []byte("deep")},
		"other/skip.txt":            {Data: []byte("skipped")},
	}

	dst := newMemFS(t)
	ctx := context.Background()

	require.NoError(t, CopyFromFS(ctx, src, dst, "templates"))

	data, err := dst.ReadFile("/base.txt").Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "base", data.Text())

	data, err = dst.ReadFile("/nested/deep.txt").Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "deep", data.Text())

	// Files outside srcRoot are not copied.
	exists, err := dst.Exists("/skip.txt").Await(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCopyFromFSWholeTree(t *testing.T) {
	src := fstest.MapFS{
		"a.txt":     {Data: []byte("top")},
		"dir/b.txt": {Data: []byte("inner")},
	}

	dst := New(billy.NewMemory())
	ctx := context.Background()

	require.NoError(t, CopyFromFS(ctx, src, dst, "."))

	names, err := dst.ReadDir("/").Await(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "dir"}, names)
}
