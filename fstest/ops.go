package fstest

import (
	"context"
	"testing"

	opfskit "github.com/river0g/opfs-kit"
	"github.com/river0g/opfs-kit/content"
	"github.com/river0g/opfs-kit/core"
	"github.com/river0g/opfs-kit/errors"
)

// testRead validates reading content back under each encoding.
func testRead(t *testing.T, backend core.Backend, config Config) {
	f := opfskit.New(backend)
	ctx := context.Background()

	t.Run("TextRoundTrip", func(t *testing.T) {
		if err := f.WriteFile("/read-text.txt", "hello world", "utf8").Wait(ctx); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		data, err := f.ReadFile("/read-text.txt", "utf8").Await(ctx)
		if err != nil {
			t.Fatalf("ReadFile: got error %v, want nil", err)
		}
		if got := data.Text(); got != "hello world" {
			t.Errorf("ReadFile: got %q, want %q", got, "hello world")
		}
	})

	t.Run("Base64RoundTrip", func(t *testing.T) {
		// "aGVsbG8=" decodes to "hello"
		if err := f.WriteFile("/read-b64.bin", "aGVsbG8=", "base64").Wait(ctx); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		raw, err := f.ReadFile("/read-b64.bin", "utf8").Await(ctx)
		if err != nil {
			t.Fatalf("ReadFile: got error %v, want nil", err)
		}
		if got := raw.Text(); got != "hello" {
			t.Errorf("stored bytes: got %q, want %q", got, "hello")
		}
		enc, err := f.ReadFile("/read-b64.bin", "base64").Await(ctx)
		if err != nil {
			t.Fatalf("ReadFile(base64): got error %v, want nil", err)
		}
		if got := enc.Buffer().Decode("base64"); got != "aGVsbG8=" {
			t.Errorf("base64 view: got %q, want %q", got, "aGVsbG8=")
		}
	})

	t.Run("BinaryFidelity", func(t *testing.T) {
		// A buffer with content only at an offset must survive the trip
		// byte for byte, leading zeros included.
		buf := content.New(8)
		buf.Set(5, 0xAB)
		buf.Set(7, 0xFF)
		if err := f.WriteFile("/read-raw.bin", buf).Wait(ctx); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		data, err := f.ReadFile("/read-raw.bin", "binary").Await(ctx)
		if err != nil {
			t.Fatalf("ReadFile: got error %v, want nil", err)
		}
		got := data.Bytes()
		if len(got) != 8 {
			t.Fatalf("length: got %d, want 8", len(got))
		}
		if got[0] != 0 || got[5] != 0xAB || got[7] != 0xFF {
			t.Errorf("bytes: got %v, want zeros with 0xAB at 5 and 0xFF at 7", got)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := f.ReadFile("/no-such-file.txt").Await(ctx)
		if err == nil {
			t.Fatal("ReadFile: got nil error, want not-found")
		}
		if !errors.IsCode(err, errors.CodeNotFound) {
			t.Errorf("ReadFile: got code %s, want %s", errors.GetCode(err), errors.CodeNotFound)
		}
	})
}

// testWrite validates write semantics: payload kinds, overwrite, and parent
// resolution.
func testWrite(t *testing.T, backend core.Backend, config Config) {
	f := opfskit.New(backend)
	ctx := context.Background()

	t.Run("Overwrite", func(t *testing.T) {
		if err := f.WriteFile("/write-over.txt", "first").Wait(ctx); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		if err := f.WriteFile("/write-over.txt", "second").Wait(ctx); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		data, err := f.ReadFile("/write-over.txt").Await(ctx)
		if err != nil {
			t.Fatalf("ReadFile: got error %v, want nil", err)
		}
		if got := data.Text(); got != "second" {
			t.Errorf("content after overwrite: got %q, want %q", got, "second")
		}
	})

	t.Run("ByteSlice", func(t *testing.T) {
		if err := f.WriteFile("/write-bytes.bin", []byte{1, 2, 3}).Wait(ctx); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		data, err := f.ReadFile("/write-bytes.bin", "binary").Await(ctx)
		if err != nil {
			t.Fatalf("ReadFile: got error %v, want nil", err)
		}
		got := data.Bytes()
		if len(got) != 3 || got[0] != 1 || got[2] != 3 {
			t.Errorf("bytes: got %v, want [1 2 3]", got)
		}
	})

	t.Run("IntoDirectory", func(t *testing.T) {
		if err := f.Mkdir("/write-dir/sub").Wait(ctx); err != nil {
			t.Fatalf("Mkdir: got error %v, want nil", err)
		}
		if err := f.WriteFile("/write-dir/sub/leaf.txt", "deep").Wait(ctx); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		data, err := f.ReadFile("/write-dir/sub/leaf.txt").Await(ctx)
		if err != nil {
			t.Fatalf("ReadFile: got error %v, want nil", err)
		}
		if got := data.Text(); got != "deep" {
			t.Errorf("content: got %q, want %q", got, "deep")
		}
	})

	t.Run("MissingParent", func(t *testing.T) {
		err := f.WriteFile("/no-such-dir/leaf.txt", "orphan").Wait(ctx)
		if err == nil {
			t.Fatal("WriteFile: got nil error, want failure for missing parent")
		}
	})

	t.Run("PathNormalization", func(t *testing.T) {
		if err := f.WriteFile("/write-dir/sub/norm.txt", "same").Wait(ctx); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		data, err := f.ReadFile("/write-dir//sub/./norm.txt").Await(ctx)
		if err != nil {
			t.Fatalf("ReadFile via redundant path: got error %v, want nil", err)
		}
		if got := data.Text(); got != "same" {
			t.Errorf("content: got %q, want %q", got, "same")
		}
	})
}

func testExists(t *testing.T, backend core.Backend, config Config) {
	f := opfskit.New(backend)
	ctx := context.Background()

	t.Run("AfterWrite", func(t *testing.T) {
		// The same path flips from absent to present across the write.
		exists, err := f.Exists("/exists.txt").Await(ctx)
		if err != nil {
			t.Fatalf("Exists before write: got error %v, want nil", err)
		}
		if exists {
			t.Fatal("Exists before write: got true, want false")
		}
		if err := f.WriteFile("/exists.txt", "x").Wait(ctx); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		exists, err = f.Exists("/exists.txt").Await(ctx)
		if err != nil {
			t.Fatalf("Exists after write: got error %v, want nil", err)
		}
		if !exists {
			t.Error("Exists after write: got false, want true")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		exists, err := f.Exists("/does-not-exist.txt").Await(ctx)
		if err != nil {
			t.Fatalf("Exists: got error %v, want nil", err)
		}
		if exists {
			t.Error("Exists: got true, want false")
		}
	})

	t.Run("MissingParent", func(t *testing.T) {
		exists, err := f.Exists("/ghost-dir/leaf.txt").Await(ctx)
		if err != nil {
			t.Fatalf("Exists: got error %v, want nil", err)
		}
		if exists {
			t.Error("Exists: got true, want false")
		}
	})
}

func testUnlink(t *testing.T, backend core.Backend, config Config) {
	f := opfskit.New(backend)
	ctx := context.Background()

	t.Run("RemovesFile", func(t *testing.T) {
		if err := f.WriteFile("/unlink-me.txt", "x").Wait(ctx); err != nil {
			t.Fatalf("WriteFile: got error %v, want nil", err)
		}
		if err := f.Unlink("/unlink-me.txt").Wait(ctx); err != nil {
			t.Fatalf("Unlink: got error %v, want nil", err)
		}
		exists, err := f.Exists("/unlink-me.txt").Await(ctx)
		if err != nil {
			t.Fatalf("Exists: got error %v, want nil", err)
		}
		if exists {
			t.Error("Exists after Unlink: got true, want false")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		err := f.Unlink("/never-existed.txt").Wait(ctx)
		if config.IdempotentDelete {
			if err != nil {
				t.Errorf("Unlink on missing entry: got error %v, want nil (idempotent delete)", err)
			}
			return
		}
		if err == nil {
			t.Error("Unlink on missing entry: got nil error, want failure")
		}
	})
}

func testMkdir(t *testing.T, backend core.Backend, config Config) {
	f := opfskit.New(backend)
	ctx := context.Background()

	t.Run("Nested", func(t *testing.T) {
		if err := f.Mkdir("/mk/a/b/c").Wait(ctx); err != nil {
			t.Fatalf("Mkdir: got error %v, want nil", err)
		}
		if err := f.WriteFile("/mk/a/b/c/leaf.txt", "x").Wait(ctx); err != nil {
			t.Errorf("WriteFile into created chain: got error %v, want nil", err)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		if err := f.Mkdir("/mk-again").Wait(ctx); err != nil {
			t.Fatalf("Mkdir: got error %v, want nil", err)
		}
		if err := f.Mkdir("/mk-again").Wait(ctx); err != nil {
			t.Errorf("repeat Mkdir: got error %v, want nil", err)
		}
	})
}

func testReadDir(t *testing.T, backend core.Backend, config Config) {
	f := opfskit.New(backend)
	ctx := context.Background()

	if err := f.Mkdir("/ls").Wait(ctx); err != nil {
		t.Fatalf("Mkdir: setup failed: %v", err)
	}
	for _, name := range []string{"one.txt", "two.txt", "three.txt"} {
		if err := f.WriteFile("/ls/"+name, "x").Wait(ctx); err != nil {
			t.Fatalf("WriteFile(%s): setup failed: %v", name, err)
		}
	}
	if err := f.Mkdir("/ls/subdir").Wait(ctx); err != nil {
		t.Fatalf("Mkdir(subdir): setup failed: %v", err)
	}

	names, err := f.ReadDir("/ls").Await(ctx)
	if err != nil {
		t.Fatalf("ReadDir: got error %v, want nil", err)
	}

	want := map[string]bool{"one.txt": true, "two.txt": true, "three.txt": true, "subdir": true}
	if len(names) != len(want) {
		t.Errorf("ReadDir: got %d entries %v, want %d", len(names), names, len(want))
	}
	for _, name := range names {
		if !want[name] {
			t.Errorf("ReadDir: unexpected entry %q", name)
		}
	}

	t.Run("Missing", func(t *testing.T) {
		_, err := f.ReadDir("/no-such-listing").Await(ctx)
		if err == nil {
			t.Error("ReadDir: got nil error, want not-found")
		}
	})
}
