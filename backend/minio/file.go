package minio

import (
	"bytes"
	"context"
	"io"
	"io/fs"

	"github.com/minio/minio-go/v7"

	"github.com/river0g/opfs-kit/core"
)

// fileHandle addresses a single object.
type fileHandle struct {
	backend *Backend
	key     string
	name    string
}

func (f *fileHandle) Name() string { return f.name }

// Read downloads the object's full content. The size is taken from a stat
// call first so the whole object can be read into a single allocation.
func (f *fileHandle) Read() ([]byte, error) {
	ctx := context.Background()

	info, err := f.backend.client.StatObject(ctx, f.backend.bucket, f.key, minio.StatObjectOptions{})
	if err != nil {
		return nil, pathError("read", f.name, translate(err))
	}

	obj, err := f.backend.client.GetObject(ctx, f.backend.bucket, f.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, pathError("read", f.name, translate(err))
	}
	defer func() { _ = obj.Close() }()

	data := make([]byte, info.Size)
	if _, err := io.ReadFull(obj, data); err != nil {
		return nil, pathError("read", f.name, translate(err))
	}
	return data, nil
}

func (f *fileHandle) ReadText() (string, error) {
	data, err := f.Read()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Writable opens a replace-on-close write session. Small payloads are
// buffered and uploaded in one PutObject on Close; once the buffered size
// exceeds the backend's multipart threshold the session switches to a
// pipe feeding a background streaming upload.
func (f *fileHandle) Writable() (core.WritableStream, error) {
	return &writeStream{
		backend: f.backend,
		key:     f.key,
		name:    f.name,
		buffer:  new(bytes.Buffer),
	}, nil
}

type writeStream struct {
	backend *Backend
	key     string
	name    string

	buffer *bytes.Buffer  // accumulates writes until the threshold
	pipeW  *io.PipeWriter // non-nil once streaming
	putRes chan error     // result of the background PutObject
	closed bool
}

// transitionToStreaming starts the background upload, flushes the buffer
// into the pipe, and writes p.
func (w *writeStream) transitionToStreaming(p []byte) (int, error) {
	pr, pw := io.Pipe()
	w.pipeW = pw
	w.putRes = make(chan error, 1)

	go func() {
		_, err := w.backend.client.PutObject(
			context.Background(),
			w.backend.bucket,
			w.key,
			pr,
			-1,
			minio.PutObjectOptions{ContentType: "application/octet-stream"},
		)
		_ = pr.Close()
		w.putRes <- translate(err)
		close(w.putRes)
	}()

	if w.buffer.Len() > 0 {
		if _, err := w.pipeW.Write(w.buffer.Bytes()); err != nil {
			return 0, pathError("write", w.name, err)
		}
	}
	w.buffer = nil

	n, err := w.pipeW.Write(p)
	if err != nil {
		return n, pathError("write", w.name, err)
	}
	return n, nil
}

func (w *writeStream) Write(p []byte) (int, error) {
	if w.closed {
		return 0, pathError("write", w.name, fs.ErrClosed)
	}

	if w.pipeW != nil {
		n, err := w.pipeW.Write(p)
		if err != nil {
			return n, pathError("write", w.name, err)
		}
		return n, nil
	}

	if int64(w.buffer.Len()+len(p)) <= w.backend.multipartThreshold {
		return w.buffer.Write(p)
	}

	return w.transitionToStreaming(p)
}

// Close finalizes the upload. The write is durable only once Close returns
// nil. Close is idempotent.
func (w *writeStream) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.pipeW != nil {
		_ = w.pipeW.Close()
		if err := <-w.putRes; err != nil {
			return pathError("close", w.name, err)
		}
		return nil
	}

	_, err := w.backend.client.PutObject(
		context.Background(),
		w.backend.bucket,
		w.key,
		bytes.NewReader(w.buffer.Bytes()),
		int64(w.buffer.Len()),
		minio.PutObjectOptions{ContentType: "application/octet-stream"},
	)
	if err != nil {
		return pathError("close", w.name, translate(err))
	}
	return nil
}

var (
	_ core.FileHandle     = (*fileHandle)(nil)
	_ core.WritableStream = (*writeStream)(nil)
)
