package opfskit

import (
	"context"
	"io/fs"
	"path"
	"strings"
)

// CopyFromFS copies every file under srcRoot in a read-only filesystem
// (typically an embed.FS) into dst, preserving the directory structure.
// Use "." as srcRoot to copy the entire source filesystem.
//
// Parent directories are created before each file is written; directory
// entries themselves are otherwise skipped. This is the usual way to seed
// a fresh backend with embedded templates or fixtures:
//
//	//go:embed templates/*
//	var templatesFS embed.FS
//
//	fsys := opfskit.New(billy.NewMemory())
//	err := opfskit.CopyFromFS(ctx, templatesFS, fsys, "templates")
func CopyFromFS(ctx context.Context, src fs.FS, dst *FS, srcRoot string) error {
	return fs.WalkDir(src, srcRoot, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(src, filePath)
		if err != nil {
			return err
		}

		dstPath := filePath
		if srcRoot != "." && srcRoot != "" {
			dstPath = strings.TrimPrefix(filePath, srcRoot)
			dstPath = strings.TrimPrefix(dstPath, "/")
		}

		if dir := path.Dir(dstPath); dir != "." && dir != "" {
			if err := dst.Mkdir(dir).Wait(ctx); err != nil {
				return err
			}
		}

		return dst.WriteFile(dstPath, data).Wait(ctx)
	})
}
