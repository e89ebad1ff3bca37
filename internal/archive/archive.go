// Package archive packages a build directory into a zip held in memory.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
)

// Options controls how a directory is packaged.
type Options struct {
	// Name is the file name reported for the archive, e.g. "my-game.zip".
	Name string
	// Level is a flate compression level. flate.NoCompression stores entries
	// without deflating them.
	Level int
	// ExcludeHidden drops dot-prefixed files and directories.
	ExcludeHidden bool
	Logger        *slog.Logger
}

// Archive is a finished zip in memory.
type Archive struct {
	name  string
	data  []byte
	files []string
	raw   int64
}

// Name returns the archive file name.
func (a *Archive) Name() string { return a.name }

// Bytes returns the zip contents.
func (a *Archive) Bytes() []byte { return a.data }

// Size returns the compressed size in bytes.
func (a *Archive) Size() int64 { return int64(len(a.data)) }

// UncompressedSize returns the total size of the packaged files.
func (a *Archive) UncompressedSize() int64 { return a.raw }

// Files returns the entry names in the order they were written.
func (a *Archive) Files() []string { return a.files }

// Reader returns a reader over the zip contents.
func (a *Archive) Reader() io.Reader { return bytes.NewReader(a.data) }

// Build walks dir and writes every regular file into a new zip. Entry names
// are relative to dir and slash separated.
func Build(ctx context.Context, dir string, opts Options) (*Archive, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	level := opts.Level
	method := zip.Deflate
	if level == flate.NoCompression {
		method = zip.Store
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	a := &Archive{name: opts.Name}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path == dir {
			return nil
		}

		if opts.ExcludeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			logger.Debug("skipping non-regular file", "path", path)
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		n, err := addFile(zw, path, name, method)
		if err != nil {
			return err
		}

		a.files = append(a.files, name)
		a.raw += n
		logger.Debug("added file", "name", name, "bytes", n)
		return nil
	})
	if err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("failed to package %s: %w", dir, err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}

	a.data = buf.Bytes()
	logger.Info("archive built", "files", len(a.files), "bytes", a.Size())
	return a, nil
}

func addFile(zw *zip.Writer, path, name string, method uint16) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, err
	}
	hdr.Name = name
	hdr.Method = method

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return 0, err
	}
	return io.Copy(w, f)
}
