// Package archive extracts .webslider packages (tar, optionally gzipped)
// into a staging directory.
package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for archive operations.
var (
	ErrNotFound   = errors.New("archive not found")
	ErrExtraction = errors.New("archive extraction failed")
)

// gzipMagic identifies a gzip stream (RFC 1952).
var gzipMagic = []byte{0x1f, 0x8b}

// maxEntrySize caps a single extracted file to guard against decompression bombs.
const maxEntrySize = 256 << 20 // 256MB

// Extract unpacks the archive at src into dst. The archive may be a plain
// tar or a gzipped tar; the format is sniffed from the leading bytes, not
// the file name. Any entry escaping dst aborts the extraction.
func Extract(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, src)
	}

	f, err := os.Open(src) // #nosec G304 -- archive path is user-provided by design
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br

	head, err := br.Peek(len(gzipMagic))
	if err != nil {
		return fmt.Errorf("%w: reading archive header: %v", ErrExtraction, err)
	}
	if bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		defer gz.Close()
		r = gz
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		if err := extractEntry(tr, hdr, dst); err != nil {
			return err
		}
	}
}

// extractEntry writes one tar entry under dst, rejecting paths that
// resolve outside it.
func extractEntry(tr *tar.Reader, hdr *tar.Header, dst string) error {
	target, err := securePath(dst, hdr.Name)
	if err != nil {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, 0o750); err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
	case tar.TypeReg:
		if hdr.Size > maxEntrySize {
			return fmt.Errorf("%w: entry %q is %d bytes, limit is %d", ErrExtraction, hdr.Name, hdr.Size, maxEntrySize)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640) // #nosec G304 -- target is confined by securePath
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		if _, err := io.Copy(out, io.LimitReader(tr, maxEntrySize)); err != nil {
			_ = out.Close()
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrExtraction, err)
		}
	default:
		// Symlinks, devices, etc. have no place in a slide package.
	}
	return nil
}

// securePath joins name under root and verifies the result stays inside it.
func securePath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.Clean("/"+name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: entry %q escapes staging directory", ErrExtraction, name)
	}
	return target, nil
}
