// internal/inputs/open.go
package inputs

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Stdin is read for the path "-". Tests swap it.
var Stdin io.Reader = os.Stdin

// Open returns a reader over path, or stdin for "-". gzip, zstd and lz4
// frames are detected by magic number (or file suffix) and decompressed.
func Open(path string) (io.ReadCloser, error) {
	var (
		src    io.Reader
		closer io.Closer
	)
	if path == "-" {
		src, closer = Stdin, io.NopCloser(nil)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		src, closer = fh, fh
	}
	rc, err := decompress(bufio.NewReaderSize(src, 64<<10), path, closer)
	if err != nil {
		_ = closer.Close()
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return rc, nil
}

func decompress(br *bufio.Reader, path string, under io.Closer) (io.ReadCloser, error) {
	sig, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(sig, magicGzip) || strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, under}}, nil
	case bytes.HasPrefix(sig, magicZstd) || strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: zr, closers: []io.Closer{
			closerFunc(func() error { zr.Close(); return nil }), under,
		}}, nil
	case bytes.HasPrefix(sig, magicLZ4) || strings.HasSuffix(path, ".lz4"):
		return &multiReadCloser{Reader: lz4.NewReader(br), closers: []io.Closer{under}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{under}}, nil
}

// ReadAll opens path and reads it fully.
func ReadAll(path string) ([]byte, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return b, nil
}
