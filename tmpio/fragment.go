// Package tmpio implements the per-thread path/overlap fragment
// streams (§4.7, §6): small append-only text streams, recreated per
// sequence, concatenated by the stitcher, and deleted afterwards.
//
// Fragments are typically tiny (one comma-prefixed token per unitig a
// thread touches), so a FragmentWriter keeps them in memory until they
// cross a size threshold, at which point it spills to a zstd-compressed
// file, mirroring ga's WriteZstd (constructcf.go) use of
// klauspost/compress/zstd to bound the footprint of per-worker
// intermediate state without paying compression overhead on the common,
// small case.
package tmpio

import (
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// DefaultSpillThreshold is the in-memory size, in bytes, above which a
// FragmentWriter spills to a compressed file instead of growing its
// buffer further.
const DefaultSpillThreshold = 64 << 10

// FragmentWriter accumulates comma-prefixed fragments for one thread's
// path or overlap stream.
type FragmentWriter struct {
	path      string
	threshold int
	buf       bytes.Buffer
	file      *os.File
	zw        *zstd.Encoder
	spilled   bool
}

// Create returns a fresh, empty fragment stream for path (the stream
// is recreated per sequence, per §4.8). No file is created until the
// buffered fragments exceed threshold; the spill then truncates any
// previous contents at path.
func Create(path string, threshold int) *FragmentWriter {
	if threshold <= 0 {
		threshold = DefaultSpillThreshold
	}
	return &FragmentWriter{path: path, threshold: threshold}
}

// WriteString appends a fragment (e.g. ",123+" or ",20M").
func (fw *FragmentWriter) WriteString(s string) error {
	if fw.spilled {
		_, err := fw.zw.Write([]byte(s))
		return err
	}
	fw.buf.WriteString(s)
	if fw.buf.Len() > fw.threshold {
		return fw.spill()
	}
	return nil
}

func (fw *FragmentWriter) spill() error {
	f, err := os.Create(fw.path)
	if err != nil {
		return err
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return err
	}
	if _, err := zw.Write(fw.buf.Bytes()); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	fw.buf.Reset()
	fw.file, fw.zw, fw.spilled = f, zw, true
	return nil
}

// Empty reports whether any fragment has been written.
func (fw *FragmentWriter) Empty() bool {
	return !fw.spilled && fw.buf.Len() == 0
}

// Close finalizes the stream. A FragmentWriter that never spilled to
// disk needs no Close beyond this (there is nothing open), but it is
// always safe to call.
func (fw *FragmentWriter) Close() error {
	if !fw.spilled {
		return nil
	}
	if err := fw.zw.Close(); err != nil {
		fw.file.Close()
		return err
	}
	return fw.file.Close()
}

// CopyInto writes the fragment stream's full contents to dst, in the
// order they were appended. Call after Close.
func (fw *FragmentWriter) CopyInto(dst io.Writer) error {
	if !fw.spilled {
		_, err := dst.Write(fw.buf.Bytes())
		return err
	}
	f, err := os.Open(fw.path)
	if err != nil {
		return err
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer zr.Close()
	_, err = io.Copy(dst, zr)
	return err
}

// Remove deletes the backing file, if one was created. Failure to
// delete is reported by the caller but is not treated as fatal (§9(c)).
func (fw *FragmentWriter) Remove() error {
	if !fw.spilled {
		return nil
	}
	return os.Remove(fw.path)
}
