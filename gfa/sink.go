// Package gfa implements GFA text emission: the thread-local output
// buffer and the shared append-only sink (C6), and the stitcher that
// joins per-thread unitig boundaries and assembles the path line (C7).
// Grounded on the reference CdBG_GFA_Writer's buffering and stitching
// (output_buffer, write_inter_thread_links, write_gfa_path), adapted
// from a single-process C++ logger to a mutex-guarded Go sink.
package gfa

import (
	"os"
	"sync"
)

// Header is the GFA header line written once at file start.
const Header = "H\tVN:Z:1.0\n"

// Sink is the single append-only output file; writes from multiple
// threads are serialized by mu so each buffered chunk appears
// atomically, with no ordering guarantee across threads (§4.6, §5).
type Sink struct {
	mu sync.Mutex
	f  *os.File
}

// Create opens path for writing, truncating any previous contents, and
// writes the GFA header.
func Create(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := f.WriteString(Header); err != nil {
		f.Close()
		return nil, err
	}
	return &Sink{f: f}, nil
}

// Write appends data to the sink under the sink's mutex, guaranteeing
// the chunk is never torn by a concurrent writer.
func (s *Sink) Write(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.f.Write(data)
	return err
}

// Close closes the underlying file.
func (s *Sink) Close() error {
	return s.f.Close()
}
