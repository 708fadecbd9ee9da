package gfa

import "bytes"

// FlushThreshold is the number of buffered records after which a
// Buffer flushes to its sink. The reference implementation uses a
// batch size of one (every record flushes immediately); §4.6 allows
// any small integer, so the value is kept as a variable rather than a
// constant to let callers tune it for throughput without touching the
// buffering logic itself.
var FlushThreshold = 1

// Buffer is a thread-local accumulator for S and L lines, flushed to a
// shared Sink every FlushThreshold records.
type Buffer struct {
	sink    *Sink
	buf     bytes.Buffer
	pending int
}

// NewBuffer creates a Buffer that flushes into sink.
func NewBuffer(sink *Sink) *Buffer {
	return &Buffer{sink: sink}
}

// WriteLine appends one already-terminated GFA line (S or L) and
// flushes automatically once FlushThreshold records have accumulated.
func (b *Buffer) WriteLine(line string) error {
	b.buf.WriteString(line)
	b.pending++
	if b.pending >= FlushThreshold {
		return b.Flush()
	}
	return nil
}

// Flush writes any buffered content to the sink as a single atomic
// chunk and resets the buffer.
func (b *Buffer) Flush() error {
	if b.buf.Len() == 0 {
		return nil
	}
	if err := b.sink.Write(b.buf.Bytes()); err != nil {
		return err
	}
	b.buf.Reset()
	b.pending = 0
	return nil
}
