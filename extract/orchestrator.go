package extract

import (
	"fmt"
	"sync"

	"cdbg/gfa"
	"cdbg/tmpio"
	"cdbg/utils"
	"cdbg/vertex"
)

// Sequence is one FASTA-equivalent record handed to the orchestrator:
// a name (used only for diagnostics) and its nucleotide bytes, already
// normalized to upper-case ACGT with non-ACGT folded to the
// placeholder (§4.9).
type Sequence struct {
	Name string
	Seq  []byte
}

// Job bundles the fixed, per-run configuration the orchestrator needs
// to extract every sequence in a run: k-mer length, thread count, the
// shared vertex table, the output sink, and the path/overlap
// fragment-file prefixes threads write under.
type Job struct {
	K           int
	ThreadCount int
	Table       vertex.Table
	Sink        *gfa.Sink
	PathPrefix  string
	OverlapFrag string
}

// Run extracts every sequence in seqs against job, writing S, L and P
// records to job.Sink as they become available. It implements C8: for
// each sequence it resets per-thread state, reopens the fragment
// streams, partitions [0, seq_len-k] into per-thread slices, spawns
// ThreadCount workers, joins them, and invokes the stitcher — mirroring
// the per-sequence reset/partition/spawn/join/stitch cycle of §4.8,
// adapted from the channel/worker-pool fan-out in ga's
// paraLookupComplexNode (constructdbg.go) into a goroutine-per-thread
// form with sync.WaitGroup, since each sequence spawns and joins a
// small, fixed worker set rather than draining an open channel.
func Run(seqs []Sequence, job Job) error {
	// A misconfigured run (ThreadCount <= 0) still spawns one worker
	// rather than a zero-length states slice, mirroring the
	// clamp-to-at-least-one pattern ga's utils.MaxInt enables elsewhere.
	job.ThreadCount = utils.MaxInt(job.ThreadCount, 1)

	// Fragment streams are created fresh per sequence (§4.8), so the
	// initial allocation here only needs a Buffer per thread; the first
	// call to runSequence opens each thread's path/overlap streams.
	states := make([]*gfa.ThreadState, job.ThreadCount)
	for t := range states {
		states[t] = gfa.NewThreadState(t, job.Sink, fmt.Sprintf("%s%d", job.PathPrefix, t), fmt.Sprintf("%s%d", job.OverlapFrag, t), 0)
	}

	for seqIndex, s := range seqs {
		if len(s.Seq) < job.K {
			// §4.8: too short to contain even one k-mer; no output.
			continue
		}
		if err := runSequence(s.Seq, seqIndex, job, states); err != nil {
			return err
		}
	}
	return nil
}

// runSequence implements one pass of §4.8's reset/partition/spawn/join/
// stitch cycle for a single sequence.
func runSequence(seq []byte, seqIndex int, job Job, states []*gfa.ThreadState) error {
	for t, st := range states {
		st.Reset()
		st.Path = tmpio.Create(fmt.Sprintf("%s%d", job.PathPrefix, t), 0)
		st.Overlap = tmpio.Create(fmt.Sprintf("%s%d", job.OverlapFrag, t), 0)
	}

	rightEnd := len(seq) - job.K
	taskSize := (rightEnd + 1) / job.ThreadCount

	if taskSize == 0 {
		// §4.8: too few valid k-mer starts to give every thread at
		// least one; fall back to a single thread covering the whole
		// sequence.
		if err := ExtractSlice(seq, job.K, 0, rightEnd, job.Table, states[0]); err != nil {
			return err
		}
		return gfa.Stitch(states, job.Sink, seqIndex+1, job.K)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(states))
	for t, st := range states {
		left := t * taskSize
		right := left + taskSize - 1
		if t == len(states)-1 {
			right = rightEnd
		}
		wg.Add(1)
		go func(t int, st *gfa.ThreadState, left, right int) {
			defer wg.Done()
			errs[t] = ExtractSlice(seq, job.K, left, right, job.Table, st)
		}(t, st, left, right)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return gfa.Stitch(states, job.Sink, seqIndex+1, job.K)
}
