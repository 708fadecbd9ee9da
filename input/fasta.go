// Package input adapts a FASTA reference into the (name, sequence)
// pairs the orchestrator consumes (§4.9), normalizing every byte
// outside {A,C,G,T,a,c,g,t} to the placeholder the rest of the engine
// already understands. FASTA parsing itself is delegated to
// github.com/biogo/biogo's seqio/fasta reader rather than hand-rolled,
// the same way ga leans on github.com/biogo/hts for its own sequence
// file format (bam.go) instead of parsing BAM by hand.
package input

import (
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"cdbg/bnt"
	"cdbg/extract"
)

// Sequences reads every record from the FASTA file at path and returns
// it as a slice of extract.Sequence, already normalized to the engine's
// ACGT+placeholder alphabet. The whole file is read into memory, in
// keeping with the engine's single-pass, memory-resident design (§6).
func Sequences(path string) ([]extract.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	template := linear.NewSeq("", nil, alphabet.DNA)
	reader := fasta.NewReader(f, template)

	var out []extract.Sequence
	for {
		s, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lin, ok := s.(*linear.Seq)
		if !ok {
			continue
		}
		bases := make([]byte, lin.Len())
		for i, l := range lin.Seq {
			bases[i] = bnt.Normalize(byte(l))
		}
		out = append(out, extract.Sequence{Name: lin.Name(), Seq: bases})
	}
	return out, nil
}
