package input

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSequencesNormalizesAndSplitsRecords(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "ref.fa")
	content := ">seq1 description\nACGTacgtNn\n>seq2\nACGTRYKM\n"
	if err := os.WriteFile(fn, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	seqs, err := Sequences(fn)
	if err != nil {
		t.Fatalf("Sequences: %v", err)
	}
	if len(seqs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(seqs))
	}
	if seqs[0].Name != "seq1" {
		t.Fatalf("seq1 name = %q", seqs[0].Name)
	}
	if string(seqs[0].Seq) != "ACGTACGTNN" {
		t.Fatalf("seq1 bases = %q", string(seqs[0].Seq))
	}
	if string(seqs[1].Seq) != "ACGTNNNN" {
		t.Fatalf("seq2 bases = %q", string(seqs[1].Seq))
	}
}
