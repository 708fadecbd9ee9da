// Package bnt provides the ACGT alphabet used throughout the extraction
// engine: base validity, complementation, and the placeholder symbol that
// terminates k-mer validity at ambiguous positions (mirrors the role of
// ga's base-encoding tables in constructdbg.go, adapted from 2-bit codes
// to raw nucleotide bytes since the core here works directly off the
// reference text).
package bnt

// Placeholder is the canonical byte used for any input symbol outside
// {A,C,G,T} (case-folded). It never participates in a valid k-mer.
const Placeholder = 'N'

var complement = [256]byte{}

func init() {
	for i := range complement {
		complement[i] = Placeholder
	}
	complement['A'] = 'T'
	complement['T'] = 'A'
	complement['C'] = 'G'
	complement['G'] = 'C'
}

// Normalize upper-cases A/C/G/T and folds everything else to Placeholder.
func Normalize(b byte) byte {
	switch b {
	case 'A', 'a':
		return 'A'
	case 'C', 'c':
		return 'C'
	case 'G', 'g':
		return 'G'
	case 'T', 't':
		return 'T'
	default:
		return Placeholder
	}
}

// Complement returns the Watson-Crick complement of a normalized base.
// The complement of the placeholder is the placeholder.
func Complement(b byte) byte {
	return complement[b]
}

// ReverseComplement returns the reverse complement of seq, matching
// ga's GetReverseCompNtByteArr but operating on normalized text and
// preserving placeholders.
func ReverseComplement(seq []byte) []byte {
	n := len(seq)
	rc := make([]byte, n)
	for i := 0; i < n; i++ {
		rc[i] = Complement(seq[n-1-i])
	}
	return rc
}

// HasPlaceholder reports whether any byte in the window is the
// placeholder symbol.
func HasPlaceholder(window []byte) bool {
	for _, b := range window {
		if b == Placeholder {
			return true
		}
	}
	return false
}
