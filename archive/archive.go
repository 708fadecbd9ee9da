// Package archive produces a compressed copy of the finished GFA
// output for long-term storage, mirroring ga's WriteBr (constructcf.go)
// use of github.com/google/brotli/go/cbrotli for archival artifacts.
package archive

import (
	"io"
	"os"

	"github.com/google/brotli/go/cbrotli"
)

// CompressGFA streams gfaPath through a brotli encoder into
// gfaPath+".br". It runs once, after the orchestrator has finished
// every sequence and the sink has been closed, and never touches the
// mutex-guarded sink itself.
func CompressGFA(gfaPath string) error {
	in, err := os.Open(gfaPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(gfaPath + ".br")
	if err != nil {
		return err
	}
	defer out.Close()

	brw := cbrotli.NewWriter(out, cbrotli.WriterOptions{Quality: 1, LGWin: 21})
	defer brw.Close()

	if _, err := io.Copy(brw, in); err != nil {
		return err
	}
	return brw.Flush()
}
