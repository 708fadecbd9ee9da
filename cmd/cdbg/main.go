// Command cdbg extracts the maximal unitigs of a compacted de Bruijn
// graph from a FASTA reference and emits them as GFA, mirroring ga's
// subcommand-per-pipeline-stage CLI (ga.go) built on
// github.com/jwaldrip/odin/cli.
package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/jwaldrip/odin/cli"

	"cdbg/archive"
	"cdbg/config"
	"cdbg/extract"
	"cdbg/gfa"
	"cdbg/graphviz"
	"cdbg/input"
	"cdbg/kmer"
	"cdbg/vertex"
)

const Kmerdef = 31

var app = cli.New("1.0.0", "Maximal unitig extractor for a compacted de Bruijn graph", func(c cli.Command) {})

func init() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6091", nil))
	}()
	app.DefineStringFlag("C", "", "optional .cfg file overriding path/overlap fragment prefixes")
	app.DefineStringFlag("cpuprofile", "", "write cpu profile to file")
	app.DefineIntFlag("K", Kmerdef, "kmer length (odd)")
	app.DefineStringFlag("i", "", "input FASTA reference")
	app.DefineStringFlag("p", "", "prefix of the output file")
	app.DefineIntFlag("t", 1, "number of threads used")
	app.DefineBoolFlag("Graph", false, "also write a debug DOT graph of the unitig/link set")
	app.DefineBoolFlag("Archive", false, "also write a brotli-compressed copy of the GFA output")

	extractCmd := app.DefineSubCommand("extract", "extract maximal unitigs and write GFA", Extract)
	_ = extractCmd
}

func main() {
	app.Start()
}

// Extract is the "extract" subcommand's entry point: it resolves the
// run configuration, builds the vertex table from the input
// reference's own k-mer set (standing in for an externally supplied
// MPHF-backed table), then drives the per-sequence orchestrator and
// the optional debug/archival outputs.
func Extract(c cli.Command) {
	cfg := config.FromCommand(c.Parent())

	if cfg.Cpuprofile != "" {
		fp, err := os.Create(cfg.Cpuprofile)
		if err != nil {
			log.Fatalf("[Extract] open cpuprofile file: %v failed\n", cfg.Cpuprofile)
		}
		pprof.StartCPUProfile(fp)
		defer pprof.StopCPUProfile()
	}

	runtime.GOMAXPROCS(cfg.ThreadCount)

	t0 := time.Now()
	seqs, err := input.Sequences(cfg.InputFASTA)
	if err != nil {
		log.Fatalf("[Extract] read input FASTA %s: %v\n", cfg.InputFASTA, err)
	}
	log.Printf("[Extract] read %d sequences from %s in %v\n", len(seqs), cfg.InputFASTA, time.Since(t0))

	table := buildReferenceTable(seqs, cfg.K)

	sink, err := gfa.Create(cfg.OutputGFA)
	if err != nil {
		log.Fatalf("[Extract] create GFA output %s: %v\n", cfg.OutputGFA, err)
	}

	job := extract.Job{
		K:           cfg.K,
		ThreadCount: cfg.ThreadCount,
		Table:       table,
		Sink:        sink,
		PathPrefix:  cfg.PathPrefix,
		OverlapFrag: cfg.OverlapFrag,
	}

	t0 = time.Now()
	if err := extract.Run(seqs, job); err != nil {
		log.Fatalf("[Extract] run: %v\n", err)
	}
	if err := sink.Close(); err != nil {
		log.Fatalf("[Extract] close GFA output: %v\n", err)
	}
	log.Printf("[Extract] wrote %s in %v\n", cfg.OutputGFA, time.Since(t0))

	if cfg.Archive {
		if err := archive.CompressGFA(cfg.OutputGFA); err != nil {
			log.Printf("[Extract] archive %s: %v\n", cfg.OutputGFA, err)
		}
	}

	if cfg.Graphviz {
		links, err := graphviz.LoadLinksFromGFA(cfg.OutputGFA)
		if err != nil {
			log.Fatalf("[Extract] load links for debug graph: %v\n", err)
		}
		graphviz.DumpUnitigGraph(links, cfg.Prefix+".dot")
	}
}

// buildReferenceTable constructs the in-process OpenAddressedTable
// reference implementation of the vertex table (§4.4) from every
// distinct canonical k-mer in the input, all classified Internal: a
// real deployment would load a pre-built MPHF-backed table with
// upstream-assigned classes instead (see vertex.Table's doc comment).
func buildReferenceTable(seqs []extract.Sequence, k int) *vertex.TableImpl {
	seen := map[string]bool{}
	var entries []vertex.VertexEntry
	for _, s := range seqs {
		for idx := 0; idx+k <= len(s.Seq); idx++ {
			window := s.Seq[idx : idx+k]
			if hasPlaceholderWindow(window) {
				continue
			}
			c := string(kmer.New(s.Seq, idx, k).Canonical())
			if seen[c] {
				continue
			}
			seen[c] = true
			entries = append(entries, vertex.VertexEntry{Canonical: []byte(c), Class: vertex.Internal})
		}
	}
	return vertex.NewOpenAddressedTable(entries)
}

func hasPlaceholderWindow(w []byte) bool {
	for _, b := range w {
		if b == 'N' {
			return true
		}
	}
	return false
}

