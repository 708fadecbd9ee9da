// Package config assembles the run configuration from CLI flags and an
// optional `.cfg` file, mirroring ga's CheckGlobalArgs (utils.go) +
// ParseCfg (constructcf.go) split: flags carry the run-critical
// knobs, and the `.cfg` file carries fragment-prefix overrides a user
// would otherwise retype on every invocation, replacing the defaults
// derived from the -p flag (no flag sets those prefixes directly).
package config

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jwaldrip/odin/cli"
)

// DefaultPathPrefix/DefaultOverlapPrefix, appended to the -p output
// prefix, name the per-thread fragment streams when a `.cfg` file
// doesn't override them.
const (
	DefaultPathPrefix    = "path."
	DefaultOverlapPrefix = "overlap."
)

// Config is the fully resolved set of knobs the orchestrator needs:
// k-mer length, thread count, the input/output paths, and the
// temp-fragment prefixes.
type Config struct {
	K           int
	ThreadCount int
	InputFASTA  string
	OutputGFA   string
	Prefix      string
	PathPrefix  string
	OverlapFrag string
	Graphviz    bool
	Archive     bool
	Cpuprofile  string
}

// fileSettings holds the subset of Config a `.cfg` file may override,
// read from lines of the form "key = value" under a
// "[global_setting]" header, in the style of ga's ParseCfg.
type fileSettings struct {
	pathPrefix  string
	overlapFrag string
}

// FromCommand resolves a Config from the CLI flags bound in cmd/cdbg,
// then applies any `.cfg` file named by "-C": its path_prefix and
// overlap_prefix replace the defaults derived from "-p". It follows
// CheckGlobalArgs's "fatal on missing required flag" style.
func FromCommand(c cli.Command) Config {
	prefix := c.Flag("p").String()
	if prefix == "" {
		log.Fatalf("[config] required flag 'p' (output prefix) not set\n")
	}
	input := c.Flag("i").String()
	if input == "" {
		log.Fatalf("[config] required flag 'i' (input FASTA) not set\n")
	}

	k, ok := c.Flag("K").Get().(int)
	if !ok || k < 3 || k%2 == 0 {
		log.Fatalf("[config] flag 'K' must be set to an odd integer >= 3, got %v\n", c.Flag("K").String())
	}
	threads, ok := c.Flag("t").Get().(int)
	if !ok || threads < 1 {
		log.Fatalf("[config] flag 't' must be set to a positive integer, got %v\n", c.Flag("t").String())
	}

	cfg := Config{
		K:           k,
		ThreadCount: threads,
		InputFASTA:  input,
		OutputGFA:   prefix + ".gfa",
		Prefix:      prefix,
		PathPrefix:  prefix + "." + DefaultPathPrefix,
		OverlapFrag: prefix + "." + DefaultOverlapPrefix,
		Graphviz:    c.Flag("Graph").Get() == true,
		Archive:     c.Flag("Archive").Get() == true,
		Cpuprofile:  c.Flag("cpuprofile").String(),
	}

	if cfgFn := c.Flag("C").String(); cfgFn != "" {
		fs, err := parseCfgFile(cfgFn)
		if err != nil {
			log.Fatalf("[config] ParseCfg '%s': %v\n", cfgFn, err)
		}
		if fs.pathPrefix != "" {
			cfg.PathPrefix = fs.pathPrefix
		}
		if fs.overlapFrag != "" {
			cfg.OverlapFrag = fs.overlapFrag
		}
	}

	return cfg
}

// parseCfgFile reads a ga-style `.cfg` file, tolerant of blank lines
// and a "[global_setting]" section header, and fills in whichever of
// the fragment-prefix overrides it finds.
func parseCfgFile(fn string) (fileSettings, error) {
	var fs fileSettings
	f, err := os.Open(fn)
	if err != nil {
		return fs, err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	eof := false
	for !eof {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			eof = true
		} else if err != nil {
			return fs, err
		}
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[1] != "=" {
			continue
		}
		switch fields[0] {
		case "path_prefix":
			fs.pathPrefix = fields[2]
		case "overlap_prefix":
			fs.overlapFrag = fields[2]
		}
	}
	return fs, nil
}

// ValidateKmer is a standalone sanity check exposed for callers (and
// tests) that build a Config without going through FromCommand.
func ValidateKmer(k int) error {
	if k < 3 || k%2 == 0 {
		return fmt.Errorf("k-mer length must be an odd integer >= 3, got %d", k)
	}
	return nil
}
