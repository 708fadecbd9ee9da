// Package graphviz renders the emitted unitig/link set as a DOT graph
// for debugging, mirroring findPath.GraphvizDBG's node/edge-attribute
// construction over github.com/awalterschulze/gographviz.
package graphviz

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"

	"cdbg/unitig"
	"cdbg/vertex"
)

// Link is one adjacency between two emitted unitigs, as written in a
// GFA L line (see LoadLinksFromGFA and LinkFromFormat).
type Link struct {
	From, To unitig.Oriented
	Overlap  int
}

// DumpUnitigGraph writes the DOT representation of nodes (one per
// distinct unitig id seen in links) and edges (one per Link) to
// graphFn, in the style of GraphvizDBG: green record-shaped nodes,
// blue labelled edges.
func DumpUnitigGraph(links []Link, graphFn string) {
	g := gographviz.NewGraph()
	g.SetName("G")
	g.SetDir(true)
	g.SetStrict(false)

	seen := map[uint64]bool{}
	addNode := func(o unitig.Oriented) {
		if seen[o.ID] {
			return
		}
		seen[o.ID] = true
		attr := map[string]string{
			"color": "Green",
			"shape": "record",
			"label": strconv.FormatUint(o.ID, 10) + o.Dir.String(),
		}
		g.AddNode("G", strconv.Quote(strconv.FormatUint(o.ID, 10)), attr)
	}

	for _, l := range links {
		addNode(l.From)
		addNode(l.To)
		attr := map[string]string{
			"color": "Blue",
			"label": fmt.Sprintf("%dM", l.Overlap),
		}
		g.AddEdge(strconv.Quote(strconv.FormatUint(l.From.ID, 10)), strconv.Quote(strconv.FormatUint(l.To.ID, 10)), true, attr)
	}

	gfp, err := os.Create(graphFn)
	if err != nil {
		log.Fatalf("[DumpUnitigGraph] create file: %s failed, err: %v\n", graphFn, err)
	}
	defer gfp.Close()
	gfp.WriteString(g.String())
}

// LinkFromFormat builds a Link from the same (from, to, k) triple
// gfa.FormatLink renders an L line from, so the debug graph and the
// GFA output always agree on overlap values.
func LinkFromFormat(from, to unitig.Oriented, k int) Link {
	return Link{From: from, To: to, Overlap: unitig.Overlap(from, to, k)}
}

// LoadLinksFromGFA re-reads a just-written GFA file's L lines and
// returns them as Links, letting the debug dump run as a cheap
// post-pass over the orchestrator's own output instead of threading a
// recording hook through the hot emission path.
func LoadLinksFromGFA(gfaPath string) ([]Link, error) {
	f, err := os.Open(gfaPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var links []Link
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) != 6 || fields[0] != "L" {
			continue
		}
		l, err := parseLinkFields(fields)
		if err != nil {
			return nil, fmt.Errorf("graphviz: malformed L line %q: %w", sc.Text(), err)
		}
		links = append(links, l)
	}
	return links, sc.Err()
}

func parseLinkFields(fields []string) (Link, error) {
	fromID, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Link{}, err
	}
	toID, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return Link{}, err
	}
	overlap, err := strconv.Atoi(strings.TrimSuffix(fields[5], "M"))
	if err != nil {
		return Link{}, err
	}
	return Link{
		From:    unitig.Oriented{ID: fromID, Dir: parseDir(fields[2]), Valid: true},
		To:      unitig.Oriented{ID: toID, Dir: parseDir(fields[4]), Valid: true},
		Overlap: overlap,
	}, nil
}

func parseDir(s string) vertex.Direction {
	if s == "-" {
		return vertex.BWD
	}
	return vertex.FWD
}
