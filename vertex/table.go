package vertex

import (
	"sync/atomic"

	"github.com/cespare/xxhash"

	"cdbg/utils"
)

// Table is the vertex table API (C4): a random-access, MPHF-backed
// mapping from canonical k-mer to bucket id, plus atomic access to the
// per-bucket State. Implementations are read-mostly: the only mutation
// the core ever performs is the outputted-flag CAS in CompareAndSet.
//
// Bucket-id assignment and State.Class population are treated as
// externally produced (the MPHF construction and the automaton-state
// computation are out of scope for this module); OpenAddressedTable
// below is a concrete, fully in-process reference implementation used
// for testing and for small inputs, standing in for a real MPHF-backed
// table in production.
type Table interface {
	BucketID(canonical []byte) uint64
	Read(bucket uint64) State
	CompareAndSet(bucket uint64, old, new State) bool
}

// OpenAddressedTable is a linear-probing hash table keyed by the
// xxhash of the canonical k-mer text, mirroring the bucket/fingerprint
// design of ga's CuckooFilter (cuckoofilter.go: IndexHash, AltIndex)
// but used here for exact bucket-id lookup rather than approximate
// membership. It is built once, up front, from the full known vertex
// set, then read and CAS'd concurrently without further locking.
type OpenAddressedTable struct {
	slots []slot
	mask  uint64
	count int
}

type slot struct {
	used bool
	key  []byte
	id   uint32
}

// states holds one atomic word per vertex, indexed by bucket id
// (dense, [0, n)); kept separate from the probing slots so CAS never
// contends with probe-chain reads.
type statesTable struct {
	words []atomic.Uint32
}

// NewOpenAddressedTable builds a table over the given canonical k-mers,
// each with its upstream-assigned class. Bucket ids are assigned in
// the order the k-mers are supplied, so callers that need determinism
// across runs (e.g. tests asserting exact ids) should pass them in a
// fixed order.
func NewOpenAddressedTable(vertices []VertexEntry) *TableImpl {
	n := len(vertices)
	capacity := nextPow2(uint64(n)*2 + 1)
	t := &TableImpl{
		probe: OpenAddressedTable{
			slots: make([]slot, capacity),
			mask:  capacity - 1,
		},
		states: statesTable{words: make([]atomic.Uint32, n)},
	}
	for id, v := range vertices {
		t.probe.insert(v.Canonical, uint32(id))
		t.states.words[id].Store(uint32(NewState(v.Class)))
	}
	return t
}

// VertexEntry is one row of the externally-supplied vertex set used to
// build a reference OpenAddressedTable.
type VertexEntry struct {
	Canonical []byte
	Class     VertexClass
}

// TableImpl implements Table over an OpenAddressedTable of bucket ids
// and a parallel slice of atomic states.
type TableImpl struct {
	probe  OpenAddressedTable
	states statesTable
}

func (t *TableImpl) BucketID(canonical []byte) uint64 {
	id, ok := t.probe.lookup(canonical)
	if !ok {
		panic("vertex: canonical k-mer not present in table: " + string(canonical))
	}
	return uint64(id)
}

func (t *TableImpl) Read(bucket uint64) State {
	return State(t.states.words[bucket].Load())
}

func (t *TableImpl) CompareAndSet(bucket uint64, old, new State) bool {
	return t.states.words[bucket].CompareAndSwap(uint32(old), uint32(new))
}

func (p *OpenAddressedTable) insert(key []byte, id uint32) {
	own := make([]byte, len(key))
	copy(own, key)
	i := xxhash.Sum64(own) & p.mask
	for p.slots[i].used {
		i = (i + 1) & p.mask
	}
	p.slots[i] = slot{used: true, key: own, id: id}
	p.count++
}

func (p *OpenAddressedTable) lookup(canonical []byte) (uint32, bool) {
	i := xxhash.Sum64(canonical) & p.mask
	for p.slots[i].used {
		if utils.BytesEqual(p.slots[i].key, canonical) {
			return p.slots[i].id, true
		}
		i = (i + 1) & p.mask
	}
	return 0, false
}

func nextPow2(x uint64) uint64 {
	if x == 0 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x + 1
}
