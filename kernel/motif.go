package kernel

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"sort"
	"time"
)

// motifKey groups derivations by shape: the derived edge's type, the
// (sorted) multiset of its premises' types, and the producing rule.
// Grounded on lineage_hashing.go/in_memory_structural_memory.go's
// MotifKey/BuildMotifKey, adapted from Event to Hyperedge.
type motifKey struct {
	DerivedType    string
	ContributorSig string
	RuleID         string
}

type motifStats struct {
	Count    int
	LastSeen time.Time
}

// lineageKey is a depth-k structural signature, independent of which rule
// produced it (shape signature, not rule signature).
type lineageKey struct {
	DerivedType string
	Depth       int
	Sig         uint64
}

type lineageStats struct {
	Count      int
	LastSeen   time.Time
	RuleCounts map[string]int
}

// MotifMemory tracks recurring derivation shapes up to maxDepth hops, the
// way the teacher's InMemoryStructuralMemory tracks motifs and lineage
// signatures — adapted here to key on Hyperedge rather than Event, and
// simplified to the single motif/lineage layer the supplemented spec
// feature needs (no separate Peers/Children cache; that lives in Indices).
type MotifMemory struct {
	maxDepth int

	sigs         map[EdgeID][]uint64
	motifs       map[motifKey]*motifStats
	lineageStats map[lineageKey]*lineageStats
}

func newMotifMemory(maxDepth int) *MotifMemory {
	return &MotifMemory{
		maxDepth:     maxDepth,
		sigs:         make(map[EdgeID][]uint64),
		motifs:       make(map[motifKey]*motifStats),
		lineageStats: make(map[lineageKey]*lineageStats),
	}
}

// onEventAdded ensures a fresh edge has base signatures at every depth (the
// "leaf" case — no contributors yet).
func (m *MotifMemory) onEventAdded(e *Hyperedge) {
	m.ensureSigs(e)
}

// onEventTouched refreshes an existing edge's base signature after a belief
// revision and resets its higher-depth signatures to their leaf values; they
// are recomputed only by an onMaterialized call with this edge as the derived
// edge.
func (m *MotifMemory) onEventTouched(e *Hyperedge) {
	delete(m.sigs, e.ID)
	m.ensureSigs(e)
}

// onMaterialized is the motif commit point: derived exists and every
// contributor->derived link exists. Computes Sig1..SigMaxDepth for derived
// from the contributors' Sig(k-1), bumps motif and lineage stats.
func (m *MotifMemory) onMaterialized(derived *Hyperedge, contributors []*Hyperedge, ruleID string) {
	m.ensureSigs(derived)
	for _, c := range contributors {
		m.ensureSigs(c)
	}

	types := make([]string, 0, len(contributors))
	for _, c := range contributors {
		types = append(types, c.Type)
	}
	sort.Strings(types)
	key := motifKey{DerivedType: derived.Type, ContributorSig: joinSep(types, "|"), RuleID: ruleID}
	mst, ok := m.motifs[key]
	if !ok {
		mst = &motifStats{}
		m.motifs[key] = mst
	}
	mst.Count++
	mst.LastSeen = time.Now()

	ds := m.sigs[derived.ID]
	s0 := ds[0]
	for k := 1; k <= m.maxDepth; k++ {
		prev := make([]uint64, 0, len(contributors))
		for _, c := range contributors {
			cs := m.sigs[c.ID]
			prev = append(prev, cs[k-1])
		}
		shapeSig := hashLineage(k, s0, prev)
		ds[k] = shapeSig

		lk := lineageKey{DerivedType: derived.Type, Depth: k, Sig: shapeSig}
		lst, ok := m.lineageStats[lk]
		if !ok {
			lst = &lineageStats{RuleCounts: make(map[string]int)}
			m.lineageStats[lk] = lst
		}
		lst.Count++
		lst.LastSeen = time.Now()
		lst.RuleCounts[ruleID]++
	}
	m.sigs[derived.ID] = ds
}

func (m *MotifMemory) ensureSigs(e *Hyperedge) {
	if _, ok := m.sigs[e.ID]; ok {
		return
	}
	s := make([]uint64, m.maxDepth+1)
	s0 := hashEdgeBase(e)
	s[0] = s0
	for k := 1; k <= m.maxDepth; k++ {
		s[k] = hashLineage(k, s0, nil)
	}
	m.sigs[e.ID] = s
}

// HotMotifs returns every motif key seen at least minCount times.
func (m *MotifMemory) HotMotifs(minCount int) []motifKey {
	out := make([]motifKey, 0)
	for k, st := range m.motifs {
		if st.Count >= minCount {
			out = append(out, k)
		}
	}
	return out
}

func hashEdgeBase(e *Hyperedge) uint64 {
	h := fnv.New64a()
	writeStr(h, e.Type)
	writeInt(h, len(e.Args))
	return h.Sum64()
}

func hashLineage(depth int, derivedSig0 uint64, contributorPrevSigs []uint64) uint64 {
	h := fnv.New64a()
	writeInt(h, depth)
	writeU64(h, derivedSig0)
	sorted := append([]uint64(nil), contributorPrevSigs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for _, s := range sorted {
		writeU64(h, s)
	}
	return h.Sum64()
}

func writeStr(h hash.Hash64, s string) {
	_, _ = h.Write([]byte(s))
	_, _ = h.Write([]byte{0})
}

func writeInt(h hash.Hash64, v int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, _ = h.Write(buf[:])
}

func writeU64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

func joinSep(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
