package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/moddeck-labs/moddeck/internal/registry"
)

// ConflictError reports ordering constraints that form a cycle. Callers must
// fix the contradictory hints; no best-effort order exists.
type ConflictError struct {
	// Cycle holds the keys of the entries participating in the
	// contradiction, sorted for stable reporting.
	Cycle []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("ordering conflict: constraints between %s form a cycle", strings.Join(e.Cycle, ", "))
}

// Resolve orders the given entries into the final load sequence. Entries that
// are disabled or invalid are ignored. References to entries outside the
// input set are dropped. The result is deterministic: for a fixed input,
// Resolve always returns the same sequence.
func Resolve(entries []registry.Entry) ([]registry.Entry, error) {
	g := newGraph(entries)
	g.linkExplicit()
	g.linkDefaults()
	return g.sort()
}

// graph is a directed constraint graph over the loadable entries. An edge
// from -> to means "from loads before to". Node indices follow the input
// (first-registration) order, which sort uses to break ties.
type graph struct {
	nodes []registry.Entry
	byKey map[string]int
	succ  []map[int]bool
	indeg []int
	// paired marks entry pairs related by an explicit constraint in either
	// direction; the default package-before-native edge yields to it.
	paired map[[2]int]bool
}

func newGraph(entries []registry.Entry) *graph {
	g := &graph{
		byKey:  make(map[string]int),
		paired: make(map[[2]int]bool),
	}
	for _, e := range entries {
		if !e.IsEnabled() || !e.IsValid() {
			continue
		}
		g.byKey[e.Key()] = len(g.nodes)
		g.nodes = append(g.nodes, e)
		g.succ = append(g.succ, make(map[int]bool))
		g.indeg = append(g.indeg, 0)
	}
	return g
}

// lookup resolves a symbolic constraint reference: exact key first, then the
// canonical native form (base filename, any directory prefix ignored).
func (g *graph) lookup(ref string) (int, bool) {
	if i, ok := g.byKey[ref]; ok {
		return i, true
	}
	i, ok := g.byKey[registry.NativeKey(ref)]
	return i, ok
}

func (g *graph) addEdge(from, to int) {
	if from == to || g.succ[from][to] {
		return
	}
	g.succ[from][to] = true
	g.indeg[to]++
}

func (g *graph) markPaired(a, b int) {
	g.paired[[2]int{a, b}] = true
	g.paired[[2]int{b, a}] = true
}

// linkExplicit adds one edge per resolvable load_after / load_before hint.
// Hints referencing disabled or absent entries are pruned here and never
// fail the resolution.
func (g *graph) linkExplicit() {
	for i, e := range g.nodes {
		after, before := e.Ordering()
		for _, dep := range after {
			if j, ok := g.lookup(dep.ID); ok {
				g.addEdge(j, i)
				g.markPaired(i, j)
			}
		}
		for _, dep := range before {
			if j, ok := g.lookup(dep.ID); ok {
				g.addEdge(i, j)
				g.markPaired(i, j)
			}
		}
	}
}

// linkDefaults adds the implicit package-before-native edge for every pair
// not already related by an explicit constraint. Native code patches behavior
// the content packages rely on, so it loads last unless the module opts out
// with preload.
func (g *graph) linkDefaults() {
	for i, e := range g.nodes {
		n, ok := e.(*registry.Native)
		if !ok || n.Preload {
			continue
		}
		for j, other := range g.nodes {
			if other.Kind() != registry.KindPackage {
				continue
			}
			if g.paired[[2]int{i, j}] {
				continue
			}
			g.addEdge(j, i)
		}
	}
}

// sort runs a stable topological sort: among the nodes whose constraints are
// satisfied, the one registered first is emitted first.
func (g *graph) sort() ([]registry.Entry, error) {
	n := len(g.nodes)
	indeg := make([]int, n)
	copy(indeg, g.indeg)
	done := make([]bool, n)

	order := make([]registry.Entry, 0, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indeg[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			return nil, &ConflictError{Cycle: g.conflictKeys(done)}
		}
		done[next] = true
		order = append(order, g.nodes[next])
		for succ := range g.succ[next] {
			indeg[succ]--
		}
	}
	return order, nil
}

// conflictKeys narrows the unsorted remainder down to the entries actually on
// a cycle by repeatedly shaving nodes with no outgoing edge into the
// remainder, then returns their keys sorted.
func (g *graph) conflictKeys(done []bool) []string {
	remaining := make(map[int]bool)
	for i, d := range done {
		if !d {
			remaining[i] = true
		}
	}

	for {
		shaved := false
		for i := range remaining {
			hasSucc := false
			for succ := range g.succ[i] {
				if remaining[succ] {
					hasSucc = true
					break
				}
			}
			if !hasSucc {
				delete(remaining, i)
				shaved = true
			}
		}
		if !shaved {
			break
		}
	}

	keys := make([]string, 0, len(remaining))
	for i := range remaining {
		keys = append(keys, g.nodes[i].Key())
	}
	sort.Strings(keys)
	return keys
}
