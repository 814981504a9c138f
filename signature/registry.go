// Package signature implements the Signature Registry (spec §4.4): a
// per-compilation mapping `(class, method) → signature` built in three
// phases (pre-register, refine, consume).
//
// Grounded on the teacher's two-pass handling of forward method
// references in declaration.go (ParseDecls registers every method
// name before any body is walked, so a call to a not-yet-processed
// method still resolves); this package makes that implicit two-pass
// shape an explicit, testable state machine instead of interleaving it
// with tree traversal.
package signature

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/hawkynt/il2cs/framework"
	"github.com/hawkynt/il2cs/types"
)

// Key identifies one registry entry.
type Key struct {
	Class  string
	Method string
}

func (k Key) String() string { return fmt.Sprintf("%s.%s", k.Class, k.Method) }

// phase tracks where a single class sits in the two-pass pipeline
// (§4.4, "Ordering guarantee").
type phase int

const (
	phasePreRegistered phase = iota
	phaseRefined
)

// Registry holds every class's method signatures for one compilation.
// It is exclusively owned by the single transformation task (§5): no
// locking.
type Registry struct {
	entries map[Key]framework.Signature
	phases  map[string]phase
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[Key]framework.Signature),
		phases:  make(map[string]phase),
	}
}

// PreRegister records a method's estimated signature during phase 1,
// before its body has been transformed (§4.4 step 1). Calling
// PreRegister for any method of a class after that class has been
// marked refined is a programmer error and panics: phase 2 must
// complete before phase 3 begins for a class.
func (r *Registry) PreRegister(class, method string, sig framework.Signature) {
	if r.phases[class] == phaseRefined {
		panic(fmt.Sprintf("signature: PreRegister(%s.%s) called after class already refined", class, method))
	}
	r.entries[Key{class, method}] = sig
}

// NeedsRefinement reports whether a pre-registered return type is one
// of the placeholder kinds phase 2 targets (§4.4 step 2: "inferred as
// object / byte / dynamic").
func NeedsRefinement(sig framework.Signature) bool {
	rt := sig.ReturnType
	if rt.Kind() == types.KindDynamic {
		return true
	}
	return rt.IsPrimitive() && (rt.Name() == "byte" || rt.Name() == "object")
}

// Refine updates a method's signature in place during phase 2, so
// later lookups see the refined result. It panics if the method was
// never pre-registered. It does not mark the class refined; that is
// MarkClassRefined's job. Refine may be called at most once per method.
func (r *Registry) Refine(class, method string, sig framework.Signature) {
	key := Key{class, method}
	if _, ok := r.entries[key]; !ok {
		panic(fmt.Sprintf("signature: Refine(%s.%s) on a method that was never pre-registered", class, method))
	}
	r.entries[key] = sig
}

// MarkClassRefined closes phase 2 for a class, after every method that
// needed refinement has been re-inferred.
func (r *Registry) MarkClassRefined(class string) {
	r.phases[class] = phaseRefined
}

// Lookup is phase 3: transformers may look up any registered
// signature, including methods defined later in source order, and
// methods of classes still mid-refinement (§4.4, "acceptable because
// classes in this IL are independent").
func (r *Registry) Lookup(class, method string) (framework.Signature, bool) {
	sig, ok := r.entries[Key{class, method}]
	return sig, ok
}

// Snapshot returns an unordered copy of every registered
// signature, letting transform log which methods were refined without
// granting mutation access outside PreRegister/Refine (SPEC_FULL §4
// item 2a).
func (r *Registry) Snapshot() map[Key]framework.Signature {
	return maps.Clone(r.entries)
}

// Keys returns every registered key, sorted, for deterministic
// diagnostics and tests.
func (r *Registry) Keys() []Key {
	keys := maps.Keys(r.entries)
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
