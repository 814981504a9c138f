// Package scope implements the Scope & Symbol Table (spec §4.2): a
// stack of lexical frames mapping a source identifier to its Target
// type and (possibly renamed) Target identifier, plus the method-scope
// collision set that survives block exits (C# CS0136).
//
// Grounded on the teacher's symbol.Definition/ClassScope lookups, but
// reshaped into an explicit frame stack (a value-passed stack, not a
// global mutable singleton) per the spec's own DESIGN NOTES critique of
// the teacher's source-language original ("Global mutable scope
// stack").
package scope

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hawkynt/il2cs/types"
)

// frame is one lexical scope: a function/constructor/method body or a
// nested block within one.
type frame struct {
	varTypes    map[string]types.Type
	renamed     map[string]string
	arrayBuffers map[string]bool
	jaggedVars  map[string]bool
}

func newFrame() *frame {
	return &frame{
		varTypes:     make(map[string]types.Type),
		renamed:      make(map[string]string),
		arrayBuffers: make(map[string]bool),
		jaggedVars:   make(map[string]bool),
	}
}

// Stack is the scope stack for a single method/constructor body. A new
// Stack is created per method; it owns the method-scope collision set
// (I2: not popped at block exits).
type Stack struct {
	frames    []*frame
	collision map[string]bool
	// classFieldTypes holds the constructor field types that live above
	// every frame (§3, "Constructor field types ... live at class scope
	// above frames").
	classFieldTypes map[string]types.Type
}

// New creates a scope stack for one method body, seeded with the
// enclosing class's field types.
func New(classFieldTypes map[string]types.Type) *Stack {
	s := &Stack{
		collision:       make(map[string]bool),
		classFieldTypes: maps.Clone(classFieldTypes),
	}
	if s.classFieldTypes == nil {
		s.classFieldTypes = make(map[string]types.Type)
	}
	s.Push()
	return s
}

// Push opens a new lexical block scope.
func (s *Stack) Push() {
	s.frames = append(s.frames, newFrame())
}

// Pop closes the innermost lexical block scope. I1: any identifier
// shadowed in the popped frame becomes visible again at the enclosing
// frame's mapping (this falls out naturally from frames being searched
// innermost-first and the popped frame's map being discarded).
func (s *Stack) Pop() {
	if len(s.frames) == 0 {
		panic("scope: Pop called on empty stack")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *Stack) top() *frame {
	return s.frames[len(s.frames)-1]
}

// Declare introduces srcIdent with the given type in the current block
// scope, returning the Target identifier to emit. If targetIdent (by
// default srcIdent) already appears in the method-scope collision set,
// Declare appends the smallest integer suffix making it unique (I3: the
// mapping is then stable for the rest of the method).
func (s *Stack) Declare(srcIdent string, t types.Type) string {
	return s.DeclareAs(srcIdent, srcIdent, t)
}

// DeclareAs is Declare with the collision-avoidance candidate computed
// separately from the lookup key: srcIdent is the IL-side name every
// later Lookup/LookupRenamed/Retype call addresses this binding by,
// targetCandidate is the name (already case-converted and
// keyword-escaped, see transform.DeclareLocal) collision-avoidance
// starts from. This keeps scope lookups keyed on the untouched IL
// identifier regardless of what Target-side renaming occurred.
func (s *Stack) DeclareAs(srcIdent, targetCandidate string, t types.Type) string {
	targetIdent := targetCandidate
	if s.collision[targetIdent] {
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s%d", targetCandidate, n)
			if !s.collision[candidate] {
				targetIdent = candidate
				break
			}
		}
	}
	s.collision[targetIdent] = true

	f := s.top()
	f.varTypes[srcIdent] = t
	f.renamed[srcIdent] = targetIdent
	return targetIdent
}

// Lookup resolves srcIdent's Target type, searching block scopes from
// innermost to outermost and finally the class field table.
func (s *Stack) Lookup(srcIdent string) (types.Type, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if t, ok := s.frames[i].varTypes[srcIdent]; ok {
			return t, true
		}
	}
	if t, ok := s.classFieldTypes[srcIdent]; ok {
		return t, true
	}
	return types.Type{}, false
}

// LookupRenamed resolves srcIdent's Target identifier (after any
// collision-avoidance renaming), searching innermost to outermost.
func (s *Stack) LookupRenamed(srcIdent string) (string, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if name, ok := s.frames[i].renamed[srcIdent]; ok {
			return name, true
		}
	}
	return "", false
}

// Retype updates the type recorded for an already-declared identifier,
// used by the Body Pre-Analyzer to upgrade a widened type on a later
// assignment (§4.6(c)). It does not change the identifier's renaming.
func (s *Stack) Retype(srcIdent string, t types.Type) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i].varTypes[srcIdent]; ok {
			s.frames[i].varTypes[srcIdent] = t
			return
		}
	}
	// Not yet declared in any open block: record at the current frame so
	// a subsequent Lookup still finds it, matching the declared-after-use
	// shape backwards propagation can produce.
	s.top().varTypes[srcIdent] = t
}

// MarkArrayBuffer records that srcIdent is backed by an ArrayBuffer
// (typed-array view tracking, §3).
func (s *Stack) MarkArrayBuffer(srcIdent string) {
	s.top().arrayBuffers[srcIdent] = true
}

// IsArrayBuffer reports whether srcIdent was marked via MarkArrayBuffer
// in any open frame.
func (s *Stack) IsArrayBuffer(srcIdent string) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].arrayBuffers[srcIdent] {
			return true
		}
	}
	return false
}

// MarkJagged records that srcIdent must be emitted as a jagged array
// (§4.6(d)).
func (s *Stack) MarkJagged(srcIdent string) {
	s.top().jaggedVars[srcIdent] = true
}

// IsJagged reports whether srcIdent was marked via MarkJagged.
func (s *Stack) IsJagged(srcIdent string) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].jaggedVars[srcIdent] {
			return true
		}
	}
	return false
}

// RenameToAvoidCollision reserves ident in the method-scope collision
// set without declaring a typed variable for it (used for synthetic
// locals introduced by the Node Transformers, e.g. loop helper
// indices), returning the identifier actually reserved.
func (s *Stack) RenameToAvoidCollision(ident string) string {
	if !s.collision[ident] {
		s.collision[ident] = true
		return ident
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s%d", ident, n)
		if !s.collision[candidate] {
			s.collision[candidate] = true
			return candidate
		}
	}
}

// CollisionNames returns every Target identifier reserved so far in
// this method, sorted, for diagnostics and tests.
func (s *Stack) CollisionNames() []string {
	names := maps.Keys(s.collision)
	slices.Sort(names)
	return names
}
