package symtab

import "fmt"

// Table is the stack of open scopes, innermost last. Scope at index i
// always has Level == i.
type Table struct {
	scopes      []*Scope
	headerBytes int
	slotBytes   int
}

// New creates a table with a single program-level scope (level 0, no
// cause of birth) and the given frame-layout constants.
func New(headerBytes, slotBytes int) *Table {
	if headerBytes == 0 {
		headerBytes = defaultHeaderBytes
	}
	if slotBytes == 0 {
		slotBytes = defaultSlotBytes
	}
	t := &Table{headerBytes: headerBytes, slotBytes: slotBytes}
	t.scopes = append(t.scopes, newScope(0, nil, headerBytes, slotBytes))
	return t
}

func (t *Table) current() *Scope {
	return t.scopes[len(t.scopes)-1]
}

// CreateScope pushes a new scope. If the enclosing scope's last entity
// is a Function, its declared arguments are synthesized as the new
// scope's initial Parameter entities, in declared order, so that the
// callee's formal parameters occupy offsets 12, 16, 20, ... ahead of any
// locals it declares.
func (t *Table) CreateScope() {
	parent := t.current()
	var cause *Entity
	if last := parent.lastEntity(); last != nil && last.Kind == KindFunction {
		cause = last
	}
	next := newScope(len(t.scopes), cause, t.headerBytes, t.slotBytes)
	if cause != nil {
		for _, arg := range cause.Arguments {
			next.addEntity(NewParameter(arg.Name, arg.Mode))
		}
	}
	t.scopes = append(t.scopes, next)
}

// DestroyScope pops the current scope. It is an internal invariant
// violation (a programmer error, not a compile error) to destroy a scope
// whose owning function's frame length has not yet been filled in.
func (t *Table) DestroyScope() error {
	cur := t.current()
	if cur.CauseOfBirth != nil && !cur.CauseOfBirth.FrameLengthSet {
		return fmt.Errorf("symtab: destroying scope at level %d before frame length was filled in", cur.Level)
	}
	if len(t.scopes) == 1 {
		return fmt.Errorf("symtab: cannot destroy the program scope")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
	return nil
}

// AddEntity adds e to the current scope, assigning its offset if it is
// offset-bearing.
func (t *Table) AddEntity(e *Entity) {
	t.current().addEntity(e)
}

// AddArgument appends a to the current scope's last entity, which must
// be a Function (the signature is built up incrementally while parsing
// the formal parameter list, before the callee's own scope exists).
func (t *Table) AddArgument(a Argument) error {
	last := t.current().lastEntity()
	if last == nil || last.Kind != KindFunction {
		return fmt.Errorf("symtab: add_argument called with no open function signature")
	}
	last.Arguments = append(last.Arguments, a)
	return nil
}

// LastEntity returns the current scope's most recently declared entity.
func (t *Table) LastEntity() *Entity {
	return t.current().lastEntity()
}

// Lookup searches scopes from innermost to outermost, and within each
// scope from most to least recently declared, returning the first match
// and its nesting level.
func (t *Table) Lookup(name string) (*Entity, int, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if e := t.scopes[i].lookup(name); e != nil {
			return e, t.scopes[i].Level, true
		}
	}
	return nil, 0, false
}

// LookupOnCurrentScope restricts the search to the top scope; used for
// redeclaration checks.
func (t *Table) LookupOnCurrentScope(name string) (*Entity, bool) {
	if e := t.current().lookup(name); e != nil {
		return e, true
	}
	return nil, false
}

// FillInFrameLengthOnCallee sets the current scope's owning function's
// frame length to headerBytes + slotBytes * (count of offset-bearing
// entities in the current scope). If the current scope has no owning
// function (the program scope), this is a no-op.
func (t *Table) FillInFrameLengthOnCallee() {
	cur := t.current()
	if cur.CauseOfBirth == nil {
		return
	}
	cur.CauseOfBirth.FrameLength = t.CurrentScopeFrameLength()
	cur.CauseOfBirth.FrameLengthSet = true
}

// Callee returns the current scope's owning Function entity, or nil at
// the program scope.
func (t *Table) Callee() *Entity {
	return t.current().CauseOfBirth
}

// CurrentScopeFrameLength computes headerBytes + slotBytes * (count of
// offset-bearing entities in the current scope) directly from the
// scope's own entities, independent of whether an owning function's
// FrameLength field has been filled in yet. The program scope (which has
// no owning function) uses this to size its own frame.
func (t *Table) CurrentScopeFrameLength() int {
	cur := t.current()
	return t.headerBytes + t.slotBytes*cur.variableEntityCount()
}

// IsCalleeFrameLengthFilledIn reports whether the current scope's owning
// function already has its frame length set.
func (t *Table) IsCalleeFrameLengthFilledIn() bool {
	cause := t.current().CauseOfBirth
	return cause == nil || cause.FrameLengthSet
}

// InsideFunction reports whether the current scope is the body of a
// function (not a procedure): the immediately enclosing scope's last
// entity must be a Function entity of kind "function". A function
// nested inside a procedure's body is not "inside a function" by this
// check even though lexically it sits within one.
func (t *Table) InsideFunction() bool {
	if len(t.scopes) < 2 {
		return false
	}
	parent := t.scopes[len(t.scopes)-2]
	last := parent.lastEntity()
	return last != nil && last.Kind == KindFunction && last.FuncKind == FuncKindFunction
}

// CurrentNestingLevel returns the level of the current (top) scope.
func (t *Table) CurrentNestingLevel() int {
	return t.current().Level
}

// HasVariable reports whether name resolves to a Variable, Parameter, or
// Temporary: a bound parameter is a fully valid variable for read/write
// use inside its own function/procedure body.
func (t *Table) HasVariable(name string) bool {
	e, _, ok := t.Lookup(name)
	return ok && (e.Kind == KindVariable || e.Kind == KindParameter || e.Kind == KindTemporary)
}

// HasProcedure reports whether name resolves to a procedure.
func (t *Table) HasProcedure(name string) bool {
	e, _, ok := t.Lookup(name)
	return ok && e.Kind == KindFunction && e.FuncKind == FuncKindProcedure
}

// HasFunction reports whether name resolves to a function.
func (t *Table) HasFunction(name string) bool {
	e, _, ok := t.Lookup(name)
	return ok && e.Kind == KindFunction && e.FuncKind == FuncKindFunction
}

// HasCallableWithSignature reports whether name resolves to a Function
// (of either kind) whose ordered argument modes equal modes exactly.
// Callers check kind (HasProcedure/HasFunction) first; this only adds
// the signature comparison.
func (t *Table) HasCallableWithSignature(name string, modes []Mode) bool {
	e, _, ok := t.Lookup(name)
	if !ok || e.Kind != KindFunction {
		return false
	}
	if len(e.Arguments) != len(modes) {
		return false
	}
	for i, arg := range e.Arguments {
		if arg.Mode != modes[i] {
			return false
		}
	}
	return true
}
