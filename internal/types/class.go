package types

import "fmt"

// ClassID is a stable, non-owning reference to a Class descriptor.
//
// Per §9 ("Cyclic class graphs"), Class descriptors form cycles
// (self-referential types, recursive generics) so Type variants never
// embed a *Class directly — only this id, resolved against a ClassArena.
type ClassID uint64

// ClassParam is one parameter of a generic class: a type variable with
// variance and an optional default, per §3.2.
type ClassParam struct {
	Name     string
	Variance Variance
	Bound    Type // nil if unbounded
	Default  Type // nil if no default
}

// Class is the descriptor for a class in the checked program.
//
// Ownership: per §3.2, the Class descriptor is owned by the
// symbol-resolution collaborator; the Type Representation holds only
// non-owning references by ClassID. In this standalone core the
// ClassArena stands in for that owning collaborator.
type Class struct {
	ID          ClassID
	Name        string // fully-qualified name
	Params      []ClassParam
	MRO         []ClassID // linearized, self included at index 0
	IsFinal     bool
	IsTypedDict bool
	IsEnum      bool
	// IsSequence marks a class as an ordered-sequence container (list,
	// deque, user Sequence[T] subclass, ...) for Sequence-pattern
	// destructuring (§4.4.1). str/bytes/bytearray are deliberately excluded
	// from this classification at the call site even when a collaborator
	// marks them sequence-like, since the spec carves them out by name.
	IsSequence bool
	// MatchArgs is the resolved __match_args__ tuple (§4.4.4), or nil if
	// the class does not declare one.
	MatchArgs []string
	// Fields holds TypedDict members when IsTypedDict is set (§3.3).
	Fields map[string]TypedDictField
	// EnumMembers names the literal identities a final enum class permits.
	EnumMembers []string
}

func (c *Class) String() string {
	if c == nil {
		return "<nil class>"
	}
	return c.Name
}

// IsSubclassOf reports whether other appears in c's MRO, i.e. other is an
// ancestor of (or identical to) c.
func (c *Class) IsSubclassOf(otherID ClassID) bool {
	if c == nil {
		return false
	}
	for _, id := range c.MRO {
		if id == otherID {
			return true
		}
	}
	return false
}

// ClassArena owns Class descriptors and hands out stable ids.
//
// Class descriptors are created during module evaluation and destroyed
// with the module (§3.2); clone-on-write derivations (§3.3) register new
// ids rather than mutating the base descriptor in place.
type ClassArena struct {
	classes map[ClassID]*Class
	nextID  ClassID
}

// NewClassArena creates an empty arena.
func NewClassArena() *ClassArena {
	return &ClassArena{classes: make(map[ClassID]*Class)}
}

// Register assigns a fresh id to cls, stores it, and returns the id.
func (a *ClassArena) Register(cls *Class) ClassID {
	a.nextID++
	id := a.nextID
	cls.ID = id
	if len(cls.MRO) == 0 || cls.MRO[0] != id {
		cls.MRO = append([]ClassID{id}, cls.MRO...)
	}
	a.classes[id] = cls
	return id
}

// Get resolves an id to its descriptor.
func (a *ClassArena) Get(id ClassID) (*Class, bool) {
	cls, ok := a.classes[id]
	return cls, ok
}

// MustGet resolves an id, panicking on an arena inconsistency. Per §7,
// a dangling ClassID is an internal assertion failure, not a diagnostic.
func (a *ClassArena) MustGet(id ClassID) *Class {
	cls, ok := a.classes[id]
	if !ok {
		panic(fmt.Sprintf("types: unknown class id %d", id))
	}
	return cls
}

// CloneWithTypedDictProvided registers a derived TypedDict class whose
// field map is the base's field map with one field's IsProvided flag set,
// per §3.3 and §8's "TypedDict provided-flag" property. The base
// descriptor is never mutated.
func (a *ClassArena) CloneWithTypedDictProvided(base ClassID, key string) ClassID {
	baseCls := a.MustGet(base)
	if !baseCls.IsTypedDict {
		panic("types: CloneWithTypedDictProvided on non-TypedDict class " + baseCls.Name)
	}

	fields := make(map[string]TypedDictField, len(baseCls.Fields))
	for k, v := range baseCls.Fields {
		fields[k] = v
	}
	if f, ok := fields[key]; ok {
		f.IsProvided = true
		fields[key] = f
	}

	clone := &Class{
		Name:        baseCls.Name,
		Params:      baseCls.Params,
		MRO:         append([]ClassID(nil), baseCls.MRO...),
		IsFinal:     baseCls.IsFinal,
		IsTypedDict: true,
		IsEnum:      baseCls.IsEnum,
		IsSequence:  baseCls.IsSequence,
		MatchArgs:   baseCls.MatchArgs,
		Fields:      fields,
	}
	return a.Register(clone)
}
