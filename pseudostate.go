package canopy

import "fmt"

// State is a combination of pseudo-state flags selecting a style variant.
type State uint8

const (
	StateHovered State = 1 << iota
	StateSelected
	StateDisabled

	// StateNormal is the enabled, unselected, unhovered state.
	StateNormal State = 0
)

const stateCount = 8

// Named combinations, for readability at call sites.
const (
	StateSelectedHovered         = StateSelected | StateHovered
	StateDisabledHovered         = StateDisabled | StateHovered
	StateSelectedDisabled        = StateSelected | StateDisabled
	StateSelectedDisabledHovered = StateSelected | StateDisabled | StateHovered
)

var stateNames = [stateCount]string{
	StateNormal:                  "Normal",
	StateHovered:                 "Hovered",
	StateSelected:                "Selected",
	StateSelectedHovered:         "SelectedHovered",
	StateDisabled:                "Disabled",
	StateDisabledHovered:         "DisabledHovered",
	StateSelectedDisabled:        "SelectedDisabled",
	StateSelectedDisabledHovered: "SelectedDisabledHovered",
}

func (s State) String() string {
	if s < stateCount {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// StateFromFlags builds the state for a widget's flags.
func StateFromFlags(enabled, selected, hovered bool) State {
	var s State
	if !enabled {
		s |= StateDisabled
	}
	if selected {
		s |= StateSelected
	}
	if hovered {
		s |= StateHovered
	}
	return s
}

// fallbackCandidates lists the states tried, in order, when s itself has no
// variant: each single flag dropped from s (Selected, then Disabled, then
// Hovered), then each pair dropped in the same priority, then Normal.
func fallbackCandidates(s State) [stateCount]State {
	return [stateCount]State{
		s,
		s &^ StateSelected,
		s &^ StateDisabled,
		s &^ StateHovered,
		s &^ (StateSelected | StateDisabled),
		s &^ (StateSelected | StateHovered),
		s &^ (StateDisabled | StateHovered),
		StateNormal,
	}
}

// StyleSet holds the pseudo-state variants of one named style. The Normal
// variant always exists; the others are optional.
type StyleSet struct {
	name     string
	variants [stateCount]*StyleTable
	resolved [stateCount]State
}

// NewStyleSet creates a set whose Normal variant is normal.
func NewStyleSet(name string, normal *StyleTable) (*StyleSet, error) {
	if normal == nil {
		return nil, fmt.Errorf("style %q: %w", name, ErrMissingNormal)
	}
	s := &StyleSet{name: name}
	s.variants[StateNormal] = normal
	s.rebuild()
	return s, nil
}

// Name returns the style name.
func (s *StyleSet) Name() string { return s.name }

// Normal returns the Normal variant.
func (s *StyleSet) Normal() *StyleTable { return s.variants[StateNormal] }

// Register installs t as the variant for state. Registering nil removes a
// variant, except for Normal which cannot be removed.
func (s *StyleSet) Register(state State, t *StyleTable) {
	if state >= stateCount {
		panic("canopy: invalid style state")
	}
	if state == StateNormal && t == nil {
		panic("canopy: cannot unregister the normal variant")
	}
	s.variants[state] = t
	s.rebuild()
}

// Variant returns the variant registered for exactly state, or nil.
func (s *StyleSet) Variant(state State) *StyleTable {
	if state >= stateCount {
		return nil
	}
	return s.variants[state]
}

// Has reports whether a variant is registered for exactly state.
func (s *StyleSet) Has(state State) bool {
	return s.Variant(state) != nil
}

// Resolve returns the variant to use for state and the state it was
// registered under. Missing combinations degrade deterministically; see
// fallbackCandidates.
func (s *StyleSet) Resolve(state State) (*StyleTable, State) {
	if state >= stateCount {
		state &= StateSelectedDisabledHovered
	}
	r := s.resolved[state]
	return s.variants[r], r
}

// rebuild precomputes the fallback result for every state.
func (s *StyleSet) rebuild() {
	for st := State(0); st < stateCount; st++ {
		s.resolved[st] = StateNormal
		for _, c := range fallbackCandidates(st) {
			if s.variants[c] != nil {
				s.resolved[st] = c
				break
			}
		}
	}
}

// replace swaps in other's variants while keeping s's identity, so views
// already bound to s see the new tables.
func (s *StyleSet) replace(other *StyleSet) {
	s.variants = other.variants
	s.resolved = other.resolved
}

// StyleView is one instance's view of a StyleSet. It tracks the instance's
// current pseudo-state and the private copy-on-write tables the instance
// created per state.
//
// Reads walk the shared cascade of the active variant. Wherever that cascade
// passes through a variant the instance wrote to, the instance's private
// values are consulted first, so a write made in Normal stays visible while
// hovered unless the Hovered variant overrides it.
type StyleView struct {
	set     *StyleSet
	owner   OwnerID
	private [stateCount]*StyleTable
	state   State
	active  State // last active state reported by SetState
}

// NewStyleView creates a view for owner in the Normal state.
func NewStyleView(set *StyleSet, owner OwnerID) *StyleView {
	if owner == 0 {
		panic("canopy: style view requires a non-zero owner")
	}
	return &StyleView{set: set, owner: owner}
}

// StyleSet returns the underlying shared set.
func (v *StyleView) StyleSet() *StyleSet { return v.set }

// Owner returns the owner the view writes on behalf of.
func (v *StyleView) Owner() OwnerID { return v.owner }

// State returns the requested pseudo-state.
func (v *StyleView) State() State { return v.state }

// ActiveState returns the state of the variant actually in use. It is
// resolved against the set's current variants on every call.
func (v *StyleView) ActiveState() State {
	_, s := v.set.Resolve(v.state)
	return s
}

// SetState changes the requested state and re-resolves the active variant.
// It reports whether the active variant changed since the last call.
func (v *StyleView) SetState(s State) bool {
	v.state = s
	active := v.ActiveState()
	if active == v.active {
		return false
	}
	v.active = active
	return true
}

// Table returns the table writes to the active state land in: the
// instance's private table when it wrote to this state, the shared variant
// otherwise. Reads should go through Get, which also sees private writes
// made to the variants below.
func (v *StyleView) Table() *StyleTable {
	return v.tableFor(v.ActiveState())
}

func (v *StyleView) tableFor(s State) *StyleTable {
	if t := v.private[s]; t != nil {
		return t
	}
	return v.set.variants[s]
}

// overlay returns the instance's private table for the shared variant t.
func (v *StyleView) overlay(t *StyleTable) *StyleTable {
	if t.owner != 0 {
		return nil
	}
	for s, shared := range v.set.variants {
		if shared == t && v.private[s] != nil {
			return v.private[s]
		}
	}
	return nil
}

// Lookup walks the active variant's cascade and returns the first value set
// for p.
func (v *StyleView) Lookup(p Param) (Value, bool) {
	if p >= ParamCount {
		return Value{}, false
	}
	for t := v.set.variants[v.ActiveState()]; t != nil; t = t.parent {
		if o := v.overlay(t); o != nil {
			if val := o.slots[p]; val.IsSet() {
				return val, true
			}
		}
		if val := t.slots[p]; val.IsSet() {
			return val, true
		}
	}
	return Value{}, false
}

// Get returns the effective value of p in the active state, or def.
func (v *StyleView) Get(p Param, def Value) Value {
	if val, ok := v.Lookup(p); ok {
		return val
	}
	return def
}

// Custom walks the active cascade for an unmodeled property.
func (v *StyleView) Custom(name string) (string, bool) {
	for t := v.set.variants[v.ActiveState()]; t != nil; t = t.parent {
		if o := v.overlay(t); o != nil {
			if val, ok := o.custom[name]; ok {
				return val, true
			}
		}
		if val, ok := t.custom[name]; ok {
			return val, true
		}
	}
	return "", false
}

// Set writes p into the active state's variant.
func (v *StyleView) Set(p Param, val Value) error {
	return v.SetFor(v.ActiveState(), p, val)
}

// SetFor writes p into the variant registered for exactly state. Writing to a
// state that has no registered variant returns ErrInvalidState.
func (v *StyleView) SetFor(state State, p Param, val Value) error {
	base, err := v.writeBase(state)
	if err != nil {
		return err
	}
	v.private[state] = base.Set(v.owner, p, val)
	return nil
}

// SetByName parses raw and writes it into the variant for state.
func (v *StyleView) SetByName(state State, name, raw string) error {
	base, err := v.writeBase(state)
	if err != nil {
		return err
	}
	t, err := base.SetByName(v.owner, name, raw)
	if err != nil {
		return err
	}
	v.private[state] = t
	return nil
}

func (v *StyleView) writeBase(state State) (*StyleTable, error) {
	if state >= stateCount || v.set.variants[state] == nil {
		return nil, fmt.Errorf("style %q state %s: %w", v.set.name, state, ErrInvalidState)
	}
	return v.tableFor(state), nil
}

// Reset drops every private table, returning the instance to the shared
// style.
func (v *StyleView) Reset() {
	v.private = [stateCount]*StyleTable{}
}
