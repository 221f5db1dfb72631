package canopy

// StyleTable is one layer of a style cascade. Unset slots defer to the parent
// table, so a chain of tables behaves like a prototype chain.
//
// A table with a zero owner is shared. Shared tables are never written
// through Set: the first write by an owner allocates a private child table
// owned by that owner and later writes by the same owner land there.
type StyleTable struct {
	name   string
	slots  [ParamCount]Value
	custom map[string]string
	parent *StyleTable
	owner  OwnerID
}

// NewStyleTable creates a shared table with the given parent (may be nil).
func NewStyleTable(name string, parent *StyleTable) *StyleTable {
	return &StyleTable{name: name, parent: parent}
}

// Name returns the table's name, for diagnostics.
func (t *StyleTable) Name() string { return t.name }

// Parent returns the next table in the chain.
func (t *StyleTable) Parent() *StyleTable { return t.parent }

// Owner returns the private owner, or zero for a shared table.
func (t *StyleTable) Owner() OwnerID { return t.owner }

// Lookup walks the chain and returns the first value set for p.
func (t *StyleTable) Lookup(p Param) (Value, bool) {
	if p >= ParamCount {
		return Value{}, false
	}
	for s := t; s != nil; s = s.parent {
		if v := s.slots[p]; v.IsSet() {
			return v, true
		}
	}
	return Value{}, false
}

// Get returns the effective value of p, or def when no table in the chain
// sets it.
func (t *StyleTable) Get(p Param, def Value) Value {
	if v, ok := t.Lookup(p); ok {
		return v
	}
	return def
}

// GetOrDefault is Get with the parameter's table default.
func (t *StyleTable) GetOrDefault(p Param) Value {
	return t.Get(p, p.Info().Default)
}

// Local returns the value stored in this table only, without walking.
func (t *StyleTable) Local(p Param) Value {
	if p >= ParamCount {
		return Value{}
	}
	return t.slots[p]
}

// Custom walks the chain for an unmodeled property.
func (t *StyleTable) Custom(name string) (string, bool) {
	for s := t; s != nil; s = s.parent {
		if v, ok := s.custom[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Set writes v into p on behalf of owner and returns the table that
// received the write. When t is already owned by owner the write happens in
// place; otherwise a private child of t is created for owner. Callers keep
// the returned table as their view.
func (t *StyleTable) Set(owner OwnerID, p Param, v Value) *StyleTable {
	dst := t.writable(owner)
	if p < ParamCount {
		dst.slots[p] = v
	}
	return dst
}

// Clear removes the local value of p from owner's private table, letting the
// cascade show through again.
func (t *StyleTable) Clear(owner OwnerID, p Param) *StyleTable {
	return t.Set(owner, p, Value{})
}

// SetCustom writes an unmodeled property with the same copy-on-write rule as
// Set.
func (t *StyleTable) SetCustom(owner OwnerID, name, value string) *StyleTable {
	dst := t.writable(owner)
	if dst.custom == nil {
		dst.custom = make(map[string]string)
	}
	dst.custom[name] = value
	return dst
}

// GetByName resolves name through the parameter table. Modeled parameters
// return their effective value formatted by Value.String for typed kinds
// and the raw text for strings; other names are looked up in the custom map.
func (t *StyleTable) GetByName(name string) (string, bool) {
	if p, ok := ParamByName(name); ok {
		v, ok := t.Lookup(p)
		if !ok {
			return "", false
		}
		if s, err := v.Text(); err == nil {
			return s, true
		}
		return v.String(), true
	}
	return t.Custom(name)
}

// SetByName parses raw according to the parameter table and writes it.
// Unmodeled names are stored verbatim as custom properties. A parse failure
// is returned unchanged and nothing is written.
func (t *StyleTable) SetByName(owner OwnerID, name, raw string) (*StyleTable, error) {
	p, ok := ParamByName(name)
	if !ok {
		return t.SetCustom(owner, name, raw), nil
	}
	v, err := ParseValue(name, p.Info().Kind, p.Info().Unit, raw)
	if err != nil {
		return t, err
	}
	return t.Set(owner, p, v), nil
}

// writable returns t if owner already owns it, or a fresh private child.
func (t *StyleTable) writable(owner OwnerID) *StyleTable {
	if owner == 0 {
		panic("canopy: style write requires a non-zero owner")
	}
	if t.owner == owner {
		return t
	}
	return &StyleTable{name: t.name, parent: t, owner: owner}
}

// Put writes directly into t, bypassing copy-on-write. It is meant for
// authoring shared tables before they are handed to instances.
func (t *StyleTable) Put(p Param, v Value) {
	if p < ParamCount {
		t.slots[p] = v
	}
}

// PutCustom is Put for unmodeled properties.
func (t *StyleTable) PutCustom(name, value string) {
	if t.custom == nil {
		t.custom = make(map[string]string)
	}
	t.custom[name] = value
}
