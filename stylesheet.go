package canopy

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// styleDoc is one style as written in a style sheet.
//
//	button:
//	  parent: base
//	  hovered: button-hover
//	  selected: button-on
//	  disabled: button-off
//	  params:
//	    color: "#e0e0e0"
//	    padding: 4 8
type styleDoc struct {
	Parent   string            `yaml:"parent,omitempty"`
	Hovered  string            `yaml:"hovered,omitempty"`
	Selected string            `yaml:"selected,omitempty"`
	Disabled string            `yaml:"disabled,omitempty"`
	Params   map[string]string `yaml:"params,omitempty"`
}

type sheetDoc struct {
	Styles map[string]styleDoc `yaml:"styles"`
}

// StyleSheet is a registry of named StyleSets built from declarative style
// descriptions. Variant references are wired into combined-state slots once,
// at load time.
type StyleSheet struct {
	docs map[string]styleDoc
	sets map[string]*StyleSet
}

// NewStyleSheet returns an empty style sheet.
func NewStyleSheet() *StyleSheet {
	return &StyleSheet{
		docs: make(map[string]styleDoc),
		sets: make(map[string]*StyleSet),
	}
}

// LoadStyleSheet parses a YAML style sheet.
func LoadStyleSheet(data []byte) (*StyleSheet, error) {
	ss := NewStyleSheet()
	if err := ss.Load(data); err != nil {
		return nil, err
	}
	return ss, nil
}

// Load parses a YAML document and merges its styles into the sheet. Styles
// with an existing name replace the previous definition in place: sets
// already handed out keep their identity, so elements bound to them read the
// new tables and keep their private writes. Parents and variant references
// may point at styles from earlier documents. On error the sheet is left
// unchanged.
func (ss *StyleSheet) Load(data []byte) error {
	var doc sheetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse style sheet: %w", err)
	}
	docs := maps.Clone(ss.docs)
	for name, d := range doc.Styles {
		docs[strings.TrimSpace(name)] = d
	}
	sets, err := buildStyleSets(docs)
	if err != nil {
		return err
	}
	ss.docs = docs
	for name, set := range sets {
		if old, ok := ss.sets[name]; ok {
			old.replace(set)
			continue
		}
		ss.sets[name] = set
	}
	return nil
}

// Register adds a programmatically built set under its name, replacing any
// loaded style with the same name. Views bound to the replaced set keep it.
func (ss *StyleSheet) Register(set *StyleSet) {
	ss.sets[set.Name()] = set
}

// Style returns the set registered under name.
func (ss *StyleSheet) Style(name string) (*StyleSet, error) {
	set, ok := ss.sets[name]
	if !ok {
		return nil, fmt.Errorf("style %q: %w", name, ErrUnknownStyle)
	}
	return set, nil
}

// Names returns the registered style names in sorted order.
func (ss *StyleSheet) Names() []string {
	return slices.Sorted(maps.Keys(ss.sets))
}

// Len returns the number of registered styles.
func (ss *StyleSheet) Len() int {
	return len(ss.sets)
}

// sheetBuilder turns style documents into tables. Base tables (one per
// style, chained through "parent") are built first; variants are then flattened
// from them.
type sheetBuilder struct {
	docs     map[string]styleDoc
	bases    map[string]*StyleTable
	visiting map[string]bool
}

func buildStyleSets(docs map[string]styleDoc) (map[string]*StyleSet, error) {
	b := &sheetBuilder{
		docs:     docs,
		bases:    make(map[string]*StyleTable, len(docs)),
		visiting: make(map[string]bool),
	}
	names := slices.Sorted(maps.Keys(docs))
	for _, name := range names {
		if _, err := b.base(name); err != nil {
			return nil, err
		}
	}
	sets := make(map[string]*StyleSet, len(names))
	for _, name := range names {
		set, err := NewStyleSet(name, b.bases[name])
		if err != nil {
			return nil, err
		}
		if err := b.wire(set, StateNormal, name, name); err != nil {
			return nil, err
		}
		sets[name] = set
	}
	return sets, nil
}

// base returns the shared base table for name, building its parent chain
// first.
func (b *sheetBuilder) base(name string) (*StyleTable, error) {
	if t, ok := b.bases[name]; ok {
		return t, nil
	}
	doc, ok := b.docs[name]
	if !ok {
		return nil, fmt.Errorf("style %q: %w", name, ErrUnknownStyle)
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("style %q: parent cycle", name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	var parent *StyleTable
	if doc.Parent != "" {
		p, err := b.base(doc.Parent)
		if err != nil {
			return nil, fmt.Errorf("style %q parent: %w", name, err)
		}
		parent = p
	}

	t := NewStyleTable(name, parent)
	for _, attr := range slices.Sorted(maps.Keys(doc.Params)) {
		raw := doc.Params[attr]
		p, ok := ParamByName(attr)
		if !ok {
			t.PutCustom(attr, raw)
			continue
		}
		v, err := ParseParam(p, raw)
		if err != nil {
			return nil, fmt.Errorf("load style %q: %w", name, err)
		}
		t.Put(p, v)
	}
	b.bases[name] = t
	return t, nil
}

// variantRef pairs a flag with the reference naming its style.
type variantRef struct {
	flag State
	ref  string
}

// wire follows the hovered, selected and disabled references of style cur,
// reached at state from, and links each into the combined slot from|flag.
// The first path to reach a combination wins. References back to root (the
// style being built) or to cur itself are ignored, so a variant that names
// its own Normal style simply is not registered and resolution falls back.
func (b *sheetBuilder) wire(set *StyleSet, from State, root, cur string) error {
	doc := b.docs[cur]
	refs := [...]variantRef{
		{StateHovered, doc.Hovered},
		{StateSelected, doc.Selected},
		{StateDisabled, doc.Disabled},
	}
	for _, r := range refs {
		if r.ref == "" || from&r.flag != 0 || r.ref == root || r.ref == cur {
			continue
		}
		target := from | r.flag
		if set.Has(target) {
			continue
		}
		src, ok := b.bases[r.ref]
		if !ok {
			return fmt.Errorf("style %q %s reference %q: %w", cur, strings.ToLower(r.flag.String()), r.ref, ErrUnknownStyle)
		}
		variant := flatten(fmt.Sprintf("%s:%s", root, target), src, set.Variant(from))
		set.Register(target, variant)
		if err := b.wire(set, target, root, r.ref); err != nil {
			return err
		}
	}
	return nil
}

// flatten copies every value set along src's chain into a new shared table
// whose parent is parent. Values nearer src win.
func flatten(name string, src, parent *StyleTable) *StyleTable {
	t := NewStyleTable(name, parent)
	for s := src; s != nil; s = s.parent {
		for i, v := range s.slots {
			if v.IsSet() && !t.slots[i].IsSet() {
				t.slots[i] = v
			}
		}
		for k, v := range s.custom {
			if _, ok := t.custom[k]; !ok {
				t.PutCustom(k, v)
			}
		}
	}
	return t
}
