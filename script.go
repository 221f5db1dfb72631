package canopy

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string `yaml:"action"`
	Target string `yaml:"target,omitempty"`
	Param  string `yaml:"param,omitempty"`
	Value  string `yaml:"value,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

// scriptDoc is the top-level structure of a script. JSON is accepted too.
//
//	frame_ms: 16
//	steps:
//	  - {action: hover, target: ok}
//	  - {action: wait, frames: 10}
//	  - {action: set, target: ok, param: alpha, value: 50%}
type scriptDoc struct {
	FrameMs float64      `yaml:"frame_ms"`
	Steps   []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"hover": true, "unhover": true,
	"select": true, "deselect": true,
	"enable": true, "disable": true,
	"set": true, "wait": true,
}

// ScriptRunner drives a Context frame by frame from a scripted list of
// pseudo-state changes, parameter writes and waits. Each Step executes at
// most one action and pumps the context once, so scripted runs are
// deterministic regardless of wall-clock time.
type ScriptRunner struct {
	steps     []scriptStep
	frameMs   float64
	cursor    int
	waitCount int
	frames    int
	done      bool
}

// LoadScript parses a YAML (or JSON) script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var doc scriptDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range doc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action != "wait" && st.Target == "" {
			return nil, fmt.Errorf("parse script: step %d: %s needs a target", i, st.Action)
		}
	}
	if doc.FrameMs <= 0 {
		doc.FrameMs = 1000.0 / 60
	}
	return &ScriptRunner{steps: doc.Steps, frameMs: doc.FrameMs}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Frames returns the number of frames pumped so far.
func (r *ScriptRunner) Frames() int {
	return r.frames
}

// Step advances the script by one frame: it executes the next action, if
// any, against the element tree under root and then pumps ctx.
func (r *ScriptRunner) Step(ctx *Context, root *Element) error {
	if r.done {
		return nil
	}
	if err := r.next(ctx, root); err != nil {
		r.done = true
		return err
	}
	ctx.Pump(r.frameMs)
	r.frames++
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}

// Run steps until the script is done.
func (r *ScriptRunner) Run(ctx *Context, root *Element) error {
	for !r.done {
		if err := r.Step(ctx, root); err != nil {
			return err
		}
	}
	return nil
}

func (r *ScriptRunner) next(ctx *Context, root *Element) error {
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		return nil
	}
	st := r.steps[r.cursor]
	r.cursor++

	if st.Action == "wait" {
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
		return nil
	}

	e := findElement(root, st.Target)
	if e == nil {
		return fmt.Errorf("script step %d: no element named %q", r.cursor-1, st.Target)
	}
	switch st.Action {
	case "hover", "unhover":
		e.SetHovered(st.Action == "hover")
	case "select", "deselect":
		e.SetSelected(st.Action == "select")
	case "enable", "disable":
		e.SetEnabled(st.Action == "enable")
	case "set":
		p, ok := ParamByName(st.Param)
		if !ok {
			return fmt.Errorf("script step %d: %q: %w", r.cursor-1, st.Param, ErrUnknownParam)
		}
		v, err := ParseParam(p, st.Value)
		if err != nil {
			return fmt.Errorf("script step %d: %w", r.cursor-1, err)
		}
		if err := e.SetParam(p, v); err != nil {
			return fmt.Errorf("script step %d: %w", r.cursor-1, err)
		}
	}
	ctx.logf("script: %s %s", st.Action, st.Target)
	return nil
}

// findElement returns the first element named name in root's subtree.
func findElement(root *Element, name string) *Element {
	var found *Element
	root.Walk(func(e *Element) bool {
		if found != nil {
			return false
		}
		if e.Name == name {
			found = e
			return false
		}
		return true
	})
	return found
}
