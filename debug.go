package canopy

import (
	"fmt"
	"time"
)

// debugStats holds per-pump timing and scheduler counts.
// Only populated when the context is in debug mode.
type debugStats struct {
	pumpTime    time.Duration
	elapsed     float64
	tasksBefore int
	tasksAfter  int
	actions     int
}

// debugLog prints pump stats to the context's log output.
func (c *Context) debugLog(stats debugStats) {
	if !c.cfg.Debug {
		return
	}
	_, _ = fmt.Fprintf(c.log,
		"[canopy] pump: %.2fms in %v | tasks: %d -> %d | queued actions: %d\n",
		stats.elapsed, stats.pumpTime, stats.tasksBefore, stats.tasksAfter, stats.actions)
}

// debugCheckDisposed panics with a descriptive message when a disposed
// element is used in a tree operation. Callers only invoke it in debug mode.
func debugCheckDisposed(e *Element, op string) {
	if e.disposed {
		panic(fmt.Sprintf("canopy debug: %s on disposed element %q (ID was %d)", op, e.Name, e.lastID))
	}
}

// debugMaxTreeDepth is the depth above which a warning is logged.
const debugMaxTreeDepth = 32

func (c *Context) debugCheckTreeDepth(e *Element) {
	depth := 0
	for p := e; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		c.logf("warning: tree depth %d exceeds %d (element %q)", depth, debugMaxTreeDepth, e.Name)
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func (c *Context) debugCheckChildCount(e *Element) {
	if len(e.children) > debugMaxChildCount {
		c.logf("warning: element %q has %d children (threshold %d)", e.Name, len(e.children), debugMaxChildCount)
	}
}
