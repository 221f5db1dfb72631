package canopy

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Context is one UI session. It owns everything the subsystems share: the
// scheduler, the style sheet, the owner ID counter and debug settings.
// Independent contexts do not interact.
type Context struct {
	cfg       Config
	scheduler *Scheduler
	styles    *StyleSheet
	plain     *StyleSet
	nextID    OwnerID
	log       io.Writer
}

// NewContext creates a session with the given configuration.
func NewContext(cfg Config) *Context {
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}
	plain, _ := NewStyleSet("", NewStyleTable("", nil))
	return &Context{
		cfg:       cfg,
		scheduler: NewScheduler(),
		styles:    NewStyleSheet(),
		plain:     plain,
		log:       out,
	}
}

// Config returns the session configuration.
func (c *Context) Config() Config { return c.cfg }

// Scheduler returns the session scheduler.
func (c *Context) Scheduler() *Scheduler { return c.scheduler }

// Styles returns the session style sheet.
func (c *Context) Styles() *StyleSheet { return c.styles }

// NewOwnerID hands out a fresh, non-zero owner identity.
func (c *Context) NewOwnerID() OwnerID {
	c.nextID++
	return c.nextID
}

// SetDebugMode enables or disables debug mode.
func (c *Context) SetDebugMode(enabled bool) {
	c.cfg.Debug = enabled
}

// Debug reports whether debug mode is on.
func (c *Context) Debug() bool { return c.cfg.Debug }

// LoadStyleSheet merges a YAML style sheet into the session styles.
func (c *Context) LoadStyleSheet(data []byte) error {
	if err := c.styles.Load(data); err != nil {
		return err
	}
	c.logf("styles: %d registered", c.styles.Len())
	return nil
}

// LoadStyleSheets reads every path in Config.StyleSheets from fsys, in
// order, and merges them. The first failure stops loading.
func (c *Context) LoadStyleSheets(fsys fs.FS) error {
	for _, path := range c.cfg.StyleSheets {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("load style sheet %s: %w", path, err)
		}
		if err := c.LoadStyleSheet(data); err != nil {
			return fmt.Errorf("load style sheet %s: %w", path, err)
		}
	}
	return nil
}

// Update advances the session by one engine tick. The elapsed time is
// derived from Config.TPS, or ebiten.TPS() when unset.
func (c *Context) Update() {
	tps := c.cfg.TPS
	if tps <= 0 {
		tps = ebiten.TPS()
	}
	c.Pump(1000 / float64(tps))
}

// Pump advances the session clock by elapsedMs.
func (c *Context) Pump(elapsedMs float64) {
	if !c.cfg.Debug {
		c.scheduler.Pump(elapsedMs)
		return
	}
	t0 := time.Now()
	before := c.scheduler.Len()
	c.scheduler.Pump(elapsedMs)
	c.debugLog(debugStats{
		pumpTime:    time.Since(t0),
		elapsed:     elapsedMs,
		tasksBefore: before,
		tasksAfter:  c.scheduler.Len(),
		actions:     c.scheduler.PendingActions(),
	})
}

// logf writes a debug line. No-op unless debug mode is on.
func (c *Context) logf(format string, args ...any) {
	if !c.cfg.Debug {
		return
	}
	_, _ = fmt.Fprintf(c.log, "[canopy] "+format+"\n", args...)
}
