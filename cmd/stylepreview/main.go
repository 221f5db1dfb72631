// stylepreview is a terminal browser for canopy style sheets. It loads one
// or more YAML sheets and shows, for each style and pseudo-state, which
// variant resolves and where every parameter value comes from.
//
// Usage:
//
//	stylepreview [-config canopy.yaml] [sheet.yaml ...]
//
// Keys: tab/shift+tab cycle styles, h/s/d toggle hovered/selected/disabled,
// q quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/phanxgames/canopy"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorText    = lipgloss.Color("#e6edf3")
	colorDim     = lipgloss.Color("#8b949e")
	colorMuted   = lipgloss.Color("#484f58")
	colorAccent  = lipgloss.Color("#58a6ff")
	colorOn      = lipgloss.Color("#3fb950")
	colorWarn    = lipgloss.Color("#d29922")
	colorDivider = lipgloss.Color("#30363d")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	dimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(lipgloss.Color("#1f6feb")).Padding(0, 1)
	itemStyle     = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	flagOnStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorOn)
	warnStyle     = lipgloss.NewStyle().Foreground(colorWarn)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDivider).Padding(0, 1)
	nameColStyle  = lipgloss.NewStyle().Width(22).Foreground(colorText)
	valueColStyle = lipgloss.NewStyle().Width(28)
)

type model struct {
	sheet *canopy.StyleSheet
	names []string
	index int

	hovered  bool
	selected bool
	disabled bool
}

func newModel(sheet *canopy.StyleSheet) model {
	return model{sheet: sheet, names: sheet.Names()}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "j":
			m.index = (m.index + 1) % len(m.names)
		case "shift+tab", "up", "k":
			m.index = (m.index + len(m.names) - 1) % len(m.names)
		case "h":
			m.hovered = !m.hovered
		case "s":
			m.selected = !m.selected
		case "d":
			m.disabled = !m.disabled
		}
	}
	return m, nil
}

func (m model) state() canopy.State {
	return canopy.StateFromFlags(!m.disabled, m.selected, m.hovered)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("canopy stylepreview"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d styles", len(m.names))))
	b.WriteString("\n\n")

	items := make([]string, len(m.names))
	for i, name := range m.names {
		if i == m.index {
			items[i] = selectedStyle.Render(name)
		} else {
			items[i] = itemStyle.Render(name)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, items...))
	b.WriteString("\n\n")

	set, err := m.sheet.Style(m.names[m.index])
	if err != nil {
		b.WriteString(warnStyle.Render(err.Error()))
		return b.String()
	}
	st := m.state()
	table, active := set.Resolve(st)

	b.WriteString(m.flag("h", "hovered", m.hovered) + "  ")
	b.WriteString(m.flag("s", "selected", m.selected) + "  ")
	b.WriteString(m.flag("d", "disabled", m.disabled) + "\n")
	line := fmt.Sprintf("state %s resolves to %s", st, active)
	if st != active {
		b.WriteString(warnStyle.Render(line))
	} else {
		b.WriteString(dimStyle.Render(line))
	}
	b.WriteString("\n\n")

	b.WriteString(panelStyle.Render(renderParams(table)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("tab: next style  h/s/d: toggle state  q: quit"))
	return b.String()
}

func (m model) flag(key, name string, on bool) string {
	label := fmt.Sprintf("[%s] %s", key, name)
	if on {
		return flagOnStyle.Render(label)
	}
	return mutedStyle.Render(label)
}

// renderParams lists every modeled parameter with its effective value and
// the table in the chain that supplies it.
func renderParams(t *canopy.StyleTable) string {
	rows := make([]string, 0, canopy.ParamCount)
	for p := canopy.Param(0); p < canopy.ParamCount; p++ {
		v, ok := t.Lookup(p)
		source := "default"
		if ok {
			source = definingTable(t, p)
		} else {
			v = p.Info().Default
		}
		value := valueColStyle.Render(v.String())
		if c, err := v.Color(); err == nil {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(fmt.Sprintf("#%06x", c.Hex()))).Render("   ")
			value = valueColStyle.Render(swatch + " " + v.String())
		}
		src := mutedStyle.Render(source)
		if ok {
			src = dimStyle.Render(source)
		}
		rows = append(rows, nameColStyle.Render(p.String())+value+src)
	}
	return strings.Join(rows, "\n")
}

func definingTable(t *canopy.StyleTable, p canopy.Param) string {
	for s := t; s != nil; s = s.Parent() {
		if s.Local(p).IsSet() {
			return s.Name()
		}
	}
	return "default"
}

func loadSheet(configPath string, paths []string) (*canopy.StyleSheet, error) {
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg, err := canopy.LoadConfig(data)
		if err != nil {
			return nil, err
		}
		paths = append(cfg.StyleSheets, paths...)
	}
	sheet := canopy.NewStyleSheet()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := sheet.Load(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return sheet, nil
}

func main() {
	configPath := flag.String("config", "", "canopy config file listing style sheets")
	flag.Parse()

	sheet, err := loadSheet(*configPath, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "stylepreview: %v\n", err)
		os.Exit(1)
	}
	if sheet.Len() == 0 {
		fmt.Fprintln(os.Stderr, "stylepreview: no styles loaded")
		os.Exit(2)
	}

	p := tea.NewProgram(newModel(sheet), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "stylepreview: %v\n", err)
		os.Exit(1)
	}
}
