package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const tickInterval = 150 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// tickMsg drives the spinner animation.
type tickMsg time.Time

// row holds the displayed state for a single tool.
type row struct {
	Tool    string
	Version string
	Status  string
	Detail  string
}

// DownloadModel is a bubbletea model rendering per-tool download progress.
type DownloadModel struct {
	rows     []row
	rowIndex map[string]int
	done     bool
	err      error
	tick     int
}

// NewDownloadModel creates a progress model pre-populated with one pending
// row per tool.
func NewDownloadModel(tools map[string]string) DownloadModel {
	m := DownloadModel{rowIndex: make(map[string]int, len(tools))}
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	// Stable row order regardless of map iteration.
	sort.Strings(names)
	for _, name := range names {
		m.rowIndex[name] = len(m.rows)
		m.rows = append(m.rows, row{Tool: name, Version: tools[name], Status: "pending"})
	}
	return m
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init satisfies the tea.Model interface.
func (m DownloadModel) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies the tea.Model interface.
func (m DownloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick++
		if m.done {
			return m, nil
		}
		return m, scheduleTick()

	case StatusMsg:
		if idx, ok := m.rowIndex[msg.Tool]; ok {
			m.rows[idx].Status = msg.Status
			m.rows[idx].Detail = msg.Detail
		}
		return m, nil

	case WorkDoneMsg:
		m.done = true
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// Err returns the fatal error recorded by an ErrorMsg, if any.
func (m DownloadModel) Err() error {
	return m.err
}

// View satisfies the tea.Model interface.
func (m DownloadModel) View() string {
	if m.done && m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	toolWidth, versionWidth, statusWidth := len("TOOL"), len("VERSION"), len("STATUS")
	for _, r := range m.rows {
		if len(r.Tool) > toolWidth {
			toolWidth = len(r.Tool)
		}
		if len(r.Version) > versionWidth {
			versionWidth = len(r.Version)
		}
		if len(r.Status) > statusWidth {
			statusWidth = len(r.Status)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s  %s\n",
		HeaderStyle.Render(pad("TOOL", toolWidth)),
		HeaderStyle.Render(pad("VERSION", versionWidth)),
		HeaderStyle.Render(pad("STATUS", statusWidth)),
		HeaderStyle.Render("DETAIL"))

	for _, r := range m.rows {
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			pad(r.Tool, toolWidth),
			pad(r.Version, versionWidth),
			StatusStyle(r.Status).Render(pad(r.Status, statusWidth)),
			r.Detail)
	}

	if !m.done {
		settled := 0
		for _, r := range m.rows {
			switch r.Status {
			case "cached", "verified", "system", "unverified", "disabled", "error":
				settled++
			}
		}
		spinner := spinnerFrames[m.tick%len(spinnerFrames)]
		fmt.Fprintf(&b, "\n%s Resolving %d/%d...\n", spinner, settled, len(m.rows))
	}

	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
