// Package tui provides a terminal user interface for the drum part splitter
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/like-daffy/midi-drum-part-splitter/pkg/mapping"
	"github.com/like-daffy/midi-drum-part-splitter/pkg/splitter"
)

// Kit-inspired color scheme (warm drum-room tones)
var (
	brassGold  = lipgloss.Color("#FFB627")
	shellAmber = lipgloss.Color("#FF7F11")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(brassGold).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(brassGold).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(shellAmber).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(brassGold).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brassGold).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateMappingPicker
	StateFilePicker
	StateSplitting
	StateResult
)

// MenuItem represents a menu option
type MenuItem struct {
	Title         string
	Description   string
	CustomMapping bool
	Template      bool
}

var menuItems = []MenuItem{
	{Title: "Split (default mapping)", Description: "Split a drum MIDI file using the built-in mapping"},
	{Title: "Split (custom mapping)", Description: "Pick a YAML mapping, then a drum MIDI file to split", CustomMapping: true},
	{Title: "Export default template", Description: "Save the built-in mapping as drum-mapping.yaml in the current directory", Template: true},
	{Title: "Exit", Description: "Exit the application"},
}

// Model represents the TUI model
type Model struct {
	state        State
	menuIndex    int
	filePicker   filepicker.Model
	spinner      spinner.Model
	mappingFile  string
	selectedFile string
	saved        []string
	skipped      []string
	err          error
	width        int
	height       int
}

// splitDoneMsg signals split completion
type splitDoneMsg struct {
	saved   []string
	skipped []string
	err     error
}

// templateDoneMsg signals template export completion
type templateDoneMsg struct {
	path string
	err  error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New() Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".mid", ".midi"}
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brassGold)

	return Model{
		state:      StateMenu,
		menuIndex:  0,
		filePicker: fp,
		spinner:    s,
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The pickers need to receive all messages
	if m.state == StateFilePicker || m.state == StateMappingPicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			if m.state == StateMappingPicker {
				m.mappingFile = path
				m.state = StateFilePicker
				m.filePicker.AllowedTypes = []string{".mid", ".midi"}
				return m, m.filePicker.Init()
			}
			m.selectedFile = path
			m.state = StateSplitting
			return m, tea.Batch(m.spinner.Tick, m.performSplit())
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case splitDoneMsg:
		m.state = StateResult
		m.saved = msg.saved
		m.skipped = msg.skipped
		m.err = msg.err
		return m, nil

	case templateDoneMsg:
		m.state = StateResult
		if msg.err == nil {
			m.saved = []string{msg.path}
		}
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		if m.menuIndex == len(menuItems)-1 {
			return m, tea.Quit
		}
		item := menuItems[m.menuIndex]
		if item.Template {
			m.state = StateSplitting
			return m, tea.Batch(m.spinner.Tick, exportTemplate())
		}
		m.mappingFile = ""
		if item.CustomMapping {
			m.state = StateMappingPicker
			m.filePicker.AllowedTypes = []string{".yaml", ".yml"}
		} else {
			m.state = StateFilePicker
			m.filePicker.AllowedTypes = []string{".mid", ".midi"}
		}
		return m, m.filePicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.mappingFile = ""
		m.selectedFile = ""
		m.saved = nil
		m.skipped = nil
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) performSplit() tea.Cmd {
	mappingFile := m.mappingFile
	inputFile := m.selectedFile
	return func() tea.Msg {
		mp := mapping.Default()
		if mappingFile != "" {
			var err error
			mp, err = mapping.LoadFile(mappingFile)
			if err != nil {
				return splitDoneMsg{err: err}
			}
		}

		res, err := splitter.SplitFile(inputFile, mp)
		if err != nil {
			return splitDoneMsg{err: err}
		}
		// Surface the first write failure; parts already saved stay listed.
		for name, ferr := range res.Failed {
			return splitDoneMsg{saved: res.Saved, err: fmt.Errorf("part %s: %w", name, ferr)}
		}
		return splitDoneMsg{saved: res.Saved, skipped: res.Skipped}
	}
}

func exportTemplate() tea.Cmd {
	return func() tea.Msg {
		path := "drum-mapping.yaml"
		if err := os.WriteFile(path, []byte(mapping.DefaultDocument), 0644); err != nil {
			return templateDoneMsg{err: err}
		}
		return templateDoneMsg{path: path}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateMappingPicker:
		s.WriteString(m.viewPicker("SELECT YAML MAPPING"))
	case StateFilePicker:
		s.WriteString(m.viewPicker("SELECT MIDI FILE"))
	case StateSplitting:
		s.WriteString(m.viewSplitting())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" DRUM PART SPLITTER "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(shellAmber).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewPicker(title string) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" %s ", title)))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewSplitting() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SPLITTING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Splitting %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))
	if m.mappingFile != "" {
		s.WriteString(statusStyle.Render(fmt.Sprintf("  mapping: %s", filepath.Base(m.mappingFile))))
	} else {
		s.WriteString(statusStyle.Render("  mapping: built-in default"))
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Split failed: %s", m.err.Error())))
	} else {
		s.WriteString(titleStyle.Render(" SUCCESS "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ Done!"))
		s.WriteString("\n\n")
		for _, path := range m.saved {
			s.WriteString(fmt.Sprintf("Saved: %s\n", filepath.Base(path)))
		}
		if len(m.skipped) > 0 {
			s.WriteString(statusStyle.Render(fmt.Sprintf("Skipped empty parts: %s", strings.Join(m.skipped, ", "))))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
   ____  ____  _   _ __  __   ____  ____  _     ___ _____
  |  _ \|  _ \| | | |  \/  | / ___||  _ \| |   |_ _|_   _|
  | | | | |_) | | | | |\/| | \___ \| |_) | |    | |  | |
  | |_| |  _ <| |_| | |  | |  ___) |  __/| |___ | |  | |
  |____/|_| \_\\___/|_|  |_| |____/|_|   |_____|___| |_|
`
	return lipgloss.NewStyle().Foreground(brassGold).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
