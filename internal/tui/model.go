package tui

import (
	"wsparse/internal/model"
	"wsparse/internal/warpscript"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Path     string
	Analyzer *warpscript.Analyzer
	Result   model.Analysis
	Loading  bool
	Err      error

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg

	// View Modes
	ShowHeader bool // Directives and repositories instead of statement details

	// Filter State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of Statements to show
	FilterActive    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state for the script at path.
func InitialModel(path string, analyzer *warpscript.Analyzer) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Statement text..."
	ti.CharLimit = 50
	ti.Width = 20

	return AppModel{
		Path:        path,
		Analyzer:    analyzer,
		Loading:     true,
		InputBuffer: ti,
		SelectedIdx: 0,
	}
}

// Init starts loading the script.
func (m AppModel) Init() tea.Cmd {
	return InitAnalysisCmd(m.Path, m.Analyzer)
}
