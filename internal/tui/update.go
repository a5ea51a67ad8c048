package tui

import (
	"strings"

	"wsparse/internal/model"
	"wsparse/internal/warpscript"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgAnalysisReady indicates that the script has been analysed.
type MsgAnalysisReady model.Analysis

// MsgError indicates an error occurred.
type MsgError error

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 4 // minus footer/header
		return m, nil

	case MsgAnalysisReady:
		m.Loading = false
		m.Err = nil
		m.Result = model.Analysis(msg)
		m.applyFilter()
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				// Keep the filter, leave input mode.
				m.InputMode = false
				m.InputBuffer.Blur()
				m.applyFilter()
				return m, nil
			case tea.KeyEsc:
				m.clearFilter()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.FilterActive {
				m.clearFilter()
				return m, nil
			}
			if m.ShowHeader {
				m.ShowHeader = false
				return m, nil
			}
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
			}
		case "home", "g":
			m.SelectedIdx = 0
		case "end", "G":
			if len(m.FilteredIndices) > 0 {
				m.SelectedIdx = len(m.FilteredIndices) - 1
			}
		case "d":
			m.ShowHeader = !m.ShowHeader
		case "r":
			m.Loading = true
			return m, InitAnalysisCmd(m.Path, m.Analyzer)
		case "/":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
	}

	return m, cmd
}

func (m *AppModel) clearFilter() {
	m.InputMode = false
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
	m.applyFilter()
}

// applyFilter keeps the statements containing the filter text.
func (m *AppModel) applyFilter() {
	term := strings.ToLower(m.InputBuffer.Value())
	m.FilterActive = term != ""

	filtered := make([]int, 0, len(m.Result.Statements))
	for i, tok := range m.Result.Statements {
		if term == "" || strings.Contains(strings.ToLower(tok.Text), term) {
			filtered = append(filtered, i)
		}
	}
	m.FilteredIndices = filtered

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		if len(m.FilteredIndices) > 0 {
			m.SelectedIdx = len(m.FilteredIndices) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
}

// SelectedStatement returns the statement under the cursor.
func (m AppModel) SelectedStatement() (model.Token, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return model.Token{}, false
	}
	return m.Result.Statements[m.FilteredIndices[m.SelectedIdx]], true
}

// InitAnalysisCmd reads and analyses the script in background.
func InitAnalysisCmd(path string, analyzer *warpscript.Analyzer) tea.Cmd {
	return func() tea.Msg {
		src, err := warpscript.ReadScript(path)
		if err != nil {
			return MsgError(err)
		}
		return MsgAnalysisReady(analyzer.Analyze(src))
	}
}
