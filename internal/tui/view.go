package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wsparse/internal/model"
	"wsparse/internal/warpscript"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	repoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Analysing script... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}

	leftWidth, rightWidth, height := m.panelSize()

	var details string
	if m.ShowHeader {
		details = m.headerView()
	} else {
		details = m.detailsView()
	}
	vp := m.DetailsViewport
	vp.Width = rightWidth
	vp.Height = height
	vp.SetContent(details)

	left := panel(leftWidth, height, activeColor).Render(m.statementList(leftWidth, height))
	right := panel(rightWidth, height, borderColor).Render(vp.View())

	header := titleStyle.Render(fmt.Sprintf("wsparse %s  %s", model.Version, m.Path))
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.footer(),
	)
}

// panelSize returns the width of both panels and their interior height.
func (m AppModel) panelSize() (left, right, height int) {
	// Borders and margins take 6 columns; title, footer and borders 6 rows.
	width := max(m.WindowSize.Width-6, 20)
	left = width / 2
	right = width - left
	height = max(m.WindowSize.Height-6, 6) - 2
	return left, right, height
}

func panel(width, height int, color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Border(lipgloss.NormalBorder()).
		BorderForeground(color)
}

// scrollWindow returns the range of a list of n items to display so that
// the selected item stays near the middle.
func scrollWindow(selected, n, visible int) (int, int) {
	if n <= visible {
		return 0, n
	}
	start := min(max(selected-visible/2, 0), n-visible)
	return start, start + visible
}

func (m AppModel) statementList(width, height int) string {
	var b strings.Builder
	title := fmt.Sprintf("Statements (%d)", len(m.Result.Statements))
	if m.FilterActive {
		title = fmt.Sprintf("Statements (%d of %d)", len(m.FilteredIndices), len(m.Result.Statements))
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	// Title and blank line take two rows.
	startIdx, endIdx := scrollWindow(m.SelectedIdx, len(m.FilteredIndices), max(height-2, 1))

	repoIdx := repositoryLiterals(m.Result.Statements)

	for i := startIdx; i < endIdx; i++ {
		idx := m.FilteredIndices[i]
		tok := m.Result.Statements[idx]

		text := tok.Text
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = strings.TrimRight(text[:nl], "\r") + " ..."
		}
		line := fmt.Sprintf("%4d %s %s", idx, warpscript.KindIcon(tok.Kind), text)

		// Truncate
		if len(line) > width-2 && width > 5 {
			line = line[:width-5] + "..."
		}

		style := normalStyle
		switch {
		case i == m.SelectedIdx:
			style = selectedStyle
		case repoIdx[idx]:
			style = repoStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m AppModel) detailsView() string {
	tok, ok := m.SelectedStatement()
	if !ok {
		return dimStyle.Render("No statement selected")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Statement"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Kind:     %s\n", tok.Kind)
	fmt.Fprintf(&b, "Position: line %d, col %d (bytes %d-%d)\n", tok.Line, tok.Col, tok.Start, tok.End)
	if tok.Text == warpscript.AddRepoStatement {
		b.WriteString(adviceStyle.Render("Registers the repository named by the previous literal."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Context"))
	b.WriteString("\n\n")

	ctx := model.GetLineContext(m.Result.Source, tok.Line)
	if ctx.ErrorMsg != "" {
		b.WriteString(dimStyle.Render(ctx.ErrorMsg))
		return b.String()
	}
	if ctx.HasBefore2 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%4d  %s", tok.Line-2, ctx.Before2)) + "\n")
	}
	if ctx.HasBefore1 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%4d  %s", tok.Line-1, ctx.Before1)) + "\n")
	}
	b.WriteString(normalStyle.Render(fmt.Sprintf("%4d> %s", tok.Line, ctx.Target)) + "\n")
	if ctx.HasAfter1 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%4d  %s", tok.Line+1, ctx.After1)) + "\n")
	}
	if ctx.HasAfter2 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%4d  %s", tok.Line+2, ctx.After2)) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m AppModel) headerView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Execution"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Endpoint: %s\n", m.Result.Endpoint)
	fmt.Fprintf(&b, "Preview:  %s\n", m.Result.Preview)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Directives"))
	b.WriteString("\n\n")
	if len(m.Result.Directives) == 0 {
		b.WriteString(dimStyle.Render("(none)") + "\n")
	}
	for _, name := range warpscript.SortedDirectives(m.Result.Directives) {
		fmt.Fprintf(&b, "%s %s = %s\n", model.IconDirective, name, m.Result.Directives[name])
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Repositories"))
	b.WriteString("\n\n")
	if len(m.Result.Repositories) == 0 {
		b.WriteString(dimStyle.Render("(none)") + "\n")
	}
	for i, repo := range m.Result.Repositories {
		b.WriteString(repoStyle.Render(fmt.Sprintf("%d. %s %s", i+1, model.IconRepo, repo)) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m AppModel) footer() string {
	if m.InputMode {
		return "Filter: " + m.InputBuffer.View()
	}
	help := "↑/↓ move • / filter • d directives • r reload • q quit"
	if m.FilterActive {
		help = fmt.Sprintf("filter %q • esc clear • ", m.InputBuffer.Value()) + help
	}
	return dimStyle.Render(help)
}

// repositoryLiterals marks the literals consumed by a WF.ADDREPO.
func repositoryLiterals(tokens []model.Token) map[int]bool {
	marked := make(map[int]bool)
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Text != warpscript.AddRepoStatement {
			continue
		}
		if lit := tokens[i-1].Text; tokens[i-1].Kind == model.KindString && len(lit) >= 2 && lit[len(lit)-1] == lit[0] {
			marked[i-1] = true
		}
	}
	return marked
}
