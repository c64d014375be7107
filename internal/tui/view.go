package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/dataquery/internal/tips"
)

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	if m.answerVisible() {
		return m.clip(m.page(m.answerPanelView(m.answerBody())))
	}
	if view := m.page(m.tipsView()); m.fits(view) {
		return view
	}
	return m.clip(m.page(""))
}

// page stacks the header, form, main panel, toasts, status bar and, unless
// the window is too short for it, the key legend.
func (m *model) page(main string) string {
	parts := []string{
		m.heroView(),
		m.formView(),
		main,
		m.toasts.view(m.layout.wrapWidth(0)),
		m.sessionMeterView(),
	}
	if !m.hideLegend {
		parts = append(parts, m.keyLegendView())
	}
	return joinNonEmpty(parts)
}

func (m *model) fits(view string) bool {
	return m.layout.windowHeight <= 0 || lipgloss.Height(view) <= m.layout.windowHeight
}

// clip keeps the top of view when it is still taller than the window, so the
// header and the form stay on screen.
func (m *model) clip(view string) string {
	if m.fits(view) {
		return view
	}
	lines := strings.Split(view, "\n")
	return strings.Join(lines[:m.layout.windowHeight], "\n")
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		heroTitleStyle.Render(headerTitle),
		taglineStyle.Render(wordwrap.String(headerTagline, m.layout.wrapWidth(0))),
	)
}

func (m *model) formView() string {
	body := joinLines([]string{
		sectionHeaderStyle.Render(formTitle),
		helperStyle.Render(inputLabel),
		m.input.View(),
		m.askButtonView(),
	})
	return panelStyle.Width(m.layout.wrapWidth(2)).Render(body)
}

func (m *model) askButtonView() string {
	switch {
	case m.stage == stageLoading:
		return buttonIdle.Render(fmt.Sprintf("%s %s", m.spinner.View(), askLoadingLabel))
	case strings.TrimSpace(m.input.Value()) == "":
		return buttonIdle.Render(askLabel)
	default:
		return lipgloss.JoinHorizontal(lipgloss.Center,
			buttonStyle.Render(askLabel),
			helperStyle.Render("  Enter to ask, Alt+Enter for a new line"),
		)
	}
}

func (m *model) answerBody() string {
	if m.stage == stageLoading {
		return fmt.Sprintf("%s %s", m.spinner.View(), helperStyle.Render(loadingCopy))
	}
	return m.viewport.View()
}

func (m *model) answerPanelView(body string) string {
	title := sectionHeaderStyle.Render(answerTitle)
	if m.answer != nil {
		arrow := "▾"
		if m.showDetails {
			arrow = "▴"
		}
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, helperStyle.Render(fmt.Sprintf("   [Tab] Details %s", arrow)))
	}

	parts := []string{title, body}
	if m.showDetails && m.answer != nil {
		parts = append(parts, m.detailsView())
	}
	return panelStyle.Width(m.layout.wrapWidth(2)).Render(joinLines(parts))
}

func (m *model) detailsView() string {
	wrap := m.layout.wrapWidth(8)
	lines := []string{
		sourceLabelStyle.Render(schemaSourceLbl),
		sourceValueStyle.Render("  " + m.answer.BestSummaryFile),
		"",
		contextLabelStyle.Render(schemaContextLbl),
		contextValueStyle.Render(indentMultiline(wordwrap.String(truncateSchemaSummary(m.answer.SchemaSummary), wrap), "  ")),
		"",
		helperStyle.Render(wordwrap.String("How it works: "+tips.HowItWorks, wrap)),
	}
	return detailsStyle.Render(strings.Join(lines, "\n"))
}

func (m *model) tipsView() string {
	items := tips.Build(tips.Options{DetailsKey: m.keys.Details.Help().Key})
	wrap := m.layout.wrapWidth(10)
	lines := []string{tipsTitleStyle.Render(tips.Title)}
	for _, item := range items {
		lines = append(lines, helperStyle.Render(indentHanging(wordwrap.String(item.Text, wrap), "• ", "  ")))
	}
	return tipsBoxStyle.Render(strings.Join(lines, "\n"))
}

func (m *model) sessionMeterView() string {
	stats := []string{
		fmt.Sprintf("State %s", m.stage),
		fmt.Sprintf("Questions %d", m.questions),
	}
	if m.stage == stageRevealing && m.reveal.Running() {
		stats = append(stats, fmt.Sprintf("Revealing %d/%d", m.reveal.Len(), m.reveal.Total()))
	}
	if m.lastJob != nil {
		stats = append(stats, fmt.Sprintf("Last %s %s", m.lastJob.Status, m.lastJob.Duration.Round(10*time.Millisecond)))
	}
	if m.config.Client != nil {
		stats = append(stats, m.config.Client.Endpoint())
	}
	style := statusBarStyle
	if m.stage == stageError {
		style = statusErrStyle
	}
	return style.Render(strings.Join(stats, "  •  "))
}

func (m *model) keyLegendView() string {
	var cells []string
	for _, binding := range m.keys.legend() {
		help := binding.Help()
		cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Render(help.Key),
			keyDescStyle.Render(" "+help.Desc+" "),
		))
	}
	rows := []string{}
	const columns = 4
	for i := 0; i < len(cells); i += columns {
		end := i + columns
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}
	return strings.Join(rows, "\n")
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func joinLines(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n")
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func indentHanging(text, first, rest string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = first + line
			continue
		}
		lines[i] = rest + line
	}
	return strings.Join(lines, "\n")
}
