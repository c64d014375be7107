package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor    = lipgloss.Color("#2563eb")
	accentSoft     = lipgloss.Color("#93c5fd")
	successColor   = lipgloss.Color("#15803d")
	warningColor   = lipgloss.Color("#b45309")
	dangerColor    = lipgloss.Color("#b91c1c")
	mutedTextColor = lipgloss.Color("244")

	heroTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	taglineStyle       = lipgloss.NewStyle().Foreground(mutedTextColor).Italic(true)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	helperStyle        = lipgloss.NewStyle().Foreground(mutedTextColor)
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	buttonStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(accentColor).Padding(0, 3)
	buttonIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb")).Background(lipgloss.Color("#6b7280")).Padding(0, 3)
	detailsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(lipgloss.Color("#d1d5db")).PaddingTop(1)

	sourceLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	sourceValueStyle  = lipgloss.NewStyle().Foreground(accentSoft)
	contextLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	contextValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#86efac"))

	tipsBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(successColor).Padding(0, 2)
	tipsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)

	toastSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(successColor).Padding(0, 1)
	toastWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#fbbf24")).Padding(0, 1)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(dangerColor).Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(warningColor).Padding(0, 1)
	keyStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
)
