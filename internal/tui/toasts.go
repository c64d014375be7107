package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/dataquery/internal/notify"
)

const (
	toastTTL      = 3 * time.Second
	maxToastCount = 3
)

type toast struct {
	id       int
	message  string
	severity notify.Severity
}

type toastExpiredMsg struct {
	id int
}

// toastTray is the on-screen notifier. Notify only queues; the update loop
// picks up pending toasts through flush and schedules their expiry.
type toastTray struct {
	nextID  int
	visible []toast
	pending []int
}

func (t *toastTray) Notify(message string, severity notify.Severity) {
	t.nextID++
	t.visible = append(t.visible, toast{id: t.nextID, message: message, severity: severity})
	if len(t.visible) > maxToastCount {
		t.visible = t.visible[len(t.visible)-maxToastCount:]
	}
	t.pending = append(t.pending, t.nextID)
}

func (t *toastTray) flush() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(t.pending))
	for _, id := range t.pending {
		id := id
		cmds = append(cmds, tea.Tick(toastTTL, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	t.pending = nil
	return tea.Batch(cmds...)
}

func (t *toastTray) expire(id int) {
	for i, item := range t.visible {
		if item.id == id {
			t.visible = append(t.visible[:i], t.visible[i+1:]...)
			return
		}
	}
}

func (t *toastTray) view(width int) string {
	if len(t.visible) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}
	lines := make([]string, 0, len(t.visible))
	for _, item := range t.visible {
		style := toastSuccessStyle
		icon := "✔"
		switch item.severity {
		case notify.SeverityWarning:
			style = toastWarningStyle
			icon = "!"
		case notify.SeverityError:
			style = toastErrorStyle
			icon = "✖"
		}
		lines = append(lines, style.Render(wordwrap.String(icon+" "+item.message, width)))
	}
	return strings.Join(lines, "\n")
}
