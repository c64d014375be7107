package tui

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/dataquery/internal/assistant"
	"github.com/csheth/dataquery/internal/logger"
	"github.com/csheth/dataquery/internal/markdown"
	"github.com/csheth/dataquery/internal/metrics"
	"github.com/csheth/dataquery/internal/notify"
	"github.com/csheth/dataquery/internal/reveal"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Client assistant.Client
	// Notifier receives every notification in addition to the on-screen tray.
	Notifier       notify.Notifier
	Renderer       markdown.Renderer
	RevealInterval time.Duration
	Logger         *logger.Logger
}

// Model is the data assistant screen.
type Model interface {
	tea.Model
	// Shutdown cancels any request still in flight.
	Shutdown()
}

// New returns a model ready to be mounted into a Program.
func New(config Config) Model {
	if config.Renderer == nil {
		config.Renderer = markdown.PlainRenderer{}
	}
	if config.RevealInterval <= 0 {
		config.RevealInterval = reveal.DefaultInterval
	}
	if config.Logger == nil {
		config.Logger = logger.Nop()
	}
	log := config.Logger.WithComponent("tui")

	layout := newPageLayout()
	keys := defaultKeyMap()

	input := textarea.New()
	input.Placeholder = inputPlaceholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.SetWidth(layout.contentWidth)
	input.SetHeight(layout.inputHeight)
	input.KeyMap.InsertNewline = keys.Newline
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(layout.contentWidth, layout.viewportHeight)
	vp.MouseWheelEnabled = true

	tray := &toastTray{}
	return &model{
		config:   config,
		stage:    stageIdle,
		keys:     keys,
		layout:   layout,
		input:    input,
		spinner:  spin,
		viewport: vp,
		jobs:     newJobBus(config.Logger),
		toasts:   tray,
		notifier: notify.Multi(tray, config.Notifier),
		log:      log,
	}
}

type model struct {
	config   Config
	stage    stage
	keys     keyMap
	layout   pageLayout
	input    textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	jobs     *jobBus
	toasts   *toastTray
	notifier notify.Notifier
	log      *logger.Logger

	reveal      reveal.Animator
	answer      *assistant.Answer
	answerView  string
	showDetails bool
	hideLegend  bool
	requestSeq  uint64
	activeJob   *jobSnapshot
	lastJob     *jobSnapshot
	questions   int
	quitting    bool
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Shutdown() {
	m.jobs.Stop()
	m.reveal.Cancel()
}

// Update handles msg, schedules expiry for any toast raised while handling
// it and refits the answer viewport to whatever the page now holds.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.fit()
	return m, tea.Batch(cmd, m.toasts.flush())
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.stage != stageLoading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if !m.answerVisible() {
			return nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case jobResultEnvelope:
		return m.handleJobResult(msg)
	case revealTickMsg:
		return m.advanceReveal(msg.token)
	case toastExpiredMsg:
		m.toasts.expire(msg.id)
		return nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return nil
	}
	if m.stage == stageLoading {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Shutdown()
		return tea.Quit
	case key.Matches(msg, m.keys.Back):
		switch {
		case m.stage == stageLoading:
			return m.abandon()
		case strings.TrimSpace(m.input.Value()) != "":
			m.input.Reset()
			return nil
		default:
			m.quitting = true
			m.Shutdown()
			return tea.Quit
		}
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Ask):
		if strings.TrimSpace(m.input.Value()) == "" {
			return nil
		}
		return m.submit()
	case key.Matches(msg, m.keys.Details):
		m.toggleDetails()
		return nil
	case key.Matches(msg, m.keys.Clear):
		return m.clear()
	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	if m.stage == stageLoading {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submit starts a query for the current question. It is a no-op while a
// query is in flight.
func (m *model) submit() tea.Cmd {
	if m.stage == stageLoading {
		return nil
	}
	prompt := strings.TrimSpace(m.input.Value())
	if prompt == "" {
		m.notifier.Notify(msgEmptyQuestion, notify.SeverityWarning)
		return nil
	}

	m.requestSeq++
	m.answer = nil
	m.reveal.Cancel()
	m.setAnswerView("")
	m.stage = stageLoading
	m.input.Blur()
	m.questions++

	snapshot, run := m.jobs.Start(jobKindQuery, m.requestSeq, queryJob(m.requestSeq, m.config.Client, prompt))
	m.activeJob = &snapshot
	m.log.Info("question submitted", "seq", m.requestSeq, "job", snapshot.ID, "prompt_chars", utf8.RuneCountInString(prompt))
	return tea.Batch(run, m.spinner.Tick)
}

// abandon drops the in-flight query. Its result will arrive with an old
// sequence number and be discarded.
func (m *model) abandon() tea.Cmd {
	if m.stage != stageLoading {
		return nil
	}
	if m.activeJob != nil {
		m.jobs.Cancel(m.activeJob.ID)
		m.activeJob = nil
	}
	m.log.Info("query abandoned", "seq", m.requestSeq)
	m.requestSeq++
	m.answer = nil
	m.setAnswerView("")
	m.stage = stageIdle
	return m.input.Focus()
}

func (m *model) clear() tea.Cmd {
	if m.stage == stageLoading {
		return nil
	}
	m.input.Reset()
	m.answer = nil
	m.reveal.Cancel()
	m.setAnswerView("")
	m.showDetails = false
	m.stage = stageIdle
	return m.input.Focus()
}

func (m *model) toggleDetails() {
	if m.answer == nil {
		return
	}
	m.showDetails = !m.showDetails
}

func (m *model) handleJobResult(env jobResultEnvelope) tea.Cmd {
	if m.activeJob != nil && m.activeJob.ID == env.Snapshot.ID {
		m.activeJob = nil
	}
	snapshot := env.Snapshot
	m.lastJob = &snapshot
	if env.Snapshot.Kind != jobKindQuery {
		return nil
	}
	result, ok := env.Payload.(queryResultMsg)
	if !ok {
		errText := env.Snapshot.Err
		if errText == "" {
			errText = "query job returned no result"
		}
		result = queryResultMsg{seq: env.Snapshot.Seq, err: errors.New(errText)}
	}
	return m.applyQueryResult(result)
}

func (m *model) applyQueryResult(result queryResultMsg) tea.Cmd {
	if result.seq != m.requestSeq {
		metrics.StaleResultsDiscarded.Inc()
		m.log.Debug("discarding stale result", "seq", result.seq, "current", m.requestSeq)
		return nil
	}

	if result.err != nil {
		m.answer = nil
		m.setAnswerView("")
		m.stage = stageError
		focus := m.input.Focus()
		m.log.Warn("query failed",
			"seq", result.seq,
			"kind", assistant.Classify(result.err).String(),
			"error", result.err.Error(),
		)
		m.notifier.Notify(msgConnectFailed, notify.SeverityError)
		return focus
	}

	answer := result.answer
	m.answer = &answer
	token := m.reveal.Start(answer.Response)
	m.stage = stageRevealing
	focus := m.input.Focus()
	m.viewport.GotoTop()
	m.refreshAnswer()
	m.notifier.Notify(msgAnswerReady, notify.SeveritySuccess)
	if !m.reveal.Running() {
		m.finishReveal()
		return focus
	}
	return tea.Batch(focus, revealTickCmd(m.config.RevealInterval, token))
}

func (m *model) advanceReveal(token reveal.Token) tea.Cmd {
	frame, ok := m.reveal.Advance(token)
	if !ok {
		return nil
	}
	m.refreshAnswer()
	if frame.Done {
		m.finishReveal()
		return nil
	}
	return revealTickCmd(m.config.RevealInterval, token)
}

// finishReveal leaves the stage at stageRevealing: the full answer stays on
// screen until the next submission or a clear.
func (m *model) finishReveal() {
	metrics.RevealsCompleted.Inc()
	m.log.Debug("reveal complete", "runes", m.reveal.Len())
}

func (m *model) refreshAnswer() {
	follow := m.viewport.AtBottom()
	m.setAnswerView(m.renderAnswer(m.reveal.Prefix()))
	if follow && m.reveal.Running() {
		m.viewport.GotoBottom()
	}
}

func (m *model) setAnswerView(content string) {
	m.answerView = content
	m.viewport.SetContent(content)
	if content == "" {
		m.viewport.GotoTop()
	}
}

func (m *model) renderAnswer(text string) string {
	if text == "" {
		return ""
	}
	out, err := m.config.Renderer.Render(text)
	if err != nil {
		m.log.LogError(context.Background(), err, "markdown render failed; using plain text")
		return markdown.Plain(text, m.layout.wrapWidth(0))
	}
	return out
}

type resizer interface {
	Resize(width int) error
}

func (m *model) resize(width, height int) {
	m.layout.Update(width, height)
	m.input.SetWidth(m.layout.contentWidth)
	m.input.SetHeight(m.layout.inputHeight)
	m.viewport.Width = m.layout.wrapWidth(4)
	m.fit()
	if r, ok := m.config.Renderer.(resizer); ok {
		if err := r.Resize(m.layout.wrapWidth(4)); err != nil {
			m.log.LogError(context.Background(), err, "resize markdown renderer")
		}
	}
	if m.answer != nil {
		m.refreshAnswer()
	}
}

// fit sizes the answer viewport from the measured height of everything else
// on the page. The key legend is dropped first when the window is short.
func (m *model) fit() {
	if m.layout.windowHeight <= 0 {
		return
	}
	m.hideLegend = false
	if !m.layout.fitAnswer(lipgloss.Height(m.page(m.answerPanelView("")))) {
		m.hideLegend = true
		m.layout.fitAnswer(lipgloss.Height(m.page(m.answerPanelView(""))))
	}
	m.viewport.Height = m.layout.viewportHeight
}

func (m *model) answerVisible() bool {
	return m.stage == stageLoading || m.answer != nil
}
