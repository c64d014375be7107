package tui

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	contentWidth   int
	inputHeight    int
	viewportHeight int
}

const (
	minAnswerRows = 3
	compactHeight = 24
)

func newPageLayout() pageLayout {
	return pageLayout{
		contentWidth:   76,
		inputHeight:    3,
		viewportHeight: 10,
	}
}

// Update records the window size and sizes the form to it. The answer
// viewport is sized separately by fitAnswer once the rest of the page has
// been measured.
func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.contentWidth = innerWidth
	l.inputHeight = 3
	if height < compactHeight {
		l.inputHeight = 2
	}
}

// fitAnswer gives the answer viewport the rows left over once chrome rows
// are taken. It reports false when fewer than minAnswerRows remain; the
// viewport still gets at least one row.
func (l *pageLayout) fitAnswer(chrome int) bool {
	free := l.windowHeight - chrome
	l.viewportHeight = max(free, 1)
	return free >= minAnswerRows
}

// wrapWidth is the text width inside a bordered panel.
func (l pageLayout) wrapWidth(padding int) int {
	width := l.contentWidth - padding
	if width < 20 {
		width = 20
	}
	return width
}
