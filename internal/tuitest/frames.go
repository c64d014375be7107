package tuitest

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Frame is the screen as it stood just before the program began its next
// repaint, with styling removed.
type Frame struct {
	Index int
	Plain string
}

var (
	csiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	oscPattern = regexp.MustCompile(`\x1b\][^\x07]*(\x07|\x1b\\)`)
)

// screen replays terminal output onto a grid of lines. It understands the
// cursor movement and erase sequences the Bubble Tea renderer emits; every
// other escape sequence is dropped.
type screen struct {
	lines    [][]rune
	row, col int
	dirty    bool
	frames   []Frame
}

// parseFrames replays raw and returns one frame per repaint. A repaint starts
// with the first erase or upward cursor move after something was drawn.
func parseFrames(raw []byte) []Frame {
	s := &screen{}
	data := string(raw)
	for i := 0; i < len(data); {
		switch c := data[i]; {
		case c == '\x1b':
			i = s.escape(data, i)
		case c == '\r':
			s.col = 0
			i++
		case c == '\n':
			s.row++
			s.col = 0
			i++
		case c < 0x20 || c == 0x7f:
			i++
		default:
			r, size := utf8.DecodeRuneInString(data[i:])
			s.put(r)
			i += size
		}
	}
	s.snapshot()
	return s.frames
}

// escape applies the sequence starting at data[i] and returns the index just
// past it.
func (s *screen) escape(data string, i int) int {
	if i+1 >= len(data) {
		return len(data)
	}
	switch data[i+1] {
	case '[':
		j := i + 2
		for j < len(data) && (data[j] < 0x40 || data[j] > 0x7e) {
			j++
		}
		if j >= len(data) {
			return len(data)
		}
		s.csi(data[i+2:j], data[j])
		return j + 1
	case ']':
		for j := i + 2; j < len(data); j++ {
			if data[j] == '\x07' {
				return j + 1
			}
			if data[j] == '\x1b' && j+1 < len(data) && data[j+1] == '\\' {
				return j + 2
			}
		}
		return len(data)
	default:
		return i + 2
	}
}

func (s *screen) csi(params string, final byte) {
	if strings.HasPrefix(params, "?") {
		return
	}
	n := 1
	if first, _, _ := strings.Cut(params, ";"); first != "" {
		if v, err := strconv.Atoi(first); err == nil {
			n = v
		}
	}
	switch final {
	case 'A':
		s.snapshot()
		s.row = max(s.row-n, 0)
	case 'B':
		s.row += n
	case 'C':
		s.col += n
	case 'D':
		s.col = max(s.col-n, 0)
	case 'H':
		s.snapshot()
		s.row, s.col = 0, 0
		if row, col, ok := strings.Cut(params, ";"); ok {
			s.row = max(atoiOr(row, 1)-1, 0)
			s.col = max(atoiOr(col, 1)-1, 0)
		} else if params != "" {
			s.row = max(n-1, 0)
		}
	case 'J':
		s.snapshot()
		if params == "2" || params == "3" {
			s.lines = nil
		} else {
			s.eraseBelow()
		}
	case 'K':
		s.snapshot()
		s.eraseLine(params)
	}
}

func (s *screen) put(r rune) {
	for len(s.lines) <= s.row {
		s.lines = append(s.lines, nil)
	}
	line := s.lines[s.row]
	for len(line) < s.col {
		line = append(line, ' ')
	}
	if s.col < len(line) {
		line[s.col] = r
	} else {
		line = append(line, r)
	}
	s.lines[s.row] = line
	s.col++
	s.dirty = true
}

func (s *screen) eraseLine(params string) {
	if s.row >= len(s.lines) {
		return
	}
	switch params {
	case "2":
		s.lines[s.row] = nil
	case "1":
		for i := 0; i < len(s.lines[s.row]) && i <= s.col; i++ {
			s.lines[s.row][i] = ' '
		}
	default:
		if s.col < len(s.lines[s.row]) {
			s.lines[s.row] = s.lines[s.row][:s.col]
		}
	}
}

func (s *screen) eraseBelow() {
	s.eraseLine("")
	if s.row+1 < len(s.lines) {
		s.lines = s.lines[:s.row+1]
	}
}

// snapshot records the current screen as a frame if anything was drawn since
// the previous one.
func (s *screen) snapshot() {
	if !s.dirty {
		return
	}
	s.dirty = false
	rows := make([]string, len(s.lines))
	for i, line := range s.lines {
		rows[i] = string(line)
	}
	plain := normalizeLines(strings.Join(rows, "\n"))
	if strings.TrimSpace(plain) == "" {
		return
	}
	s.frames = append(s.frames, Frame{Index: len(s.frames), Plain: plain})
}

func atoiOr(s string, fallback int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return fallback
}

// FinalFrame returns the last captured frame. The second return value is false
// when no frames were recorded.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// LastFrameContaining returns the most recent frame whose plain text contains
// text.
func (r *Recording) LastFrameContaining(text string) (Frame, bool) {
	if r == nil {
		return Frame{}, false
	}
	for i := len(r.Frames) - 1; i >= 0; i-- {
		if strings.Contains(r.Frames[i].Plain, text) {
			return r.Frames[i], true
		}
	}
	return Frame{}, false
}

func stripANSI(s string) string {
	s = oscPattern.ReplaceAllString(s, "")
	s = csiPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\x0f", "")
	s = strings.ReplaceAll(s, "\x0e", "")
	return s
}

func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
