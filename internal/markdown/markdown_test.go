package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Top products by revenue", "Top products by revenue"},
		{"csi", "red \x1b[31mtext\x1b[0m", "red text"},
		{"osc title", "\x1b]0;pwned\x07hello", "hello"},
		{"control chars", "a\x00b\x07c", "abc"},
		{"keeps newlines", "line1\n\tline2", "line1\n\tline2"},
		{"html tags", "<b>bold</b> and <span class=\"x\">span</span>", "bold and span"},
		{"script dropped", "before<script>alert(1)</script>after", "beforeafter"},
		{"br becomes newline", "one<br/>two", "one\ntwo"},
		{"comparison kept", "a < b and c > d", "a < b and c > d"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.in))
		})
	}
}

func TestTermRendererRendersMarkdown(t *testing.T) {
	r, err := New(Options{Style: "notty", Width: 60})
	require.NoError(t, err)

	out, err := r.Render("## Strategic Objective\n\n- Grow **revenue**")
	require.NoError(t, err)
	assert.Contains(t, out, "Strategic Objective")
	assert.Contains(t, out, "revenue")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestTermRendererStripsEscapes(t *testing.T) {
	r, err := New(Options{Style: "notty"})
	require.NoError(t, err)

	out, err := r.Render("safe \x1b]52;c;ZXZpbA==\x07text")
	require.NoError(t, err)
	assert.NotContains(t, out, "]52;")
	assert.Contains(t, out, "safe text")
}

func TestResizeRebuilds(t *testing.T) {
	r, err := New(Options{Style: "notty", Width: 40})
	require.NoError(t, err)
	require.NoError(t, r.Resize(100))
	assert.Equal(t, 100, r.width)
	require.NoError(t, r.Resize(0))
	assert.Equal(t, 100, r.width)
}

func TestPlainWraps(t *testing.T) {
	out := Plain("one two three four", 9)
	assert.Equal(t, "one two\nthree\nfour", out)

	rendered, err := PlainRenderer{Width: 80}.Render("<i>x</i>")
	require.NoError(t, err)
	assert.Equal(t, "x", rendered)
}
