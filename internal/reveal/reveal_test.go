package reveal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceVisitsEveryPrefixOnce(t *testing.T) {
	var a Animator
	text := "Hello **world**"
	token := a.Start(text)

	lengths := []int{a.Len()}
	prefixes := []string{a.Prefix()}
	for a.Running() {
		frame, ok := a.Advance(token)
		require.True(t, ok)
		lengths = append(lengths, frame.Length)
		prefixes = append(prefixes, a.Prefix())
	}

	require.Len(t, lengths, len(text)+1)
	for i, got := range lengths {
		assert.Equal(t, i, got)
		assert.Equal(t, text[:i], prefixes[i])
	}
	assert.Equal(t, text, a.Prefix())

	_, ok := a.Advance(token)
	assert.False(t, ok, "finished sequence must not advance")
}

func TestRestartInvalidatesOldToken(t *testing.T) {
	var a Animator
	first := a.Start("first answer")
	_, ok := a.Advance(first)
	require.True(t, ok)

	second := a.Start("second")
	assert.NotEqual(t, first, second)
	assert.Equal(t, 0, a.Len())

	_, ok = a.Advance(first)
	assert.False(t, ok, "late tick from the previous sequence should be ignored")
	assert.Equal(t, 0, a.Len())

	frame, ok := a.Advance(second)
	require.True(t, ok)
	assert.Equal(t, 1, frame.Length)
	assert.Equal(t, "s", a.Prefix())
}

func TestCancelClearsPrefix(t *testing.T) {
	var a Animator
	token := a.Start("abc")
	a.Advance(token)
	a.Cancel()

	assert.False(t, a.Running())
	assert.Empty(t, a.Prefix())
	_, ok := a.Advance(token)
	assert.False(t, ok)
}

func TestEmptyTextCompletesImmediately(t *testing.T) {
	var a Animator
	token := a.Start("")
	assert.False(t, a.Running())
	_, ok := a.Advance(token)
	assert.False(t, ok)
}

func TestRevealCountsRunesNotBytes(t *testing.T) {
	var a Animator
	token := a.Start("né€")
	assert.Equal(t, 3, a.Total())
	a.Advance(token)
	a.Advance(token)
	assert.Equal(t, "né", a.Prefix())
}
