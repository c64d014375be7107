package tips

import (
	"fmt"
	"strings"
)

// Title heads the tips card.
const Title = "Tips for better LLM responses"

// Tip is one suggestion shown under the question form.
type Tip struct {
	Text string
}

// Options carries the key names used to personalize the tips.
type Options struct {
	DetailsKey string
}

// Build returns the tips card content. The last tip points at the key that
// opens the details panel.
func Build(opts Options) []Tip {
	key := strings.TrimSpace(opts.DetailsKey)
	if key == "" {
		key = "tab"
	}
	return []Tip{
		{Text: `Ask business-focused questions like "What are our top revenue drivers?"`},
		{Text: `Request analysis like "Show me trends in customer behavior"`},
		{Text: `Ask for strategic insights: "What should we focus on to increase profits?"`},
		{Text: "The AI will provide comprehensive business intelligence recommendations"},
		{Text: fmt.Sprintf("Press %s after an answer arrives to see how your question was processed", key)},
	}
}

// HowItWorks explains where an answer came from. It is shown in the details
// panel.
const HowItWorks = "Your question was matched against our database schema using semantic search. " +
	"The most relevant schema information was then sent to the LLM to generate a comprehensive business intelligence response."
