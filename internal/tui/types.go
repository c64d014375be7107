package tui

import (
	"github.com/csheth/dataquery/internal/assistant"
	"github.com/csheth/dataquery/internal/reveal"
)

type stage int

const (
	stageIdle stage = iota
	stageLoading
	stageRevealing
	stageError
)

func (s stage) String() string {
	switch s {
	case stageLoading:
		return "LOADING"
	case stageRevealing:
		return "REVEALING"
	case stageError:
		return "ERROR"
	default:
		return "IDLE"
	}
}

const (
	headerTitle   = "AI Data Assistant"
	headerTagline = "Ask questions about your data and get intelligent business insights powered by advanced LLM technology. " +
		"Simply describe what you want to know in natural language!"

	formTitle        = "What would you like to know?"
	inputLabel       = "Type your question here:"
	inputPlaceholder = "e.g., What are the top-selling products?"
	askLabel         = "Ask"
	askLoadingLabel  = "Getting your answer..."
	answerTitle      = "LLM Response"
	loadingCopy      = "Analyzing your question and generating response with LLM..."
	schemaSourceLbl  = "Schema Source"
	schemaContextLbl = "Schema Context"
)

// User-facing notification copy. Technical detail only goes to the log.
const (
	msgEmptyQuestion = "Please enter a question before asking!"
	msgAnswerReady   = "Got your answer!"
	msgConnectFailed = "Sorry, I couldn't connect to the data assistant. Make sure the server is running."
)

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	schemaSummaryLimit        = 200
)

// queryResultMsg is the payload of a finished query job. seq ties it to the
// submission that started it.
type queryResultMsg struct {
	seq    uint64
	answer assistant.Answer
	err    error
}

// revealTickMsg advances the reveal sequence identified by token.
type revealTickMsg struct {
	token reveal.Token
}
