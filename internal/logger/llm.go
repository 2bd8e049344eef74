package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LLMMessage is one conversation message inside a model request, reduced to
// what the log needs.
type LLMMessage struct {
	Role    string
	Content string
}

var llmEntry *logrus.Entry

func llm() *logrus.Entry {
	if llmEntry == nil || llmEntry.Logger != root() {
		llmEntry = Named("llm")
	}
	return llmEntry
}

// Request records the context of one model request.
func Request(model string, messages []LLMMessage, attempt int) {
	llm().Infof("-> request attempt=%d model=%s messages=%d", attempt, model, len(messages))
	for i, msg := range messages {
		llm().Infof("-> message[%d] role=%s content=%s", i, msg.Role, sanitize(msg.Content))
	}
}

// StreamComplete records the end of a streamed response.
func StreamComplete(model string, attempt int) {
	llm().Infof("<- stream completed attempt=%d model=%s", attempt, model)
}

// RequestError records a failed model request.
func RequestError(model string, err error, attempt int) {
	llm().Errorf("!! error attempt=%d model=%s err=%v", attempt, model, err)
}

func sanitize(text string) string {
	text = strings.ReplaceAll(text, "\n", `\n`)
	text = strings.ReplaceAll(text, "\r", `\r`)
	return text
}
