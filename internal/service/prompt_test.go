package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raphaelgruber/arxium/internal/models"
)

func TestHistoryTextWindow(t *testing.T) {
	var history []models.Message
	for i := 0; i < 10; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		history = append(history, models.Message{Role: role, Content: fmt.Sprintf("msg %d", i)})
	}

	text := historyText(history)

	lines := strings.Split(text, "\n")
	assert.Len(t, lines, 6)
	assert.Equal(t, "User: msg 4", lines[0])
	assert.Equal(t, "Assistant: msg 9", lines[5])
	assert.NotContains(t, text, "msg 3")
}

func TestHistoryTextEmpty(t *testing.T) {
	assert.Equal(t, "", historyText(nil))
}

func TestBuildUserPromptOmitsEmptyHistory(t *testing.T) {
	chunks := []models.ContextChunk{
		{Title: "BERT", Section: "Abstract", Text: "bidirectional pre-training"},
	}

	prompt := buildUserPrompt(chunks, nil, "how does BERT work")

	assert.NotContains(t, prompt, "Previous conversation context:")
	assert.Contains(t, prompt, "[BERT - Abstract]\nbidirectional pre-training\n")
	assert.Contains(t, prompt, "User's question: how does BERT work")
}

func TestContextTextJoinsBlocks(t *testing.T) {
	chunks := []models.ContextChunk{
		{Title: "A", Section: "1", Text: "first"},
		{Title: "B", Section: "2", Text: "second"},
	}

	assert.Equal(t, "[A - 1]\nfirst\n\n[B - 2]\nsecond\n", contextText(chunks))
}

func TestBuildSystemPromptEndsWithLengthDirective(t *testing.T) {
	prompt := buildSystemPrompt(ResponseShort)

	assert.Contains(t, prompt, "expert AI research assistant")
	assert.True(t, strings.HasSuffix(prompt, "Focus only on the most essential information."))
}
