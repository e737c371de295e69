package service

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/arxium/internal/models"
)

// ResponseLength controls how verbose the generated answer should be.
type ResponseLength string

const (
	ResponseShort  ResponseLength = "short"
	ResponseMedium ResponseLength = "medium"
	ResponseLong   ResponseLength = "long"
)

// normalize maps the empty string and unknown values to medium.
func (l ResponseLength) normalize() ResponseLength {
	switch l {
	case ResponseShort, ResponseLong:
		return l
	default:
		return ResponseMedium
	}
}

// lengthInstruction returns the prompt instruction and output token cap for
// a response length.
func lengthInstruction(length ResponseLength) (string, int) {
	switch length.normalize() {
	case ResponseShort:
		return "Provide a BRIEF, concise answer (2-3 sentences maximum). Focus only on the most essential information.", 256
	case ResponseLong:
		return "Provide a COMPREHENSIVE, detailed answer. Include context, explanations, and multiple examples if relevant. Aim for thoroughness.", 2048
	default:
		return "Provide a balanced answer that is concise but comprehensive enough to be useful for citation purposes (4-6 sentences).", 1024
	}
}

// buildSystemPrompt renders the assistant instructions with the length
// directive appended as the final guideline.
func buildSystemPrompt(length ResponseLength) string {
	instruction, _ := lengthInstruction(length)
	return fmt.Sprintf(`You are an expert AI research assistant specializing in machine learning and NLP research papers. Your role is to help researchers find and cite relevant papers accurately.

Guidelines:
- Base your answers ONLY on the provided paper excerpts and context
- Always cite papers when referencing specific concepts, methods, or findings
- If the context doesn't contain relevant information, clearly state that
- Be precise and accurate - this is for academic writing
- When discussing authors, mention their names and affiliations if available
- Format citations naturally in your response, mentioning paper titles
- %s`, instruction)
}

// buildUserPrompt renders the excerpts, optional conversation context and
// the question into the generation prompt.
func buildUserPrompt(chunks []models.ContextChunk, history []models.Message, query string) string {
	historyText := historyText(history)
	historyBlock := ""
	if historyText != "" {
		historyBlock = fmt.Sprintf("Previous conversation context:\n%s\n", historyText)
	}

	return fmt.Sprintf(`Here are relevant excerpts from research papers:

%s

%s
User's question: %s

Please provide a clear, accurate answer based on the paper excerpts above. Include specific citations by mentioning paper titles. If the excerpts don't contain relevant information to answer the question, please state that clearly.`,
		contextText(chunks), historyBlock, query)
}

// contextText renders each chunk as a titled excerpt block.
func contextText(chunks []models.ContextChunk) string {
	blocks := make([]string, len(chunks))
	for i, chunk := range chunks {
		blocks[i] = fmt.Sprintf("[%s - %s]\n%s\n", chunk.Title, chunk.Section, chunk.Text)
	}
	return strings.Join(blocks, "\n")
}

// historyText renders the trailing conversation window as role-prefixed
// lines. Returns the empty string for an empty history.
func historyText(history []models.Message) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	lines := make([]string, len(history))
	for i, msg := range history {
		role := "Assistant"
		if msg.Role == models.RoleUser {
			role = "User"
		}
		lines[i] = fmt.Sprintf("%s: %s", role, msg.Content)
	}
	return strings.Join(lines, "\n")
}
