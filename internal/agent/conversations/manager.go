package conversations

import (
	"github.com/cloudwego/eino/schema"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
)

// MessagesManager assembles the model input for one call from the session
// history.
type MessagesManager struct {
	maxHistory int
}

func NewMessagesManager(config model.ChatConfig) *MessagesManager {
	return &MessagesManager{maxHistory: config.MaxHistory}
}

// StartIfEmpty seeds an empty history with the system prompt.
func (mm *MessagesManager) StartIfEmpty(state *model.SessionState, systemPrompt string) {
	if len(state.History) == 0 {
		state.History = append(state.History, schema.SystemMessage(systemPrompt))
	}
}

// AppendUser adds the user turn and returns the history length before it, the
// point a failed turn rolls back to.
func (mm *MessagesManager) AppendUser(state *model.SessionState, text string) int {
	mark := len(state.History)
	state.History = append(state.History, schema.UserMessage(text))
	return mark
}

// Rollback drops everything after the user turn that started at mark.
func (mm *MessagesManager) Rollback(state *model.SessionState, mark int) {
	if mark+1 < len(state.History) {
		state.History = state.History[:mark+1]
	}
}

// BuildModelInput returns the system prompt, an optional ephemeral note and the
// most recent history. The note is never stored in the session.
func (mm *MessagesManager) BuildModelInput(state *model.SessionState, note string) []*schema.Message {
	var system []*schema.Message
	rest := make([]*schema.Message, 0, len(state.History))
	for _, m := range state.History {
		if m == nil {
			continue
		}
		if m.Role == schema.System && len(rest) == 0 {
			system = append(system, m)
			continue
		}
		rest = append(rest, m)
	}

	msgs := make([]*schema.Message, 0, len(system)+len(rest)+1)
	msgs = append(msgs, system...)
	if note != "" {
		msgs = append(msgs, schema.SystemMessage(note))
	}
	return append(msgs, trimTail(rest, mm.maxHistory)...)
}

// ====================== Helper function ======================
// trimTail keeps the last maxMessages messages. A window never opens on a tool
// result, whose tool call would otherwise be cut off.
func trimTail(messages []*schema.Message, maxMessages int) []*schema.Message {
	if maxMessages <= 0 || len(messages) <= maxMessages {
		return messages
	}
	start := len(messages) - maxMessages
	for start < len(messages) && messages[start].Role == schema.Tool {
		start++
	}
	return messages[start:]
}
