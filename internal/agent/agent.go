// File path: internal/agent/agent.go
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langgraphgo/graph"

	"github.com/nicodishanthj/Auditral_phase1/internal/common"
	"github.com/nicodishanthj/Auditral_phase1/internal/llm"
	"github.com/nicodishanthj/Auditral_phase1/internal/tools"
)

// Runner drives the conversational front of the service: a two-node
// message graph where the model proposes exactly one JSON tool call and
// the dispatch node executes it against the tool registry.
type Runner struct {
	provider llm.Provider
	registry *tools.Registry
}

func NewRunner(provider llm.Provider, registry *tools.Registry) *Runner {
	return &Runner{provider: provider, registry: registry}
}

type toolCall struct {
	Tool   string          `json:"tool"`
	Params json.RawMessage `json:"params"`
}

// Run sends the goal through the agent graph and returns the final
// message: the tool's result envelope when the model called a tool, or
// the model's reply verbatim otherwise.
func (r *Runner) Run(ctx context.Context, goal string) (string, error) {
	if r.provider == nil {
		return "", fmt.Errorf("no agent provider available")
	}
	logger := common.Logger()

	g := graph.NewMessageGraph()
	g.AddNode("agent", func(ctx context.Context, state []llms.MessageContent) ([]llms.MessageContent, error) {
		messages := make([]llm.Message, 0, len(state))
		for _, msg := range state {
			messages = append(messages, llm.Message{Role: roleFor(msg.Role), Content: textOf(msg)})
		}
		reply, err := r.provider.Chat(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("agent chat: %w", err)
		}
		return append(state, llms.TextParts(llms.ChatMessageTypeAI, reply)), nil
	})
	g.AddNode("dispatch", func(ctx context.Context, state []llms.MessageContent) ([]llms.MessageContent, error) {
		reply := textOf(state[len(state)-1])
		call, ok := extractToolCall(reply)
		if !ok {
			logger.Debug("agent: reply contained no tool call")
			return state, nil
		}
		logger.Info("agent: dispatching tool call", "tool", call.Tool)
		result, err := r.registry.Dispatch(ctx, call.Tool, call.Params)
		if err != nil {
			return nil, fmt.Errorf("dispatch %s: %w", call.Tool, err)
		}
		encoded, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encode %s result: %w", call.Tool, err)
		}
		return append(state, llms.TextParts(llms.ChatMessageTypeAI, string(encoded))), nil
	})
	g.AddEdge("agent", "dispatch")
	g.AddEdge("dispatch", graph.END)
	g.SetEntryPoint("agent")

	runnable, err := g.Compile()
	if err != nil {
		return "", fmt.Errorf("compile agent graph: %w", err)
	}
	state := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, r.instruction()),
		llms.TextParts(llms.ChatMessageTypeHuman, goal),
	}
	final, err := runnable.Invoke(ctx, state)
	if err != nil {
		return "", err
	}
	if len(final) == 0 {
		return "", fmt.Errorf("agent graph produced no messages")
	}
	return textOf(final[len(final)-1]), nil
}

func (r *Runner) instruction() string {
	var b strings.Builder
	b.WriteString("You are an audit-data assistant. ")
	b.WriteString("When the user asks you to perform an action on the Excel audit data, ")
	b.WriteString("respond with exactly one JSON object to call the appropriate tool: ")
	b.WriteString(`{ "tool": "<tool_name>", "params": { ... } }`)
	b.WriteString("\n\nAvailable tools:\n")
	for _, def := range r.registry.Definitions() {
		fmt.Fprintf(&b, "- %s: %s\n", def.Name, def.Description)
	}
	return b.String()
}

// extractToolCall parses a model reply into a tool call, tolerating
// markdown code fences around the JSON object.
func extractToolCall(reply string) (*toolCall, bool) {
	trimmed := strings.TrimSpace(reply)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var call toolCall
	if err := json.Unmarshal([]byte(trimmed), &call); err != nil {
		return nil, false
	}
	if strings.TrimSpace(call.Tool) == "" {
		return nil, false
	}
	return &call, true
}

func roleFor(role llms.ChatMessageType) string {
	switch role {
	case llms.ChatMessageTypeSystem:
		return "system"
	case llms.ChatMessageTypeAI:
		return "assistant"
	default:
		return "user"
	}
}

func textOf(msg llms.MessageContent) string {
	var b strings.Builder
	for _, part := range msg.Parts {
		if text, ok := part.(llms.TextContent); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}
