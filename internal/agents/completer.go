package agents

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Completer is the narrow slice of the chat agent the stages depend on.
// Tests substitute scripted implementations.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type chatCompleter struct {
	cfg gaconfig.AgentConfig
}

// NewCompleter creates a go-agents backed Completer. An agent is created
// per call; the underlying client pools connections.
func NewCompleter(cfg gaconfig.AgentConfig) Completer {
	return &chatCompleter{cfg: cfg}
}

func (c *chatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Content(), nil
}
