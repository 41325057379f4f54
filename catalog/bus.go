package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Bus command and event identifiers.
const (
	// CommandCreateSpec asks the bus to persist a new child spec.
	CommandCreateSpec = "createSpec"

	// LevelError marks a broadcast as an error-level observability event.
	LevelError = "error"

	// EventError is the event name for not-found broadcasts.
	EventError = "error"
)

// CommandResult is the bus acknowledgment for a dispatched command: the
// assigned resource id and the resource type.
type CommandResult struct {
	Resource string `json:"resource"`
	Type     string `json:"type"`
}

// Bus is the orchestration-bus boundary used by the resolvers. The bus itself
// is an external collaborator; only these two operations are consumed here.
type Bus interface {
	// SendCommand dispatches a command and waits for the bus acknowledgment.
	SendCommand(ctx context.Context, command string, payload any) (*CommandResult, error)

	// Broadcast publishes a fire-and-forget event at the given level.
	Broadcast(ctx context.Context, level, event string, payload any)
}

// ChannelStore looks up a channel and its provider secrets by id.
type ChannelStore interface {
	Channel(ctx context.Context, id string) (*Channel, error)
}

// ErrorEvent is the payload broadcast when a spec resolves to upstream
// absence. The originating spec is echoed verbatim.
type ErrorEvent struct {
	Spec    *Spec  `json:"spec"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StaticChannelStore is a fixed in-memory channel lookup, used by the CLI and
// in tests.
type StaticChannelStore map[string]*Channel

// Channel returns the stored channel or an error when the id is unknown.
func (s StaticChannelStore) Channel(_ context.Context, id string) (*Channel, error) {
	channel, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("channel %q not found", id)
	}
	return channel, nil
}

// SentCommand is one recorded MemoryBus dispatch.
type SentCommand struct {
	Command string
	Payload any
	Result  CommandResult
}

// BroadcastEvent is one recorded MemoryBus broadcast.
type BroadcastEvent struct {
	Level   string
	Event   string
	Payload any
}

// MemoryBus is an in-process Bus. Commands are acknowledged immediately with
// a fresh resource id; broadcasts are logged and recorded. It stands in for
// the real orchestration bus in the CLI and in tests.
type MemoryBus struct {
	mu       sync.Mutex
	commands []SentCommand
	events   []BroadcastEvent
	log      zerolog.Logger
}

// NewMemoryBus creates an in-process bus logging broadcasts to the given
// logger.
func NewMemoryBus(log zerolog.Logger) *MemoryBus {
	return &MemoryBus{log: log}
}

// SendCommand acknowledges the command with a generated resource id. The
// resource type echoes the child spec's type when the payload carries one.
func (b *MemoryBus) SendCommand(_ context.Context, command string, payload any) (*CommandResult, error) {
	result := CommandResult{Resource: uuid.NewString()}
	if spec, ok := payload.(*ChildVideoSpec); ok {
		result.Type = spec.Type
	}

	b.mu.Lock()
	b.commands = append(b.commands, SentCommand{Command: command, Payload: payload, Result: result})
	b.mu.Unlock()

	return &result, nil
}

// Broadcast logs and records the event.
func (b *MemoryBus) Broadcast(_ context.Context, level, event string, payload any) {
	entry := b.log.Info()
	if level == LevelError {
		entry = b.log.Error()
	}
	entry.Str("event", event).Interface("payload", payload).Msg("bus broadcast")

	b.mu.Lock()
	b.events = append(b.events, BroadcastEvent{Level: level, Event: event, Payload: payload})
	b.mu.Unlock()
}

// Commands returns a copy of all recorded dispatches.
func (b *MemoryBus) Commands() []SentCommand {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]SentCommand, len(b.commands))
	copy(out, b.commands)
	return out
}

// Events returns a copy of all recorded broadcasts.
func (b *MemoryBus) Events() []BroadcastEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]BroadcastEvent, len(b.events))
	copy(out, b.events)
	return out
}
