package session

import (
	"errors"
	"strings"

	"github.com/orglens/orglens/pkg/flight"
	"github.com/orglens/orglens/pkg/gateway"
)

// ErrTurnClosed means a chunk arrived for an assistant turn whose stream
// has already terminated.
var ErrTurnClosed = errors.New("assistant turn is closed")

// Role is a conversation turn's author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one conversation turn. Content accumulates only while the turn's
// stream is open; after that the turn is frozen.
type Turn struct {
	Role    Role
	Content string
}

// TurnHandle addresses the assistant turn opened by one Send. The
// stream-consumption loop uses it to append chunks directly, without
// relying on "last element of the list" as an invariant.
type TurnHandle struct {
	index  int
	ticket flight.Ticket
}

// Chat manages one linear conversation with single-flight discipline: at
// most one stream is open at a time, and turns are strictly append-only
// except for content accumulation on the one open assistant turn.
type Chat struct {
	turns     []Turn
	streaming bool
	slot      flight.Slot
	fallback  string
}

// NewChat creates a session. fallback is the assistant text shown when a
// stream fails before any content arrives.
func NewChat(fallback string) *Chat {
	return &Chat{fallback: fallback}
}

// Send opens a new turn. It is a no-op returning ok=false when text is
// empty or whitespace-only, or while a stream is already in progress.
// Otherwise it appends the user turn and an empty assistant turn, marks the
// session streaming, and returns the handle for the assistant turn.
func (c *Chat) Send(text string) (TurnHandle, bool) {
	if strings.TrimSpace(text) == "" || c.streaming {
		return TurnHandle{}, false
	}

	c.turns = append(c.turns, Turn{Role: RoleUser, Content: text})
	c.turns = append(c.turns, Turn{Role: RoleAssistant})
	c.streaming = true

	return TurnHandle{
		index:  len(c.turns) - 1,
		ticket: c.slot.Issue(),
	}, true
}

// History returns the turns that preceded h's Send, converted for the
// request body. The new user message and the open assistant turn are
// excluded.
func (c *Chat) History(h TurnHandle) []gateway.ChatMessage {
	prior := c.turns[:h.index-1]
	history := make([]gateway.ChatMessage, len(prior))
	for i, t := range prior {
		history[i] = gateway.ChatMessage{Role: string(t.Role), Content: t.Content}
	}
	return history
}

// Append adds a received chunk to h's assistant turn. Chunks must be
// applied sequentially in receipt order; Append returns ErrTurnClosed once
// the turn's stream has terminated, and mutates nothing.
func (c *Chat) Append(h TurnHandle, chunk string) error {
	if !c.slot.Current(h.ticket) {
		return ErrTurnClosed
	}
	c.turns[h.index].Content += chunk
	return nil
}

// Finish closes h's turn after a natural end of stream.
func (c *Chat) Finish(h TurnHandle) {
	if !c.slot.Current(h.ticket) {
		return
	}
	c.slot.Invalidate()
	c.streaming = false
}

// Fail closes h's turn after a transport failure. If nothing had arrived
// the turn shows the fallback message; partial content is left as-is,
// since the user already has a partial answer.
func (c *Chat) Fail(h TurnHandle) {
	if !c.slot.Current(h.ticket) {
		return
	}
	c.slot.Invalidate()
	if c.turns[h.index].Content == "" {
		c.turns[h.index].Content = c.fallback
	}
	c.streaming = false
}

// Turns returns the conversation in order. Callers must not modify it.
func (c *Chat) Turns() []Turn {
	return c.turns
}

// Streaming reports whether a stream is open.
func (c *Chat) Streaming() bool {
	return c.streaming
}
