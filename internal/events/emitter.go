package events

import (
	"context"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/toolfetch/toolfetch/internal/logging"
)

// Event type discriminators.
const (
	TypeStatus   = "status"
	TypeCitation = "citation"
)

// Status values carried in status events.
const (
	StatusInProgress = "in_progress"
	StatusSuccess    = "success"
	StatusError      = "error"
)

// notificationMethod is the MCP notification used to carry events to the client.
const notificationMethod = "notifications/message"

// StatusData is the payload of a status event.
type StatusData struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Done        bool   `json:"done"`
	Hidden      bool   `json:"hidden,omitempty"`
}

// Source identifies where cited content came from.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Citation is the payload of a citation event. Document holds the cited
// content strings; Metadata holds one entry per document.
type Citation struct {
	Document []string         `json:"document"`
	Metadata []map[string]any `json:"metadata"`
	Source   Source           `json:"source"`
}

// Sender delivers one event payload to the client. Delivery is best-effort;
// implementations must not block tool execution on failure.
type Sender func(ctx context.Context, payload map[string]any)

// Emitter sends status and citation events during tool execution. Events are
// advisory: they are never read back and never affect control flow. A nil or
// zero Emitter is a no-op, so handlers can emit unconditionally.
type Emitter struct {
	send          Sender
	statusEnabled bool
}

// New creates an Emitter that delivers events through send. A nil send
// yields a no-op emitter.
func New(send Sender, statusEnabled bool) *Emitter {
	return &Emitter{send: send, statusEnabled: statusEnabled}
}

// FromContext creates an Emitter bound to the MCP session in ctx, if any.
// Without a session (stdio startup, doc generation, tests) the emitter is a
// no-op. statusEnabled gates status events only; citations are always sent.
func FromContext(ctx context.Context, statusEnabled bool) *Emitter {
	srv := mcpserver.ServerFromContext(ctx)
	if srv == nil {
		return New(nil, statusEnabled)
	}

	send := func(ctx context.Context, payload map[string]any) {
		err := srv.SendNotificationToClient(ctx, notificationMethod, map[string]any{
			"level":  "info",
			"logger": "toolfetch",
			"data":   payload,
		})
		if err != nil {
			// No session attached or the client went away; drop the event.
			slog.Debug("event notification dropped", logging.Err(err))
		}
	}

	return New(send, statusEnabled)
}

// Progress emits an in-progress status event.
func (e *Emitter) Progress(ctx context.Context, description string) {
	e.status(ctx, StatusData{
		Description: description,
		Status:      StatusInProgress,
		Done:        false,
	})
}

// Success emits a terminal success status event.
func (e *Emitter) Success(ctx context.Context, description string) {
	e.status(ctx, StatusData{
		Description: description,
		Status:      StatusSuccess,
		Done:        true,
	})
}

// Error emits a terminal error status event.
func (e *Emitter) Error(ctx context.Context, description string) {
	e.status(ctx, StatusData{
		Description: description,
		Status:      StatusError,
		Done:        true,
	})
}

// Cite emits a citation event. Citations are sent even when status updates
// are disabled.
func (e *Emitter) Cite(ctx context.Context, citation Citation) {
	if e == nil || e.send == nil {
		return
	}
	e.send(ctx, map[string]any{
		"type": TypeCitation,
		"data": citation,
	})
}

func (e *Emitter) status(ctx context.Context, data StatusData) {
	if e == nil || e.send == nil || !e.statusEnabled {
		return
	}
	e.send(ctx, map[string]any{
		"type": TypeStatus,
		"data": data,
	})
}
