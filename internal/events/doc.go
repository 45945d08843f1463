// Package events implements status and citation event emission for MCP tools.
//
// Tools emit progress/success/error status updates while they run and
// citation events pointing at the upstream source of returned content.
// Events travel as MCP logging notifications (notifications/message) on the
// active session. Emission is strictly best-effort: when no session is
// attached, or the client has gone away, events are silently dropped and
// tool execution is unaffected.
package events
