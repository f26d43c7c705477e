// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/raphaelgruber/rendercheck/internal/service"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Advisor *service.AdvisorService
	Logger  *slog.Logger

	// Version is the server version reported by ping.
	Version string
}
