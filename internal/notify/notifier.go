package notify

import (
	"fmt"
	"io"
	"sync"

	"fundilink/internal/metrics"

	"github.com/rs/zerolog"
)

// ConsoleNotifier renders transient notices to a terminal writer, the
// client's stand-in for the toast layer. Also writes a structured log line
// per notice.
type ConsoleNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	logger zerolog.Logger
}

func NewConsoleNotifier(out io.Writer, logger *zerolog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{
		out:    out,
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

func (n *ConsoleNotifier) Success(message string) {
	n.emit("✅", "success", message)
}

func (n *ConsoleNotifier) Error(message string) {
	n.emit("❌", "error", message)
}

func (n *ConsoleNotifier) emit(icon, severity, message string) {
	metrics.IncNotice(severity)
	n.logger.Info().Str("severity", severity).Msg(message)

	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s %s\n", icon, message)
}
