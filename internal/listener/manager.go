package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/pixil98/go-farm/internal/console"
)

// ConnectionManager hands accepted connections to the console shell.
// Every listener shares one manager, so telnet and ssh operators land
// on the same farm.
type ConnectionManager struct {
	shell *console.Shell
}

func NewConnectionManager(shell *console.Shell) *ConnectionManager {
	return &ConnectionManager{
		shell: shell,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.shell.Run(ctx, conn); err != nil {
		slog.WarnContext(ctx, "console session ended", "error", err)
	}
}
