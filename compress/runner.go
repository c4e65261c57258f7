package compress

import (
	"context"
	"os/exec"
)

// Runner executes an external command and returns its combined output.
// Implementations are injected via WithRunner, mainly for tests.
type Runner interface {
	Run(ctx context.Context, name string, args []string) ([]byte, error)
}

// execRunner runs commands as child OS processes. Arguments are passed as
// discrete tokens, never through a shell, so paths with spaces or special
// characters need no escaping.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}
