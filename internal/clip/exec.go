package clip

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const toolTimeout = 5 * time.Second

// runner executes an external clipboard helper. stdin may be nil.
type runner func(stdin []byte, name string, args ...string) ([]byte, error)

// runTool runs a helper with a bounded lifetime and returns its stdout.
func runTool(stdin []byte, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), toolTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// startTool feeds stdin to a helper that forks to keep serving the selection
// (xclip, wl-copy). stdout and stderr are left unattached so Wait does not
// block on the forked child holding them open.
func startTool(stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return nil, nil
}

func hasTool(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
