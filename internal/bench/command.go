// internal/bench/command.go
package bench

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/genbench/genbench/internal/logging"
)

// versionPlaceholder is substituted in the configured install command.
const versionPlaceholder = "--VERSION--"

// runEngine executes the configured engine command against one prepared
// workload script.
func runEngine(ctx context.Context, command []string, scriptPath string) error {
	if len(command) == 0 {
		return fmt.Errorf("no engine command configured")
	}

	args := append(append([]string(nil), command[1:]...), scriptPath)
	cmd := exec.CommandContext(ctx, command[0], args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("engine run for %s failed: %w (output: %s)", scriptPath, err, strings.TrimSpace(string(output)))
	}
	if out := strings.TrimSpace(string(output)); out != "" {
		logging.LogEvent("Engine output for %s: %s", scriptPath, out)
	}
	return nil
}

// runInstallCommand installs the given engine version by running the
// configured install command with the version placeholder substituted.
func runInstallCommand(ctx context.Context, command []string, version string) error {
	if len(command) == 0 {
		return fmt.Errorf("no install command configured")
	}

	args := make([]string, len(command))
	for i, part := range command {
		args[i] = strings.ReplaceAll(part, versionPlaceholder, version)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("installation failed: %w (output: %s)", err, strings.TrimSpace(string(output)))
	}
	logging.LogEvent("Installation of version %s successful", version)
	return nil
}
