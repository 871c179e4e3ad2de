//go:build !linux && !windows

package launch

import (
	"fmt"
	"os/exec"
)

// Game asks Steam to run appID via the system URL opener
func Game(appID string) error {
	cmd := exec.Command("open", SteamURL(appID))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch game: %w", err)
	}
	return nil
}
