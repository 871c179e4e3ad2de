//go:build windows

package launch

import (
	"fmt"
	"os/exec"
)

// Game asks Steam to run appID (Windows-specific)
func Game(appID string) error {
	cmd := exec.Command("cmd", "/C", "start", "", SteamURL(appID))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch game: %w", err)
	}
	return nil
}
