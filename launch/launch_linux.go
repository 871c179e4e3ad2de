//go:build linux

package launch

import (
	"fmt"
	"os/exec"
	"syscall"
)

// Game asks Steam to run appID. The game itself runs under Proton, so the
// URL handler is the only portable way in.
func Game(appID string) error {
	openers := []struct {
		name string
		args []string
	}{
		{"xdg-open", []string{SteamURL(appID)}},
		{"steam", []string{SteamURL(appID)}},
		{"flatpak", []string{"run", "com.valvesoftware.Steam", SteamURL(appID)}},
	}

	for _, o := range openers {
		cmd := exec.Command(o.name, o.args...)
		cmd.SysProcAttr = &syscall.SysProcAttr{
			Setpgid: true,
		}
		if err := cmd.Start(); err == nil {
			cmd.Process.Release()
			return nil
		}
	}

	return fmt.Errorf("failed to launch game: no steam URL handler worked")
}
