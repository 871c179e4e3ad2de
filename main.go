package main

import (
	"fmt"
	"os"

	"TUI-M4-Manager/config"
	"TUI-M4-Manager/game"
	"TUI-M4-Manager/loader"
	"TUI-M4-Manager/logging"
	"TUI-M4-Manager/picker"
	"TUI-M4-Manager/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logFile    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "m4",
	Short:         "Mod manager for Project DIVA Mega Mix+",
	Long:          "M4 sets up and manages DivaModLoader mods for Project DIVA Mega Mix+.\nOn first run it walks you through locating the game directory.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "settings file to use (default: platform config dir)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (default: next to the settings file)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		configPath = path
	}
	if logFile == "" {
		logFile = logging.DefaultLogFile(configPath)
	}

	closer, err := logging.Setup(logFile, debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Debug("starting", "config", configPath)

	app := tui.NewApp(tui.Options{
		ConfigPath: configPath,
		Picker:     picker.NewPortal(),
		Installer:  loader.NewInstaller(),
		Detect:     game.DetectInstallDir,
		Styles:     tui.DefaultStyles(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	// Fatal errors (a failed settings save) end the program from inside the TUI
	if err := app.Err(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
