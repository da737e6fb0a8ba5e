package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lc-tui/lc/internal/ui"
	"github.com/lc-tui/lc/internal/workspace"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse problems in the interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	logFile, err := openLogFile(e.cacheDir, rootVerbose)
	if err != nil {
		return err
	}
	defer logFile.Close()

	// the list is still useful without a workspace, only scaffolding is disabled
	var ws *workspace.Workspace
	if e.cfg.LeetcodeDir != "" {
		if ws, err = e.workspace(); err != nil {
			slog.Warn("workspace unavailable", "dir", e.cfg.LeetcodeDir, "err", err)
			ws = nil
		}
	}

	app := ui.NewApp(ui.Options{
		Config:    e.cfg,
		Cache:     e.cache,
		Client:    e.client(),
		Workspace: ws,
	})
	return app.Run()
}

func init() {
	rootCmd.RunE = runTUI
	rootCmd.AddCommand(tuiCmd)
}
