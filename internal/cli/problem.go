package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/lc-tui/lc/internal/leetcode"
	"github.com/lc-tui/lc/internal/models"
)

var newEdit bool

var newCmd = &cobra.Command{
	Use:   "new [link]",
	Short: "Create a workspace directory for a problem from its link",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		ws, err := e.workspace()
		if err != nil {
			return err
		}

		link, err := newPrompter(cmd).arg(args, 0, "Link")
		if err != nil {
			return err
		}
		u, err := leetcode.SanitizeLink(link)
		if err != nil {
			return err
		}
		slug, err := leetcode.TitleSlug(u)
		if err != nil {
			return err
		}

		slog.Debug("fetching problem", "slug", slug)
		p, err := e.client().Question(cmd.Context(), slug, e.cfg.Language)
		if err != nil {
			return err
		}

		dir, err := ws.Create(p, e.cfg.Language)
		if err != nil {
			return err
		}
		e.cache.Merge([]*models.Problem{p})
		if err := e.cache.Save(); err != nil {
			slog.Warn("failed to update cache", "err", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s. %s in %s\n", p.ID, p.Title, dir)
		if newEdit {
			return openSolution(cmd, e, p.Number())
		}
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [number]",
	Short: "Open a problem's solution in the configured editor",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		num, err := newPrompter(cmd).number(args, 0)
		if err != nil {
			return err
		}
		return openSolution(cmd, e, num)
	},
}

// runEditor starts an interactive program on the given streams
var runEditor = func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	c := exec.Command(name, args...)
	c.Stdin = stdin
	c.Stdout = stdout
	c.Stderr = stderr
	return c.Run()
}

func openSolution(cmd *cobra.Command, e *env, num int) error {
	ws, err := e.workspace()
	if err != nil {
		return err
	}
	path, err := ws.SolutionPath(num)
	if err != nil {
		return err
	}

	name, args := e.cfg.EditorCommand(path)
	slog.Debug("opening editor", "editor", name, "args", args)
	if err := runEditor(name, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("editor %s failed: %w", name, err)
	}
	return nil
}

var hideCmd = &cobra.Command{
	Use:   "hide [number]",
	Short: "Hide a problem's solution so it can be attempted again later",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		ws, err := e.workspace()
		if err != nil {
			return err
		}
		num, err := newPrompter(cmd).number(args, 0)
		if err != nil {
			return err
		}
		if err := ws.Hide(num); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Hid problem %d\n", num)
		return nil
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish [number]",
	Short: "Mark a problem as accepted",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		ws, err := e.workspace()
		if err != nil {
			return err
		}
		num, err := newPrompter(cmd).number(args, 0)
		if err != nil {
			return err
		}
		if err := ws.Finish(num); err != nil {
			return err
		}

		if p, err := e.cache.Find(fmt.Sprint(num)); err == nil {
			p.Status = models.Accepted
			if err := e.cache.Save(); err != nil {
				slog.Warn("failed to update cache", "err", err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Finished problem %d\n", num)
		return nil
	},
}

var testCmd = &cobra.Command{
	Use:   "test [number]",
	Short: "Run a solution against LeetCode's example tests (not implemented)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("test: %w", ErrNotImplemented)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit [number]",
	Short: "Submit a solution to LeetCode (not implemented)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("submit: %w", ErrNotImplemented)
	},
}

func init() {
	newCmd.Flags().BoolVarP(&newEdit, "edit", "e", false, "open the solution in the editor afterwards")
	rootCmd.AddCommand(newCmd, editCmd, hideCmd, finishCmd, testCmd, submitCmd)
}
