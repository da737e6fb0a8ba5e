package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lc-tui/lc/internal/tags"
	"github.com/lc-tui/lc/internal/workspace"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage the tags of scaffolded problems",
}

// tagTarget resolves the problem directory and tag for add/remove
func tagTarget(cmd *cobra.Command, args []string) (string, tags.Tag, error) {
	e, err := loadEnv()
	if err != nil {
		return "", 0, err
	}
	ws, err := e.workspace()
	if err != nil {
		return "", 0, err
	}

	p := newPrompter(cmd)
	num, err := p.number(args, 0)
	if err != nil {
		return "", 0, err
	}
	if !ws.Exists(num) {
		return "", 0, fmt.Errorf("problem %d: %w", num, workspace.ErrProblemMissing)
	}
	name, err := p.arg(args, 1, "Tag")
	if err != nil {
		return "", 0, err
	}
	tag, err := tags.Parse(name)
	if err != nil {
		return "", 0, err
	}
	return ws.ProblemDir(num), tag, nil
}

var tagAddCmd = &cobra.Command{
	Use:   "add [number] [tag]",
	Short: "Add a tag to a problem",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, tag, err := tagTarget(cmd, args)
		if err != nil {
			return err
		}
		if err := tags.Add(dir, tag); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", tag)
		return nil
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:     "remove [number] [tag]",
	Aliases: []string{"rm"},
	Short:   "Remove a tag from a problem",
	Args:    cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, tag, err := tagTarget(cmd, args)
		if err != nil {
			return err
		}
		if err := tags.Remove(dir, tag); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", tag)
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list [number]",
	Short: "List every known tag, or the tags of one problem",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, t := range tags.All() {
				fmt.Fprintf(out, "%-16s %s\n", t.Short(), t)
			}
			return nil
		}

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
		if !ws.Exists(num) {
			return fmt.Errorf("problem %d: %w", num, workspace.ErrProblemMissing)
		}
		lines, err := tags.Read(ws.ProblemDir(num))
		if err != nil {
			return err
		}
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
		return nil
	},
}

var tagSearchCmd = &cobra.Command{
	Use:   "search [tag]",
	Short: "List the problems carrying a tag",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return searchByTag(cmd, args)
	},
}

var tagEditCmd = &cobra.Command{
	Use:   "edit [number]",
	Short: "Edit a problem's tags interactively (under construction)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Under construction")
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagAddCmd, tagRemoveCmd, tagListCmd, tagSearchCmd, tagEditCmd)
	rootCmd.AddCommand(tagCmd)
}
