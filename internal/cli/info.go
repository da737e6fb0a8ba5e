package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lc-tui/lc/internal/highlight"
	"github.com/lc-tui/lc/internal/markup"
	"github.com/lc-tui/lc/internal/models"
)

var infoCode bool

var infoCmd = &cobra.Command{
	Use:   "info [number]",
	Short: "Print a problem's description",
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

		p, local, err := lookupProblem(cmd, e, num)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		text := markup.NewRenderer(e.cfg.Policy()).Render(p.Description)
		printProblem(out, p, text, local)
		if infoCode && p.Snippet != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, ansiText(highlight.Snippet(p.Snippet, e.cfg.Language)))
		}
		return nil
	},
}

// lookupProblem prefers the workspace copy, then the cache, fetching details
// the cache is missing
func lookupProblem(cmd *cobra.Command, e *env, num int) (*models.Problem, bool, error) {
	if ws, err := e.workspace(); err == nil && ws.Exists(num) {
		p, err := ws.Load(num)
		if err == nil && p.HasDetails() {
			return p, true, nil
		}
		if err != nil {
			slog.Warn("failed to load problem from workspace", "num", num, "err", err)
		}
	}

	p, err := e.cache.Find(strconv.Itoa(num))
	if err != nil {
		return nil, false, fmt.Errorf("%w, run `lc sync` first", err)
	}
	if p.HasDetails() || p.PaidOnly {
		return p, false, nil
	}

	slog.Debug("fetching problem", "slug", p.TitleSlug)
	fetched, err := e.client().Question(cmd.Context(), p.TitleSlug, e.cfg.Language)
	if err != nil {
		return nil, false, err
	}
	e.cache.Merge([]*models.Problem{fetched})
	if err := e.cache.Save(); err != nil {
		slog.Warn("failed to update cache", "err", err)
	}
	return fetched, false, nil
}

func init() {
	infoCmd.Flags().BoolVarP(&infoCode, "code", "c", false, "also print the highlighted starter code")
	rootCmd.AddCommand(infoCmd)
}
