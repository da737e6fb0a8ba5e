package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lc-tui/lc/internal/models"
)

var (
	syncLimit int
	syncSkip  int
	syncAll   bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the problem cache from LeetCode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		client := e.client()
		ctx := cmd.Context()
		start := time.Now()

		limit := syncLimit
		if limit <= 0 {
			limit = e.cfg.ProblemLimit
		}
		list, total, err := client.ProblemList(ctx, syncSkip, limit)
		if err != nil {
			return err
		}
		if syncAll {
			for skip := syncSkip + len(list); skip < total && len(list) > 0; {
				page, _, err := client.ProblemList(ctx, skip, limit)
				if err != nil {
					return err
				}
				if len(page) == 0 {
					break
				}
				list = append(list, page...)
				skip += len(page)
			}
		}
		slog.Debug("fetched problem list", "count", len(list), "total", total)

		missing := missingDetails(e.cache, list)
		if len(missing) > 0 {
			bar := progressbar.NewOptions64(int64(len(missing)),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("Fetching details"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			err = client.FetchDetails(ctx, missing, e.cfg.Language, func() { _ = bar.Add(1) })
			_ = bar.Finish()
			if err != nil {
				// keep what did arrive
				slog.Warn("some problem details could not be fetched", "err", err)
			}
		}

		e.cache.Merge(list)
		if err := e.cache.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Synced %d of %d problems (%d fetched) in %v\n",
			len(list), total, len(missing), time.Since(start).Round(time.Millisecond))
		return nil
	},
}

// missingDetails returns the free problems of list the cache has no content for
func missingDetails(c *models.Cache, list []*models.Problem) []*models.Problem {
	known := make(map[string]bool, len(c.Problems))
	for _, p := range c.Problems {
		if p.HasDetails() {
			known[p.TitleSlug] = true
		}
	}

	var out []*models.Problem
	for _, p := range list {
		if !p.PaidOnly && !known[p.TitleSlug] {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	syncCmd.Flags().IntVar(&syncLimit, "limit", 0, "problems per page (default from config)")
	syncCmd.Flags().IntVar(&syncSkip, "skip", 0, "problems to skip from the start of the list")
	syncCmd.Flags().BoolVar(&syncAll, "all", false, "page through the whole problem set")
	rootCmd.AddCommand(syncCmd)
}
