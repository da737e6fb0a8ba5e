package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lc-tui/lc/internal/search"
	"github.com/lc-tui/lc/internal/tags"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search cached problems by number, name or tag",
}

var searchNumberCmd = &cobra.Command{
	Use:   "number [number]",
	Short: "Show the cached problem with a number",
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
		p := search.ByNumber(e.cache.Problems, num)
		if p == nil {
			return fmt.Errorf("problem %d is not cached, run `lc sync` first", num)
		}
		printProblemLine(cmd.OutOrStdout(), p, nil)
		return nil
	},
}

var searchNameCmd = &cobra.Command{
	Use:   "name [query...]",
	Short: "Fuzzy search cached problems by title, tag and description",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		if query == "" {
			if query, err = newPrompter(cmd).arg(nil, 0, "Query"); err != nil {
				return err
			}
		}

		hits := search.NewMatcher(query).Problems(e.cache.Problems)
		if len(hits) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No matches")
			return nil
		}
		if searchLimit > 0 && len(hits) > searchLimit {
			hits = hits[:searchLimit]
		}

		out := cmd.OutOrStdout()
		for _, h := range hits {
			var positions []int
			if h.Field == search.FieldTitle {
				positions = h.Result.Positions
			}
			printProblemLine(out, h.Problem, positions)
		}
		return nil
	},
}

var searchTagCmd = &cobra.Command{
	Use:   "tag [tag]",
	Short: "List the scaffolded problems carrying a tag",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return searchByTag(cmd, args)
	},
}

// searchByTag lists problems whose TAGS file names the tag, with titles from the cache
func searchByTag(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	ws, err := e.workspace()
	if err != nil {
		return err
	}
	name, err := newPrompter(cmd).arg(args, 0, "Tag")
	if err != nil {
		return err
	}
	tag, err := tags.Parse(name)
	if err != nil {
		return err
	}

	nums, err := tags.Search(ws.Root, tag)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(nums) == 0 {
		fmt.Fprintf(out, "No problems tagged %s\n", tag)
		return nil
	}
	for _, n := range nums {
		if p := search.ByNumber(e.cache.Problems, n); p != nil {
			printProblemLine(out, p, nil)
			continue
		}
		fmt.Fprintf(out, "%d\n", n)
	}
	return nil
}

func init() {
	searchNameCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results, 0 for all")
	searchCmd.AddCommand(searchNumberCmd, searchNameCmd, searchTagCmd)
	rootCmd.AddCommand(searchCmd)
}
