package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lc-tui/lc/internal/config"
	"github.com/lc-tui/lc/internal/leetcode"
	"github.com/lc-tui/lc/internal/models"
	"github.com/lc-tui/lc/internal/workspace"
)

// ErrNotImplemented is returned by commands that need the authenticated judge API
var ErrNotImplemented = errors.New("not implemented")

var (
	rootConfigPath string
	rootDir        string
	rootLang       string
	rootCacheDir   string
	rootVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "lc",
	Short: "Browse, scaffold and track LeetCode problems",
	Long: `lc keeps a local cache of LeetCode problems, scaffolds solution
directories inside $LEETCODE_DIR and renders problem descriptions in the terminal.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr(), rootVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "config file (default is <user config dir>/lc/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "", "LeetCode workspace directory, overrides LEETCODE_DIR")
	rootCmd.PersistentFlags().StringVar(&rootLang, "lang", "", "language slug for starter code, e.g. rust or python3")
	rootCmd.PersistentFlags().StringVar(&rootCacheDir, "cache", "", "directory holding the problem cache and log file")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command; SIGINT and SIGTERM cancel its context
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// env is everything a command needs, resolved from config, environment and flags
type env struct {
	cfg      *config.Config
	cacheDir string
	cache    *models.Cache
}

func loadEnv() (*env, error) {
	var m *config.Manager
	if rootConfigPath != "" {
		m = config.NewManagerForFile(rootConfigPath)
	} else {
		dir, err := config.DefaultDir()
		if err != nil {
			return nil, err
		}
		m = config.NewManager(dir)
	}
	if err := m.Load(); err != nil {
		return nil, err
	}
	m.ApplyEnv(os.Getenv)

	cfg := m.Config()
	if rootDir != "" {
		cfg.LeetcodeDir = rootDir
	}
	if rootLang != "" {
		cfg.Language = rootLang
	}

	cacheDir := rootCacheDir
	if cacheDir == "" {
		dir, err := config.CacheDir()
		if err != nil {
			return nil, err
		}
		cacheDir = dir
	}
	cache, err := models.LoadCache(cacheDir)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, cacheDir: cacheDir, cache: cache}, nil
}

func (e *env) workspace() (*workspace.Workspace, error) {
	ws, err := workspace.Open(e.cfg.LeetcodeDir)
	if err != nil {
		return nil, err
	}
	ws.Policy = e.cfg.Policy()
	return ws, nil
}

func (e *env) client() *leetcode.Client {
	return leetcode.NewClient(leetcode.Options{
		Endpoint:  e.cfg.Endpoint,
		Session:   e.cfg.Session,
		CSRFToken: e.cfg.CSRFToken,
	})
}

// prompter fills in missing positional arguments from the command's input
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

// arg returns args[i], asking for it if it was not given
func (p *prompter) arg(args []string, i int, label string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}

	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}
	return line, nil
}

// number prompts for a problem number when needed and parses it
func (p *prompter) number(args []string, i int) (int, error) {
	s, err := p.arg(args, i, "Problem number")
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid problem number %q", s)
	}
	return n, nil
}
