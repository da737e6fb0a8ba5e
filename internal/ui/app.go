package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lc-tui/lc/internal/config"
	"github.com/lc-tui/lc/internal/leetcode"
	"github.com/lc-tui/lc/internal/models"
	"github.com/lc-tui/lc/internal/search"
	"github.com/lc-tui/lc/internal/workspace"
)

type Mode int

const noWorkspaceMessage = "No workspace: set leetcodeDir or LEETCODE_DIR"

const (
	ModeNormal Mode = iota
	ModeCommand
	ModeSearch
)

// Options wires the app to its collaborators. Client and Workspace may be
// nil, which disables fetching and scaffolding. Screen defaults to the
// terminal.
type Options struct {
	Config    *config.Config
	Cache     *models.Cache
	Client    *leetcode.Client
	Workspace *workspace.Workspace
	Screen    tcell.Screen
}

type App struct {
	screen        tcell.Screen
	quit          chan struct{}
	quitOnce      sync.Once
	mode          Mode
	currentView   View
	problems      *ProblemListView
	cfg           *config.Config
	cache         *models.Cache
	client        *leetcode.Client
	ws            *workspace.Workspace
	commandLine   string
	statusMessage string
	helpDialog    *HelpDialog
	confirmDialog *ConfirmationDialog
	shutdownOnce  sync.Once

	ctx    context.Context
	cancel context.CancelFunc

	// updates carries state changes from background jobs to the event loop
	updates    chan func()
	refreshing atomic.Bool
	async      func(func())
	runEditor  func(name string, args ...string) error
}

func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cache := opts.Cache
	if cache == nil {
		cache = &models.Cache{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		screen:        opts.Screen,
		quit:          make(chan struct{}),
		mode:          ModeNormal,
		cfg:           cfg,
		cache:         cache,
		client:        opts.Client,
		ws:            opts.Workspace,
		helpDialog:    NewHelpDialog(),
		confirmDialog: NewConfirmationDialog(),
		ctx:           ctx,
		cancel:        cancel,
		updates:       make(chan func(), 64),
		async:         func(f func()) { go f() },
	}
	a.runEditor = a.suspendAndRun

	a.problems = NewProblemListView(cfg.Policy(), cfg.Language, a.isLocal)
	a.problems.SetProblems(cache.Problems)
	a.currentView = a.problems
	return a
}

func (a *App) Run() error {
	if a.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		a.screen = s
	}
	s := a.screen
	if err := s.Init(); err != nil {
		return err
	}

	defer func() {
		a.stop()
		a.shutdown()
		s.Fini()
		if r := recover(); r != nil {
			slog.Error("panic during shutdown", "panic", r)
		}
	}()

	s.SetStyle(tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg))
	s.Clear()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			slog.Info("received interrupt signal, shutting down")
			a.stop()
		case <-a.quit:
		}
	}()

	if len(a.cache.Problems) == 0 && a.client != nil {
		a.startRefresh()
	}

	go a.handleEvents()
	a.draw()

	<-a.quit
	slog.Info("shutdown complete")
	return nil
}

// stop ends the event loop; safe to call more than once
func (a *App) stop() {
	a.quitOnce.Do(func() {
		if a.screen != nil {
			a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
		close(a.quit)
	})
}

func (a *App) shutdown() {
	a.shutdownOnce.Do(func() {
		slog.Info("shutting down")
		a.cancel()
		if err := a.cache.Save(); err != nil {
			slog.Error("failed to save cache", "err", err)
		}
	})
}

func (a *App) handleEvents() {
	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-a.quit:
			return
		case fn := <-a.updates:
			fn()
			a.draw()
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				a.screen.Sync()
				a.draw()
			case *tcell.EventKey:
				if a.handleKey(ev) {
					a.draw()
				}
			case *tcell.EventInterrupt:
				return
			}
		}
	}
}

// post hands fn to the event loop, blocking until it is queued or the app quits
func (a *App) post(fn func()) {
	select {
	case a.updates <- fn:
	case <-a.quit:
	}
}

// tryPost queues fn unless the loop is backed up; used for progress updates
func (a *App) tryPost(fn func()) {
	select {
	case a.updates <- fn:
	default:
	}
}

func (a *App) setStatus(format string, args ...any) {
	a.statusMessage = fmt.Sprintf(format, args...)
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.helpDialog.IsVisible() {
		return a.helpDialog.HandleKey(ev)
	}
	if a.confirmDialog.IsVisible() {
		return a.confirmDialog.HandleKey(ev)
	}

	switch a.mode {
	case ModeCommand:
		return a.handleCommandKey(ev)
	case ModeSearch:
		return a.handleSearchKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return a.currentView.HandleKey(ev)
		}
		switch ev.Rune() {
		case 'Q':
			a.stop()
			return false
		case 'j', 'k', 'g', 'G':
			a.clearStatusMessage()
			return a.currentView.HandleKey(ev)
		case 's':
			a.problems.ToggleSnippet()
			return true
		case 'd':
			if p := a.problems.GetSelected(); p != nil {
				a.fetchDetails(p)
			}
			return true
		case 'n':
			if p := a.problems.GetSelected(); p != nil {
				a.confirmCreate(p)
			}
			return true
		case 'e':
			if p := a.problems.GetSelected(); p != nil {
				a.editSolution(p)
			}
			return true
		case 'r':
			a.startRefresh()
			return true
		case '/':
			a.mode = ModeSearch
			a.commandLine = a.problems.GetSearchState().Query()
			return true
		case ':':
			a.mode = ModeCommand
			a.commandLine = ""
			return true
		case '?':
			a.helpDialog.Show()
			return true
		}
	case tcell.KeyEscape:
		if st := a.problems.GetSearchState(); st.Query() != "" {
			st.Clear()
			a.problems.UpdateSearch()
		}
		return true
	case tcell.KeyCtrlF, tcell.KeyPgDn:
		a.clearStatusMessage()
		return a.problems.HandlePageDown()
	case tcell.KeyCtrlB, tcell.KeyPgUp:
		a.clearStatusMessage()
		return a.problems.HandlePageUp()
	case tcell.KeyDown:
		return a.problems.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone))
	case tcell.KeyUp:
		return a.problems.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone))
	}
	return false
}

func (a *App) handleCommandKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = ModeNormal
		a.commandLine = ""
		return true
	case tcell.KeyEnter:
		cmd := a.commandLine
		a.mode = ModeNormal
		a.commandLine = ""
		a.executeCommand(cmd)
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(a.commandLine); len(r) > 0 {
			a.commandLine = string(r[:len(r)-1])
			return true
		}
		a.mode = ModeNormal
		return true
	case tcell.KeyRune:
		a.commandLine += string(ev.Rune())
		return true
	}
	return false
}

func (a *App) handleSearchKey(ev *tcell.EventKey) bool {
	st := a.problems.GetSearchState()
	prev := st.Query()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter:
		a.mode = ModeNormal
		a.commandLine = ""
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		st.DeleteChar()
	case tcell.KeyDelete, tcell.KeyCtrlD:
		st.DeleteCharForward()
	case tcell.KeyLeft, tcell.KeyCtrlB:
		st.MoveCursorLeft()
	case tcell.KeyRight, tcell.KeyCtrlF:
		st.MoveCursorRight()
	case tcell.KeyHome, tcell.KeyCtrlA:
		st.MoveCursorStart()
	case tcell.KeyEnd, tcell.KeyCtrlE:
		st.MoveCursorEnd()
	case tcell.KeyCtrlK:
		st.DeleteToEnd()
	case tcell.KeyCtrlW:
		st.DeleteWord()
	case tcell.KeyCtrlU:
		st.MoveCursorStart()
		st.DeleteToEnd()
	case tcell.KeyCtrlT:
		a.statusMessage = st.CycleThreshold()
		a.problems.UpdateSearch()
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			switch ev.Rune() {
			case 'f', 'F':
				st.MoveCursorWordForward()
			case 'b', 'B':
				st.MoveCursorWordBackward()
			case 'd', 'D':
				st.DeleteWordForward()
			}
		} else {
			st.InsertChar(ev.Rune())
		}
	}

	a.commandLine = st.Query()
	if st.Query() != prev {
		a.problems.UpdateSearch()
	}
	return true
}

func (a *App) executeCommand(line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "new":
		if len(parts) < 2 {
			a.statusMessage = "Usage: new <link>"
			return
		}
		a.createFromLink(parts[1])
	case "sync":
		a.startRefresh()
	case "q", "quit":
		a.stop()
	default:
		a.setStatus("Unknown command: %s", parts[0])
	}
}

func (a *App) draw() {
	w, h := a.screen.Size()
	style := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	a.currentView.Draw(a.screen)
	a.drawStatusBar()
	a.helpDialog.Draw(a.screen)
	a.confirmDialog.Draw(a.screen)
	a.screen.Show()
}

func (a *App) drawStatusBar() {
	w, h := a.screen.Size()
	style := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, h-1, ' ', nil, style)
	}

	modeStr := "NORMAL"
	switch a.mode {
	case ModeCommand:
		modeStr = ":" + a.commandLine
	case ModeSearch:
		modeStr = "/" + a.problems.GetSearchState().Query()
	}
	drawText(a.screen, 0, h-1, style, modeStr)

	if a.mode == ModeSearch {
		st := a.problems.GetSearchState()
		q := []rune(st.Query())
		x := 1 + runewidth.StringWidth(string(q[:st.CursorPos()]))
		r := ' '
		if st.CursorPos() < len(q) {
			r = q[st.CursorPos()]
		}
		a.screen.SetContent(x, h-1, r, nil, style.Reverse(true))
	}

	info := fmt.Sprintf("%d problems | %s", len(a.cache.Problems), a.cfg.Language)
	if a.ws == nil {
		info += " | no workspace"
	}
	infoX := w - runewidth.StringWidth(info) - 1
	drawText(a.screen, infoX, h-1, style.Foreground(ColorComment), info)

	if a.statusMessage != "" {
		msgX := runewidth.StringWidth(modeStr) + 2
		if room := infoX - msgX - 1; room > 0 {
			msg := runewidth.Truncate(a.statusMessage, room, "...")
			drawText(a.screen, msgX, h-1, style.Foreground(ColorYellow), msg)
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (a *App) clearStatusMessage() {
	// keep progress visible while a refresh runs
	if a.refreshing.Load() {
		return
	}
	a.statusMessage = ""
}

func (a *App) isLocal(p *models.Problem) bool {
	return a.ws != nil && p.Number() > 0 && a.ws.Exists(p.Number())
}

// startRefresh fetches the problem list and the details of every listed
// problem that has none yet, then merges everything into the cache
func (a *App) startRefresh() {
	if a.client == nil {
		a.statusMessage = "Offline: no LeetCode client configured"
		return
	}
	if !a.refreshing.CompareAndSwap(false, true) {
		a.statusMessage = "Refresh already in progress"
		return
	}

	known := make(map[string]bool, len(a.cache.Problems))
	for _, p := range a.cache.Problems {
		if p.HasDetails() {
			known[p.TitleSlug] = true
		}
	}
	a.statusMessage = "Fetching problem list..."

	a.async(func() {
		defer a.refreshing.Store(false)
		start := time.Now()

		list, total, err := a.client.ProblemList(a.ctx, 0, a.cfg.ProblemLimit)
		if err != nil {
			slog.Error("failed to fetch problem list", "err", err)
			a.post(func() { a.setStatus("Refresh failed: %v", err) })
			return
		}

		var missing []*models.Problem
		for _, p := range list {
			if !known[p.TitleSlug] && !p.PaidOnly {
				missing = append(missing, p)
			}
		}

		var done atomic.Int32
		detailErr := a.client.FetchDetails(a.ctx, missing, a.cfg.Language, func() {
			n := done.Add(1)
			a.tryPost(func() {
				a.setStatus("Fetching details... %d%% (%d/%d)", int(n)*100/len(missing), n, len(missing))
			})
		})
		if detailErr != nil {
			slog.Warn("some problem details could not be fetched", "err", detailErr)
		}

		elapsed := time.Since(start).Round(time.Millisecond)
		slog.Info("refresh finished", "listed", len(list), "total", total, "fetched", len(missing), "elapsed", elapsed)

		a.post(func() {
			a.cache.Merge(list)
			if err := a.cache.Save(); err != nil {
				slog.Error("failed to save cache", "err", err)
				a.setStatus("Error saving cache: %v", err)
			} else if detailErr != nil {
				a.setStatus("Refreshed %d of %d problems with errors: %v", len(list), total, detailErr)
			} else {
				a.setStatus("Refreshed %d of %d problems in %v", len(list), total, elapsed)
			}
			a.problems.SetProblems(a.cache.Problems)
		})
	})
}

// fetchDetails loads the description and starter code of one problem
func (a *App) fetchDetails(p *models.Problem) {
	if a.client == nil {
		a.statusMessage = "Offline: no LeetCode client configured"
		return
	}
	slug := p.TitleSlug
	a.setStatus("Fetching %s...", slug)

	a.async(func() {
		full, err := a.client.Question(a.ctx, slug, a.cfg.Language)
		if err != nil {
			slog.Error("failed to fetch problem", "slug", slug, "err", err)
			a.post(func() { a.setStatus("Fetch failed: %v", err) })
			return
		}
		a.post(func() {
			a.mergeProblem(full)
			a.setStatus("Fetched %s", search.Label(full))
		})
	})
}

func (a *App) mergeProblem(p *models.Problem) {
	a.cache.Merge([]*models.Problem{p})
	if err := a.cache.Save(); err != nil {
		slog.Error("failed to save cache", "err", err)
	}
	a.problems.SetProblems(a.cache.Problems)
}

func (a *App) confirmCreate(p *models.Problem) {
	if a.ws == nil {
		a.statusMessage = noWorkspaceMessage
		return
	}
	if p.Number() == 0 {
		a.setStatus("Problem %q has no numeric id", p.ID)
		return
	}
	if a.ws.Exists(p.Number()) {
		a.setStatus("Problem %d already exists in %s", p.Number(), a.ws.ProblemDir(p.Number()))
		return
	}

	a.confirmDialog.Show(
		"Create Problem",
		fmt.Sprintf("Create a workspace for %s (%s)?", search.Label(p), p.Difficulty),
		func() { a.create(p.TitleSlug, p) },
		func() { a.statusMessage = "Cancelled" },
	)
}

func (a *App) createFromLink(link string) {
	if a.ws == nil {
		a.statusMessage = noWorkspaceMessage
		return
	}
	u, err := leetcode.SanitizeLink(link)
	if err != nil {
		a.setStatus("Invalid link: %v", err)
		return
	}
	slug, err := leetcode.TitleSlug(u)
	if err != nil {
		a.setStatus("Invalid link: %v", err)
		return
	}

	cached, err := a.cache.Find(slug)
	if err != nil && !errors.Is(err, models.ErrProblemNotFound) {
		a.setStatus("Error: %v", err)
		return
	}
	a.create(slug, cached)
}

// create scaffolds a problem directory. Details missing from cached are
// fetched first; cached may be nil.
func (a *App) create(slug string, cached *models.Problem) {
	var snapshot *models.Problem
	if cached != nil {
		cp := *cached
		snapshot = &cp
	}
	if (snapshot == nil || !snapshot.HasDetails()) && a.client == nil {
		a.setStatus("Cannot fetch %s: offline", slug)
		return
	}
	a.setStatus("Creating %s...", slug)

	a.async(func() {
		p := snapshot
		if p == nil || !p.HasDetails() {
			full, err := a.client.Question(a.ctx, slug, a.cfg.Language)
			if err != nil {
				slog.Error("failed to fetch problem", "slug", slug, "err", err)
				a.post(func() { a.setStatus("Fetch failed: %v", err) })
				return
			}
			p = full
		}

		dir, err := a.ws.Create(p, a.cfg.Language)
		if err != nil {
			slog.Error("failed to create problem", "slug", slug, "err", err)
			a.post(func() { a.setStatus("Create failed: %v", err) })
			return
		}
		slog.Info("created problem", "id", p.ID, "dir", dir)

		a.post(func() {
			a.mergeProblem(p)
			a.setStatus("Created %s in %s", search.Label(p), dir)
		})
	})
}

func (a *App) editSolution(p *models.Problem) {
	if a.ws == nil {
		a.statusMessage = noWorkspaceMessage
		return
	}
	path, err := a.ws.SolutionPath(p.Number())
	if err != nil {
		a.setStatus("No solution for %d yet, press 'n' to create it", p.Number())
		return
	}

	name, args := a.cfg.EditorCommand(path)
	if err := a.runEditor(name, args...); err != nil {
		slog.Error("editor failed", "editor", name, "err", err)
		a.setStatus("Failed to open editor: %v", err)
		return
	}
	a.setStatus("Edited %s", path)
}

// suspendAndRun hands the terminal to an interactive program
func (a *App) suspendAndRun(name string, args ...string) error {
	if err := a.screen.Suspend(); err != nil {
		return err
	}
	defer func() {
		if err := a.screen.Resume(); err != nil {
			slog.Error("failed to resume screen", "err", err)
		}
	}()

	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
