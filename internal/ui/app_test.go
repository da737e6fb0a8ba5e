package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lc-tui/lc/internal/config"
	"github.com/lc-tui/lc/internal/leetcode"
	"github.com/lc-tui/lc/internal/models"
	"github.com/lc-tui/lc/internal/workspace"
)

func testCache(t *testing.T) *models.Cache {
	t.Helper()
	c, err := models.LoadCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c.Merge([]*models.Problem{
		{ID: "1", Title: "Two Sum", TitleSlug: "two-sum", Difficulty: models.Easy, Status: models.Accepted,
			AcceptanceRate: 51.2, Tags: []string{"array", "hash-table"},
			Description: "<p>Given an array of integers <code>nums</code> and an integer <strong>target</strong>.</p>",
			Snippet:     "impl Solution {\n    pub fn two_sum() {}\n}"},
		{ID: "2", Title: "Add Two Numbers", TitleSlug: "add-two-numbers", Difficulty: models.Medium},
		{ID: "20", Title: "Valid Parentheses", TitleSlug: "valid-parentheses", Difficulty: models.Easy,
			Description: "<p>Determine if the input string is valid.</p>"},
	})
	return c
}

func newTestApp(t *testing.T, opts Options) (*App, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(120, 40)

	if opts.Cache == nil {
		opts.Cache = testCache(t)
	}
	opts.Screen = s
	a := NewApp(opts)
	a.async = func(f func()) { f() }
	return a, s
}

// drain runs every queued background update
func drain(a *App) {
	for {
		select {
		case fn := <-a.updates:
			fn()
		default:
			return
		}
	}
}

func screenLines(s tcell.SimulationScreen) []string {
	cells, w, h := s.GetContents()
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(c.Runes[0])
		}
		lines[y] = b.String()
	}
	return lines
}

func findText(s tcell.SimulationScreen, text string) (int, int, bool) {
	for y, line := range screenLines(s) {
		if i := strings.Index(line, text); i >= 0 {
			return len([]rune(line[:i])), y, true
		}
	}
	return 0, 0, false
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func typeText(a *App, text string) {
	for _, r := range text {
		a.handleKey(key(r))
	}
}

func TestDrawProblemList(t *testing.T) {
	a, s := newTestApp(t, Options{})
	a.draw()

	for _, want := range []string{"Problems", "Two Sum", "Add Two Numbers", "Valid Parentheses", "NORMAL", "3 problems | rust"} {
		if _, _, ok := findText(s, want); !ok {
			t.Errorf("Expected %q on screen", want)
		}
	}
}

func TestDrawDescription(t *testing.T) {
	a, s := newTestApp(t, Options{})
	a.draw()

	x, y, ok := findText(s, "Given an array of integers nums")
	if !ok {
		t.Fatalf("Expected rendered description on screen:\n%s", strings.Join(screenLines(s), "\n"))
	}

	codeX := x + len("Given an array of integers ")
	_, _, style, _ := s.GetContent(codeX, y)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrItalic == 0 {
		t.Errorf("Expected inline code to be italic")
	}

	tx, ty, ok := findText(s, "target")
	if !ok {
		t.Fatal("Expected target on screen")
	}
	_, _, style, _ = s.GetContent(tx, ty)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrBold == 0 {
		t.Errorf("Expected strong text to be bold")
	}
}

func TestDescriptionMissing(t *testing.T) {
	a, s := newTestApp(t, Options{})
	a.handleKey(key('j'))
	a.draw()

	if _, _, ok := findText(s, "No description available"); !ok {
		t.Error("Expected placeholder for a problem without details")
	}
}

func TestToggleSnippet(t *testing.T) {
	a, s := newTestApp(t, Options{})
	a.handleKey(key('s'))
	a.draw()

	if !a.problems.ShowingSnippet() {
		t.Fatal("Expected snippet mode")
	}
	if _, _, ok := findText(s, "pub fn two_sum"); !ok {
		t.Errorf("Expected starter code on screen")
	}

	a.handleKey(key('s'))
	if a.problems.ShowingSnippet() {
		t.Error("Expected description mode after second toggle")
	}
}

func TestSearchMode(t *testing.T) {
	a, s := newTestApp(t, Options{})

	a.handleKey(key('/'))
	if a.mode != ModeSearch {
		t.Fatalf("Expected search mode, got %v", a.mode)
	}
	typeText(a, "valid")
	if got := a.problems.VisibleCount(); got != 1 {
		t.Errorf("Expected 1 match, got %d", got)
	}
	a.draw()
	if _, _, ok := findText(s, "/valid"); !ok {
		t.Error("Expected query in status bar")
	}
	if _, _, ok := findText(s, "Filter: valid (1 matches)"); !ok {
		t.Error("Expected filter summary")
	}

	a.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if a.mode != ModeNormal {
		t.Errorf("Expected normal mode after Enter")
	}
	if p := a.problems.GetSelected(); p == nil || p.ID != "20" {
		t.Errorf("Expected problem 20 selected, got %v", p)
	}

	a.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if got := a.problems.VisibleCount(); got != 3 {
		t.Errorf("Expected Esc to clear the filter, got %d rows", got)
	}
}

func TestSearchEditing(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	a.handleKey(key('/'))
	typeText(a, "two sum")

	a.handleKey(tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl))
	if got := a.problems.GetSearchState().Query(); got != "two " {
		t.Errorf("Expected %q after Ctrl+W, got %q", "two ", got)
	}
	a.handleKey(tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl))
	if got := a.problems.GetSearchState().Query(); got != "" {
		t.Errorf("Expected empty query after Ctrl+U, got %q", got)
	}
}

func TestNavigation(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	a.handleKey(key('G'))
	if p := a.problems.GetSelected(); p.ID != "20" {
		t.Errorf("Expected last problem, got %s", p.ID)
	}
	a.handleKey(key('k'))
	if p := a.problems.GetSelected(); p.ID != "2" {
		t.Errorf("Expected problem 2, got %s", p.ID)
	}
	a.handleKey(key('g'))
	if p := a.problems.GetSelected(); p.ID != "1" {
		t.Errorf("Expected first problem, got %s", p.ID)
	}
}

func TestHelpDialog(t *testing.T) {
	a, s := newTestApp(t, Options{})
	a.handleKey(key('?'))
	a.draw()

	if !a.helpDialog.IsVisible() {
		t.Fatal("Expected help dialog")
	}
	if _, _, ok := findText(s, "Help - Keybindings"); !ok {
		t.Error("Expected help title on screen")
	}

	// keys go to the dialog while it is open
	a.handleKey(key('j'))
	if p := a.problems.GetSelected(); p.ID != "1" {
		t.Errorf("Expected selection unchanged, got %s", p.ID)
	}

	a.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if a.helpDialog.IsVisible() {
		t.Error("Expected help dialog closed")
	}
}

func TestCreateProblem(t *testing.T) {
	ws, err := workspace.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a, s := newTestApp(t, Options{Workspace: ws})

	a.handleKey(key('n'))
	a.draw()
	if !a.confirmDialog.IsVisible() {
		t.Fatal("Expected confirmation dialog")
	}
	if _, _, ok := findText(s, "Create Problem"); !ok {
		t.Error("Expected dialog title on screen")
	}

	a.handleKey(key('y'))
	drain(a)

	if !ws.Exists(1) {
		t.Fatal("Expected problem 1 to be created")
	}
	if !strings.HasPrefix(a.statusMessage, "Created 1. Two Sum") {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}
	path, err := ws.SolutionPath(1)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "two_sum") {
		t.Errorf("Expected snippet in solution file, got %q", data)
	}

	a.handleKey(key('n'))
	if a.confirmDialog.IsVisible() {
		t.Error("Expected no dialog for an existing problem")
	}
	if !strings.Contains(a.statusMessage, "already exists") {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}
}

func TestCreateCancelled(t *testing.T) {
	ws, err := workspace.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a, _ := newTestApp(t, Options{Workspace: ws})

	a.handleKey(key('n'))
	a.handleKey(key('n'))
	if ws.Exists(1) {
		t.Error("Expected nothing created")
	}
	if a.statusMessage != "Cancelled" {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}
}

func TestCreateWithoutWorkspace(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	a.handleKey(key('n'))
	if a.confirmDialog.IsVisible() {
		t.Error("Expected no dialog without a workspace")
	}
	if !strings.HasPrefix(a.statusMessage, "No workspace") {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}
}

func TestEditSolution(t *testing.T) {
	ws, err := workspace.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Editor = "myeditor"
	a, _ := newTestApp(t, Options{Config: cfg, Workspace: ws})

	var gotName string
	var gotArgs []string
	a.runEditor = func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	a.handleKey(key('e'))
	if gotName != "" {
		t.Fatal("Expected no editor before the problem exists")
	}

	if _, err := ws.Create(a.problems.GetSelected(), "rust"); err != nil {
		t.Fatal(err)
	}
	a.handleKey(key('e'))
	if gotName != "myeditor" {
		t.Errorf("Expected editor to run, got %q", gotName)
	}
	if len(gotArgs) == 0 || !strings.HasSuffix(gotArgs[len(gotArgs)-1], "solution.rs") {
		t.Errorf("Unexpected editor args %v", gotArgs)
	}
}

func TestCommands(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	a.handleKey(key(':'))
	typeText(a, "bogus")
	a.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if a.statusMessage != "Unknown command: bogus" {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}

	a.handleKey(key(':'))
	typeText(a, "new https://example.com/problems/two-sum/")
	a.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if !strings.HasPrefix(a.statusMessage, "No workspace") {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}

	a.handleKey(key(':'))
	typeText(a, "q")
	a.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	select {
	case <-a.quit:
	default:
		t.Error("Expected :q to quit")
	}
}

func TestNewFromLinkRejectsForeignHost(t *testing.T) {
	ws, err := workspace.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a, _ := newTestApp(t, Options{Workspace: ws})
	a.executeCommand("new https://example.com/problems/two-sum/")
	if !strings.HasPrefix(a.statusMessage, "Invalid link") {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}
}

func TestNewFromLinkFetches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req leetcode.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"data":{"question":{"acRate":60,"difficulty":"Easy","frontendQuestionId":"9",
			"paidOnly":false,"status":null,"title":"Palindrome Number","titleSlug":"palindrome-number",
			"topicTags":[{"name":"Math","id":"8","slug":"math"}],"content":"<p>Given an integer <code>x</code></p>",
			"codeSnippets":[{"langSlug":"rust","code":"impl Solution {}"}]}}}`))
	}))
	defer server.Close()

	ws, err := workspace.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	client := leetcode.NewClient(leetcode.Options{Endpoint: server.URL})
	a, _ := newTestApp(t, Options{Workspace: ws, Client: client})

	a.executeCommand("new https://leetcode.com/problems/palindrome-number/description/")
	drain(a)

	if !ws.Exists(9) {
		t.Fatalf("Expected problem 9 to be created, status %q", a.statusMessage)
	}
	if _, err := a.cache.Find("palindrome-number"); err != nil {
		t.Errorf("Expected fetched problem in cache: %v", err)
	}
}

func TestRefresh(t *testing.T) {
	var ops []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req leetcode.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ops = append(ops, req.OperationName)
		switch req.OperationName {
		case "problemsetQuestionList":
			w.Write([]byte(`{"data":{"problemsetQuestionList":{"total":1,"questions":[
				{"acRate":33.3,"difficulty":"Hard","frontendQuestionId":"4","paidOnly":false,"status":"notac",
				 "title":"Median of Two Sorted Arrays","titleSlug":"median-of-two-sorted-arrays","topicTags":[]}]}}}`))
		default:
			w.Write([]byte(`{"data":{"question":{"content":"<p>Find the median</p>","codeSnippets":[]}}}`))
		}
	}))
	defer server.Close()

	client := leetcode.NewClient(leetcode.Options{Endpoint: server.URL, Concurrency: 1})
	a, _ := newTestApp(t, Options{Client: client})

	a.handleKey(key('r'))
	drain(a)

	if a.refreshing.Load() {
		t.Error("Expected refresh to have finished")
	}
	p, err := a.cache.Find("4")
	if err != nil {
		t.Fatalf("Expected refreshed problem in cache: %v", err)
	}
	if p.Status != models.Attempted || !p.HasDetails() {
		t.Errorf("Unexpected problem %+v", p)
	}
	if got := a.problems.VisibleCount(); got != 4 {
		t.Errorf("Expected 4 rows after refresh, got %d", got)
	}
	if !strings.HasPrefix(a.statusMessage, "Refreshed 1 of 1 problems") {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}
	if len(ops) != 2 {
		t.Errorf("Expected list and one detail request, got %v", ops)
	}
}

func TestRefreshOffline(t *testing.T) {
	a, _ := newTestApp(t, Options{})
	a.handleKey(key('r'))
	if !strings.HasPrefix(a.statusMessage, "Offline") {
		t.Errorf("Unexpected status %q", a.statusMessage)
	}
}
