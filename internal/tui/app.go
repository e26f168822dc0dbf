// Package tui implements the terminal user interface for chsearch.
//
// App is the root Bubble Tea model. It owns the navigation state machine
// (query entry, search, result list, detail viewer) and the single-slot
// result cache. The Picker and Viewer never talk to the registry; they
// return a Signal from Update which App interprets.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pengelbrecht/chsearch/internal/registry"
	"github.com/pengelbrecht/chsearch/internal/render"
)

// Source is the subset of the registry client the TUI needs. A failed
// lookup returns a nil record; the TUI shows it as "no data".
type Source interface {
	SearchCompanies(ctx context.Context, query string) (*registry.SearchResult, error)
	GetProfile(ctx context.Context, companyNumber string) (*registry.CompanyProfile, error)
	GetFilingHistory(ctx context.Context, companyNumber string, pageSize int) (*registry.FilingHistory, error)
	GetPersonsWithSignificantControl(ctx context.Context, companyNumber string) (*registry.PSCList, error)
}

// Screen text.
const (
	appTitle       = "Companies House Search"
	resultsTitle   = "Search Results"
	queryPrompt    = "Enter company name to search: "
	searchingText  = "Searching..."
	fetchingText   = "Fetching details..."
	tooSmallText   = "Terminal too small. Please resize."
	queryCharLimit = 60
)

type state int

const (
	stateQuery state = iota
	stateSearching
	stateNoResults
	stateList
	stateFetching
	stateDetail
	stateTooSmall
	stateExit
)

func (s state) String() string {
	switch s {
	case stateQuery:
		return "query"
	case stateSearching:
		return "searching"
	case stateNoResults:
		return "no-results"
	case stateList:
		return "list"
	case stateFetching:
		return "fetching"
	case stateDetail:
		return "detail"
	case stateTooSmall:
		return "too-small"
	case stateExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Message types for completed registry lookups.
type (
	// searchDoneMsg carries the result of one company search.
	searchDoneMsg struct {
		query  string
		result *registry.SearchResult
	}

	// detailsMsg carries the three detail records for one company. Any of
	// them may be nil.
	detailsMsg struct {
		company registry.CompanySummary
		profile *registry.CompanyProfile
		filings *registry.FilingHistory
		pscs    *registry.PSCList
	}
)

// Config holds App dependencies.
type Config struct {
	Source   Source
	Renderer *render.Renderer
	Logger   *slog.Logger

	// Context is passed to every registry call. Defaults to Background.
	Context context.Context
}

// App is the root model and navigation controller.
type App struct {
	source   Source
	renderer *render.Renderer
	logger   *slog.Logger
	ctx      context.Context

	state  state
	status string
	query  string
	input  textinput.Model

	// results is the list currently shown or last shown.
	results *registry.SearchResult
	// cache is the one-slot memory used by "back to list"; consumed on use.
	cache *registry.SearchResult

	picker Picker
	viewer Viewer

	width  int
	height int

	keys KeyMap
	help help.Model
}

// New creates the application model in the query-entry state.
func New(cfg Config) App {
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = render.New(true)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = queryCharLimit
	input.Width = queryCharLimit
	input.Focus()

	return App{
		source:   cfg.Source,
		renderer: renderer,
		logger:   logger,
		ctx:      ctx,
		state:    stateQuery,
		input:    input,
		keys:     DefaultKeyMap(),
		help:     newHelp(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a.resize(msg)

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a.exit()
		}

	case searchDoneMsg:
		return a.searchDone(msg)

	case detailsMsg:
		return a.detailsDone(msg)
	}

	switch a.state {
	case stateQuery:
		return a.updateQuery(msg)

	case stateNoResults:
		if _, ok := msg.(tea.KeyMsg); ok {
			return a.newSearch()
		}

	case stateList:
		var sig Signal
		a.picker, sig = a.picker.Update(msg)
		return a.handleSignal(sig)

	case stateDetail:
		var sig Signal
		a.viewer, sig = a.viewer.Update(msg)
		return a.handleSignal(sig)

	case stateTooSmall:
		if _, ok := msg.(tea.KeyMsg); ok {
			return a.exit()
		}
	}

	return a, nil
}

func (a App) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case stateQuery:
		if !fits(msg.Width, msg.Height) {
			return a.handleSignal(signalOf(SignalTooSmall))
		}
	case stateList:
		var sig Signal
		a.picker, sig = a.picker.Update(msg)
		return a.handleSignal(sig)
	case stateDetail:
		var sig Signal
		a.viewer, sig = a.viewer.Update(msg)
		return a.handleSignal(sig)
	}
	return a, nil
}

// handleSignal interprets a view's navigation signal.
func (a App) handleSignal(sig Signal) (tea.Model, tea.Cmd) {
	switch sig.Kind {
	case SignalNone:
		return a, nil
	case SignalItemSelected:
		return a.fetchDetails(sig.Index)
	case SignalBackToList:
		a.cache = a.results
		return a.showList()
	case SignalBackToNewSearch:
		return a.newSearch()
	case SignalExit:
		return a.exit()
	case SignalTooSmall:
		a.logger.Info("terminal too small", "width", a.width, "height", a.height, "state", a.state.String())
		a.state = stateTooSmall
		return a, nil
	}
	return a, nil
}

func (a App) updateQuery(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, a.keys.Submit) {
		query := a.input.Value()
		if strings.TrimSpace(query) == "" {
			return a.exit()
		}
		a.query = query
		a.cache = nil
		return a.showList()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// showList enters the list state, serving the cached results if present
// and searching otherwise.
func (a App) showList() (tea.Model, tea.Cmd) {
	if a.cache != nil {
		a.results = a.cache
		a.cache = nil
		return a.openPicker()
	}

	a.state = stateSearching
	a.status = searchingText
	return a, a.searchCmd(a.query)
}

func (a App) searchCmd(query string) tea.Cmd {
	source, ctx := a.source, a.ctx
	return func() tea.Msg {
		result, _ := source.SearchCompanies(ctx, query)
		return searchDoneMsg{query: query, result: result}
	}
}

func (a App) searchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	if a.state != stateSearching {
		return a, nil
	}

	a.results = msg.result
	if msg.result == nil || len(msg.result.Items) == 0 {
		a.state = stateNoResults
		a.status = fmt.Sprintf("No companies found for '%s'. Press any key for new search.", msg.query)
		return a, nil
	}
	return a.openPicker()
}

func (a App) openPicker() (tea.Model, tea.Cmd) {
	labels := make([]string, len(a.results.Items))
	for i, item := range a.results.Items {
		labels[i] = item.Label()
	}

	var sig Signal
	a.picker, sig = NewPicker(resultsTitle, labels, a.width, a.height)
	a.state = stateList
	return a.handleSignal(sig)
}

func (a App) fetchDetails(index int) (tea.Model, tea.Cmd) {
	if a.results == nil || index < 0 || index >= len(a.results.Items) {
		return a, nil
	}

	a.state = stateFetching
	a.status = fetchingText
	return a, a.fetchCmd(a.results.Items[index])
}

// fetchCmd looks up the three detail records one after another. Failures
// were already logged by the source and arrive here as nil records.
func (a App) fetchCmd(company registry.CompanySummary) tea.Cmd {
	source, ctx := a.source, a.ctx
	return func() tea.Msg {
		number := company.CompanyNumber
		profile, _ := source.GetProfile(ctx, number)
		filings, _ := source.GetFilingHistory(ctx, number, registry.DefaultFilingPageSize)
		pscs, _ := source.GetPersonsWithSignificantControl(ctx, number)
		return detailsMsg{company: company, profile: profile, filings: filings, pscs: pscs}
	}
}

func (a App) detailsDone(msg detailsMsg) (tea.Model, tea.Cmd) {
	if a.state != stateFetching {
		return a, nil
	}

	tabs := a.renderer.Tabs(msg.profile, msg.filings, msg.pscs)
	var sig Signal
	a.viewer, sig = NewViewer("Details for "+msg.company.CompanyNumber, tabs, a.width, a.height)
	a.state = stateDetail
	return a.handleSignal(sig)
}

// newSearch leaves the result loop and returns to query entry. The cache
// does not survive leaving the loop.
func (a App) newSearch() (tea.Model, tea.Cmd) {
	a.state = stateQuery
	a.status = ""
	a.query = ""
	a.results = nil
	a.cache = nil
	a.input.Reset()
	if !fits(a.width, a.height) {
		return a.handleSignal(signalOf(SignalTooSmall))
	}
	cmd := a.input.Focus()
	return a, cmd
}

func (a App) exit() (tea.Model, tea.Cmd) {
	a.state = stateExit
	return a, tea.Quit
}

// View implements tea.Model.
func (a App) View() string {
	switch a.state {
	case stateExit:
		return ""
	case stateTooSmall:
		return tooSmallText + "\n"
	case stateSearching, stateFetching, stateNoResults:
		return renderCentered(a.status, a.width, a.height)
	case stateList:
		return a.picker.View()
	case stateDetail:
		return a.viewer.View()
	}

	if a.width == 0 || a.height == 0 {
		return "Loading...\n"
	}
	body := strings.Join([]string{
		"",
		"  " + queryPrompt,
		"",
		"  " + a.input.View(),
	}, "\n")
	return renderFrame(appTitle, body, a.help.ShortHelpView(queryHelp{a.keys}.ShortHelp()), a.width, a.height)
}
