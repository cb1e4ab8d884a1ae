// Package browse is the terminal front-end for the project list.
package browse

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"catalog/internal/listview"
	"catalog/internal/models"
)

const DefaultDebounce = 500 * time.Millisecond

var limitChoices = []int{5, 10, 20, 50}

// Fetcher loads one page of projects.
type Fetcher interface {
	ListProjects(ctx context.Context, page, limit int, search string) (models.PaginatedList[models.Project], error)
}

type Options struct {
	Limit    int
	Debounce time.Duration
	Timeout  time.Duration
}

type searchSettledMsg string

type pageLoadedMsg struct {
	req  listview.Request
	resp models.PaginatedList[models.Project]
	err  error
}

type Model struct {
	state     *listview.State
	fetcher   Fetcher
	debouncer *listview.Debouncer
	settled   chan string
	timeout   time.Duration

	input       textinput.Model
	spinner     spinner.Model
	keys        keyMap
	searchFocus bool
	width       int
}

func New(fetcher Fetcher, opts Options) *Model {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	// the server never serves more than models.MaxLimit rows per page
	opts.Limit = min(opts.Limit, models.MaxLimit)
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	input := textinput.New()
	input.Placeholder = "Search projects..."
	input.Prompt = "/ "
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		state:       listview.New(opts.Limit),
		fetcher:     fetcher,
		debouncer:   listview.NewDebouncer(opts.Debounce),
		settled:     make(chan string, 1),
		timeout:     opts.Timeout,
		input:       input,
		spinner:     sp,
		keys:        defaultKeyMap(),
		searchFocus: true,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.waitForSettle(),
		m.fetch(m.state.Begin()),
	)
}

// settle hands the latest settled search to the UI loop, replacing any value
// the loop has not picked up yet.
func (m *Model) settle(search string) {
	for {
		select {
		case m.settled <- search:
			return
		default:
			select {
			case <-m.settled:
			default:
			}
		}
	}
}

func (m *Model) waitForSettle() tea.Cmd {
	settled := m.settled
	return func() tea.Msg {
		return searchSettledMsg(<-settled)
	}
}

func (m *Model) fetch(req listview.Request) tea.Cmd {
	fetcher, timeout := m.fetcher, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := fetcher.ListProjects(ctx, req.Page, req.Limit, req.Search)
		return pageLoadedMsg{req: req, resp: resp, err: err}
	}
}

// issue turns an accepted state transition into a fetch.
func (m *Model) issue(req listview.Request, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	slog.Debug("Fetching projects", "seq", req.Seq, "page", req.Page, "limit", req.Limit, "search", req.Search)
	return m.fetch(req)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case searchSettledMsg:
		return m, tea.Batch(m.waitForSettle(), m.issue(m.state.CommitSearch(string(msg))))

	case pageLoadedMsg:
		if !m.state.Complete(msg.req, msg.resp, msg.err) {
			slog.Debug("Dropped superseded response", "seq", msg.req.Seq)
			return m, nil
		}
		if msg.err != nil {
			slog.Error("Failed to fetch projects", "error", msg.err, "seq", msg.req.Seq)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.searchFocus {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.debouncer.Stop()
		return tea.Quit
	case key.Matches(msg, m.keys.Focus):
		m.searchFocus = !m.searchFocus
		if m.searchFocus {
			return m.input.Focus()
		}
		m.input.Blur()
		return nil
	}

	if m.searchFocus {
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if value := m.input.Value(); value != before {
			m.state.SetSearch(value)
			m.debouncer.Trigger(func() { m.settle(value) })
		}
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Close):
		m.debouncer.Stop()
		return tea.Quit
	case key.Matches(msg, m.keys.Prev):
		return m.issue(m.state.Prev())
	case key.Matches(msg, m.keys.Next):
		return m.issue(m.state.Next())
	case key.Matches(msg, m.keys.First):
		return m.issue(m.state.GoTo(1))
	case key.Matches(msg, m.keys.Last):
		return m.issue(m.state.GoTo(m.state.TotalPages()))
	case key.Matches(msg, m.keys.MoreRows):
		return m.issue(m.state.SetLimit(nextLimit(m.state.Limit(), 1)))
	case key.Matches(msg, m.keys.FewerRows):
		return m.issue(m.state.SetLimit(nextLimit(m.state.Limit(), -1)))
	}

	// 1-9 jump to the n-th number shown in the pager
	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 {
		pages := m.state.Window().Pages
		if n <= len(pages) {
			return m.issue(m.state.GoTo(pages[n-1]))
		}
	}
	return nil
}

func nextLimit(current, step int) int {
	i := slices.Index(limitChoices, current)
	if i < 0 {
		i, _ = slices.BinarySearch(limitChoices, current)
		if step > 0 {
			i--
		}
	}
	i = min(max(i+step, 0), len(limitChoices)-1)
	next := limitChoices[i]
	if (step > 0 && next < current) || (step < 0 && next > current) {
		return current
	}
	return next
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Projects"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.state.Status() {
	case listview.Loading:
		b.WriteString(m.spinner.View() + " Loading projects...")
	case listview.Failed:
		b.WriteString(errorStyle.Render("Error: " + m.state.Err().Error()))
	case listview.Success:
		b.WriteString(m.listView())
	}

	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) listView() string {
	projects := m.state.Projects()
	if len(projects) == 0 {
		return mutedStyle.Render("No projects found")
	}

	cardWidth := 0
	if m.width > 4 {
		cardWidth = m.width - 4
	}

	cards := make([]string, 0, len(projects))
	for _, p := range projects {
		card := nameStyle.Render(p.Name) + "\n" + descStyle.Render(p.Description)
		style := cardStyle
		if cardWidth > 0 {
			style = style.Width(cardWidth)
		}
		cards = append(cards, style.Render(card))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, cards...)
	out += "\n" + mutedStyle.Render(m.state.Summary())
	if m.state.TotalPages() > 1 {
		out += "\n" + m.pagerView()
	}
	return out
}

func (m *Model) pagerView() string {
	w := m.state.Window()
	total := m.state.TotalPages()
	parts := make([]string, 0, len(w.Pages)+6)

	prev := "‹ Prev"
	if !m.state.HasPrev() {
		prev = mutedStyle.Render(prev)
	}
	parts = append(parts, prev)

	if w.ShowFirst {
		parts = append(parts, pageStyle.Render("1"))
	}
	if w.LeadingEllipsis {
		parts = append(parts, mutedStyle.Render("..."))
	}
	for _, p := range w.Pages {
		if p == m.state.Page() {
			parts = append(parts, currentStyle.Render(strconv.Itoa(p)))
		} else {
			parts = append(parts, pageStyle.Render(strconv.Itoa(p)))
		}
	}
	if w.TrailingEllipsis {
		parts = append(parts, mutedStyle.Render("..."))
	}
	if w.ShowLast {
		parts = append(parts, pageStyle.Render(strconv.Itoa(total)))
	}

	next := "Next ›"
	if !m.state.HasNext() {
		next = mutedStyle.Render(next)
	}
	parts = append(parts, next)

	return strings.Join(parts, " ")
}

func (m *Model) helpLine() string {
	if m.searchFocus {
		return "type to search • tab pages • esc quit"
	}
	bindings := []key.Binding{m.keys.Prev, m.keys.Next, m.keys.First, m.keys.Last, m.keys.MoreRows, m.keys.Focus, m.keys.Quit}
	parts := make([]string, 0, len(bindings)+1)
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "1-"+strconv.Itoa(listview.MaxVisiblePages)+" jump")
	return strings.Join(parts, " • ")
}
