// Package tui holds the interactive terminal views of the leaderboards.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/benchboard/core"
	"github.com/huangsam/benchboard/internal/contract"
	"github.com/huangsam/benchboard/schema"
)

const tableHeight = 15

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cursorStyle = lipgloss.NewStyle().Underline(true)
	helpText    = "←/→ column • s sort • / search • f filter • r reload • q quit"
)

// fetchedMsg carries the result of one fetch back into the update loop.
type fetchedMsg struct {
	ticket  core.Ticket
	records []schema.BenchmarkRecord
	err     error
}

// Browser is the bubbletea model of one interactive leaderboard.
type Browser struct {
	ctx     context.Context
	session *core.Session
	store   contract.RecordStore
	variant schema.Variant

	table     table.Model
	search    textinput.Model
	searching bool
	column    int // index into variant.Fields
	notice    string
	emojis    bool
}

// NewBrowser creates a browser over the configured variant.
func NewBrowser(ctx context.Context, cfg *contract.Config, store contract.RecordStore) Browser {
	v := cfg.Variant
	ti := textinput.New()
	ti.Placeholder = "Search " + strings.Join(v.SearchKeys, ", ")
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.SetValue(cfg.Query.Search)

	b := Browser{
		ctx:     ctx,
		session: core.NewSession(cfg),
		store:   store,
		variant: v,
		search:  ti,
		emojis:  cfg.UseEmojis,
		table: table.New(
			table.WithFocused(true),
			table.WithHeight(tableHeight),
		),
	}
	if idx := slices.IndexFunc(v.Fields, func(f schema.FieldSpec) bool { return f.Key == cfg.Sort.Field }); idx >= 0 {
		b.column = idx
	}
	b.refreshTable()
	return b
}

// Init starts the first fetch.
func (b Browser) Init() tea.Cmd {
	return b.fetch()
}

// fetch issues a new generation and loads the records in the background.
func (b Browser) fetch() tea.Cmd {
	ctx, ticket := b.session.Begin(b.ctx)
	session, store := b.session, b.store
	return func() tea.Msg {
		records, err := session.Fetch(ctx, store)
		return fetchedMsg{ticket: ticket, records: records, err: err}
	}
}

// Update handles fetch results and key presses.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if b.session.Commit(msg.ticket, msg.records, msg.err) {
			b.refreshTable()
		}
		return b, nil

	case tea.KeyMsg:
		if b.searching {
			return b.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			b.session.Close()
			return b, tea.Quit
		case "/":
			b.searching = true
			b.search.Focus()
			return b, textinput.Blink
		case "left", "h":
			if b.column > 0 {
				b.column--
			}
			b.refreshTable()
			return b, nil
		case "right", "l":
			if b.column < len(b.variant.Fields)-1 {
				b.column++
			}
			b.refreshTable()
			return b, nil
		case "s", "enter":
			return b.clickHeader()
		case "f":
			return b.cycleFilter()
		case "r":
			b.notice = ""
			return b, b.fetch()
		}
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

func (b Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		b.searching = false
		b.search.Blur()
		return b, nil
	case "ctrl+c":
		b.session.Close()
		return b, tea.Quit
	}
	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	b.applyQuery(b.session.State().Query.FilterType)
	return b, cmd
}

// clickHeader toggles the sort on the column under the cursor.
func (b Browser) clickHeader() (tea.Model, tea.Cmd) {
	key := b.variant.Fields[b.column].Key
	needsFetch, err := b.session.ToggleSort(key)
	if err != nil {
		b.notice = err.Error()
		return b, nil
	}
	b.notice = ""
	b.refreshTable()
	if needsFetch {
		return b, b.fetch()
	}
	return b, nil
}

// cycleFilter steps through all, top10 and the categories present in the records.
func (b Browser) cycleFilter() (tea.Model, tea.Cmd) {
	options := b.filterOptions()
	current := b.session.State().Query.FilterType
	next := options[(slices.Index(options, current)+1)%len(options)]
	b.applyQuery(next)
	return b, nil
}

func (b Browser) filterOptions() []string {
	options := []string{"", schema.FilterTop10}
	if b.variant.CategoryKey == "" {
		return options
	}
	var categories []string
	for _, r := range b.session.State().Records {
		if c := strings.ToLower(r.Text[b.variant.CategoryKey]); c != "" && !slices.Contains(categories, c) {
			categories = append(categories, c)
		}
	}
	slices.Sort(categories)
	return append(options, categories...)
}

func (b *Browser) applyQuery(filterType string) {
	q := schema.Query{Search: strings.TrimSpace(b.search.Value()), FilterType: filterType}
	if err := b.session.SetQuery(q); err != nil {
		b.notice = err.Error()
		return
	}
	b.refreshTable()
}

// refreshTable rebuilds the columns and rows from the session state.
func (b *Browser) refreshTable() {
	state := b.session.State()
	widths := make([]int, len(b.variant.Fields))
	titles := make([]string, len(b.variant.Fields))
	for i, f := range b.variant.Fields {
		title := f.Label
		if f.Key == state.Sort.Field {
			title += sortArrow(state.Sort.Direction)
		}
		titles[i] = title
		widths[i] = lipgloss.Width(title)
	}

	rows := make([]table.Row, len(state.Rows))
	for r, row := range state.Rows {
		values := make(table.Row, len(b.variant.Fields))
		for i, f := range b.variant.Fields {
			values[i] = cellValue(f, row, b.emojis)
			widths[i] = max(widths[i], lipgloss.Width(values[i]))
		}
		rows[r] = values
	}

	columns := make([]table.Column, len(b.variant.Fields))
	for i := range b.variant.Fields {
		columns[i] = table.Column{Title: titles[i], Width: widths[i]}
	}
	b.table.SetRows(nil)
	b.table.SetColumns(columns)
	b.table.SetRows(rows)
}

func cellValue(f schema.FieldSpec, row schema.DisplayRow, emojis bool) string {
	switch f.Kind {
	case schema.RankKind:
		return contract.GetPlainRank(row, emojis)
	case schema.NameKind:
		return row.Name
	default:
		cell, _ := row.Cell(f.Key)
		return cell.Value
	}
}

func sortArrow(d schema.Direction) string {
	if d == schema.Desc {
		return " ▼"
	}
	return " ▲"
}

// View renders the title, table, search line and status line.
func (b Browser) View() string {
	state := b.session.State()
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(b.variant.Title))
	sb.WriteString("  ")
	sb.WriteString(statusStyle.Render("column: " + cursorStyle.Render(b.variant.Fields[b.column].Label)))
	sb.WriteString("\n\n")
	sb.WriteString(b.table.View())
	sb.WriteString("\n")

	if b.searching || b.search.Value() != "" {
		sb.WriteString(b.search.View())
		sb.WriteString("\n")
	}

	switch {
	case state.Loading:
		sb.WriteString(statusStyle.Render("Loading..."))
	case state.Err != nil:
		sb.WriteString(errorStyle.Render(fmt.Sprintf("%v (press r to retry)", state.Err)))
	default:
		filter := state.Query.FilterType
		if filter == "" {
			filter = schema.FilterAll
		}
		sb.WriteString(statusStyle.Render(fmt.Sprintf("Showing %d of %d records • filter: %s • sort: %s %s",
			len(state.Rows), len(state.Records), filter, state.Sort.Field, state.Sort.Direction)))
	}
	if b.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(b.notice))
	}
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(helpText))
	sb.WriteString("\n")
	return sb.String()
}

// RunBrowser runs the interactive browser until the user quits.
func RunBrowser(ctx context.Context, cfg *contract.Config, store contract.RecordStore) error {
	b := NewBrowser(ctx, cfg, store)
	defer b.session.Close()
	_, err := tea.NewProgram(b, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
