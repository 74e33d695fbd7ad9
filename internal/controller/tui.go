package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/pretty"
	"golang.org/x/term"
)

const (
	defaultTableHeight = 20
	chromeLines        = 8
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935"))
	sectionBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplaySnapshot renders the snapshot. Short listings are printed directly;
// longer ones open a scrollable table until the user quits.
func (p *TUI) DisplaySnapshot(ctx context.Context, snapshot Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newSnapshotModel(snapshot)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.resize(width, height)
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.staticView())

		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayFrame prints one protocol frame with syntax colors.
func (p *TUI) DisplayFrame(ctx context.Context, outbound bool, payload []byte) {
	if err := ctx.Err(); err != nil {
		return
	}

	arrow := labelStyle.Render(direction(outbound))
	_, _ = fmt.Fprintf(p.output, "%s %s", arrow, pretty.Color(pretty.Pretty(payload), nil))
}

// DisplayError prints err in the error style.
func (p *TUI) DisplayError(ctx context.Context, err error) {
	if ctx.Err() != nil || err == nil {
		return
	}

	_, _ = fmt.Fprintln(p.output, errorStyle.Render("error: ")+err.Error())
}

// snapshotModel shows the summary, the scopes and a scrollable item table.
type snapshotModel struct {
	snapshot Snapshot
	scopes   [][]string
	items    table.Model
	rows     int
	width    int
	height   int
}

func newSnapshotModel(snapshot Snapshot) snapshotModel {
	rows := itemRows(snapshot.Items)

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, table.Row(row))
	}

	items := table.New(
		table.WithColumns(itemColumns(rows)),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
	)

	return snapshotModel{
		snapshot: snapshot,
		scopes:   scopeRows(snapshot.Scopes),
		items:    items,
		rows:     len(rows),
	}
}

func itemColumns(rows [][]string) []table.Column {
	columns := make([]table.Column, len(itemHeader))
	for i, title := range itemHeader {
		width := lipgloss.Width(title)

		for _, row := range rows {
			if w := lipgloss.Width(row[i]); w > width {
				width = w
			}
		}

		columns[i] = table.Column{Title: title, Width: width}
	}

	return columns
}

func (sm snapshotModel) resize(width, height int) snapshotModel {
	sm.width = width
	sm.height = height

	visible := height - chromeLines - len(sm.scopes)
	if visible < 3 {
		visible = 3
	}

	sm.items.SetHeight(visible)

	return sm
}

// needsPagination reports whether the listing is taller than the terminal.
// Without a known terminal height everything is printed.
func (sm snapshotModel) needsPagination() bool {
	if sm.height <= 0 {
		return false
	}

	return chromeLines+len(sm.scopes)+sm.rows > sm.height
}

func (sm snapshotModel) Init() tea.Cmd {
	return nil
}

func (sm snapshotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return sm.resize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return sm, tea.Quit
		}
	}

	var cmd tea.Cmd
	sm.items, cmd = sm.items.Update(msg)

	return sm, cmd
}

func (sm snapshotModel) View() string {
	var b strings.Builder

	sm.renderHeader(&b)
	b.WriteString(sm.items.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("↑/↓ scroll • q quit"))
	b.WriteString("\n")

	return b.String()
}

// staticView renders every item without the interactive table.
func (sm snapshotModel) staticView() string {
	var b strings.Builder

	sm.renderHeader(&b)
	b.WriteString(renderTable(itemHeader, itemRows(sm.snapshot.Items)))

	return b.String()
}

func (sm snapshotModel) renderHeader(b *strings.Builder) {
	snap := sm.snapshot

	b.WriteString(titleStyle.Render("vhpidbg inspect"))
	b.WriteString("\n")

	summary := fmt.Sprintf("%s %s\n%s %s at %s",
		labelStyle.Render("server"), snap.Address,
		labelStyle.Render("status"), snap.Status.Status, snap.Status.LatestTime)
	b.WriteString(sectionBorder.Render(summary))
	b.WriteString("\n")

	fmt.Fprintf(b, "%s %s\n", labelStyle.Render("scopes under"), scopeLabel(snap.Scope))

	for _, row := range sm.scopes {
		fmt.Fprintf(b, "  %s %s\n", row[0], mutedStyle.Render(row[1]))
	}

	fmt.Fprintf(b, "%s %s (%d)\n", labelStyle.Render("items in"), scopeLabel(snap.Scope), sm.rows)
}
