package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySnapshot prints the server summary followed by scope and item tables.
func (s *SimpleUI) DisplaySnapshot(ctx context.Context, snapshot Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderSummary(snapshot))
	s.printf("\nScopes under %s\n%s", scopeLabel(snapshot.Scope), renderTable(scopeHeader, scopeRows(snapshot.Scopes)))
	s.printf("\nItems in %s\n%s", scopeLabel(snapshot.Scope), renderTable(itemHeader, itemRows(snapshot.Items)))

	return nil
}

// DisplayFrame prints one protocol frame, indented.
func (s *SimpleUI) DisplayFrame(ctx context.Context, outbound bool, payload []byte) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s", direction(outbound), pretty.Pretty(payload))
}

// DisplayError prints err.
func (s *SimpleUI) DisplayError(ctx context.Context, err error) {
	if ctx.Err() != nil || err == nil {
		return
	}

	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "error: %v\n", err)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func direction(outbound bool) string {
	if outbound {
		return ">"
	}

	return "<"
}

func renderSummary(snapshot Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Server:    %s (protocol v%d)\n", snapshot.Address, snapshot.Greeting.Version)
	fmt.Fprintf(&b, "Status:    %s at %s\n", snapshot.Status.Status, snapshot.Status.LatestTime)

	commands := make([]string, 0, len(snapshot.Greeting.Commands))
	for _, c := range snapshot.Greeting.Commands {
		commands = append(commands, string(c))
	}

	fmt.Fprintf(&b, "Commands:  %s\n", strings.Join(commands, ", "))

	return b.String()
}

func renderTable(header []string, rows [][]string) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.SetFooter(append([]string{fmt.Sprintf("Total %d", len(rows))}, make([]string, len(header)-1)...))
	table.Render()

	return tableBuffer.String()
}
