// Package controller renders the results of inspecting a debug server.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
)

// Snapshot is everything inspect learns from one server.
type Snapshot struct {
	Address  string
	Greeting protocol.GreetingResponse
	Status   m.SimulationStatus
	Scope    *m.Path
	Scopes   m.Scopes
	Items    m.Items
}

// UI defines how inspection results are shown.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplaySnapshot(ctx context.Context, snapshot Snapshot) error
	DisplayFrame(ctx context.Context, outbound bool, payload []byte)
	DisplayError(ctx context.Context, err error)
}

// NewUI picks the interactive UI for terminals and plain tables otherwise.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

var (
	scopeHeader = []string{"Scope", "Definition", "Instantiated at"}
	itemHeader  = []string{"Item", "Kind", "Width", "Rows", "Source"}
)

func scopeRows(scopes m.Scopes) [][]string {
	paths := make([]m.Path, 0, len(scopes))
	for path := range scopes {
		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	rows := make([][]string, 0, len(paths))

	for _, path := range paths {
		scope := scopes[path]
		rows = append(rows, []string{
			displayPath(path),
			deref(scope.Definition.Name),
			deref(scope.Instantiation.Src),
		})
	}

	return rows
}

func itemRows(items m.Items) [][]string {
	paths := make([]m.Path, 0, len(items))
	for path := range items {
		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	rows := make([][]string, 0, len(paths))

	for _, path := range paths {
		item := items[path]

		var src string

		switch it := item.(type) {
		case m.Node:
			src = it.Src
		case m.Memory:
			src = deref(it.Src)
		}

		rows = append(rows, []string{
			displayPath(path),
			string(item.Kind()),
			fmt.Sprintf("%d", item.BitWidth()),
			fmt.Sprintf("%d", item.Rows()),
			src,
		})
	}

	return rows
}

func displayPath(path m.Path) string {
	if path.IsRoot() {
		return "(root)"
	}

	return string(path)
}

func scopeLabel(scope *m.Path) string {
	if scope == nil {
		return "design"
	}

	return displayPath(*scope)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}

	return *s
}
