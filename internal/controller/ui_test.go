package controller

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
	"vhpidbg.dev/pkg/vhpidbg/internal/protocol"
)

func testSnapshot() Snapshot {
	src := "top.vhd:5"

	return Snapshot{
		Address:  "127.0.0.1:4567",
		Greeting: protocol.ServerGreeting(),
		Status:   m.SimulationStatus{Status: m.StatePaused, LatestTime: m.NewTimeStamp(0, 500)},
		Scopes: m.Scopes{
			m.RootPath: m.RootScope(),
			"top": {
				Kind:          m.ScopeModule,
				Definition:    m.ScopeDefinition{Name: m.StringPtr("top_entity"), Attributes: m.Attributes{}},
				Instantiation: m.ScopeInstantiation{Src: m.StringPtr("tb.vhd:40"), Attributes: m.Attributes{}},
			},
		},
		Items: m.Items{
			"top clk": m.Node{Src: src, Width: 1, Input: true, Attributes: m.Attributes{}},
			"top ram": m.Memory{Width: 8, Depth: 4, Attributes: m.Attributes{}},
		},
	}
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}

	assert.IsType(t, &TUI{}, NewUI(cmd, true))
	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	if assert.NoError(t, err) {
		defer f.Close()
		assert.False(t, IsTTY(f))
	}
}

func TestRows(t *testing.T) {
	snapshot := testSnapshot()

	assert.Equal(t, [][]string{
		{"(root)", "-", "-"},
		{"top", "top_entity", "tb.vhd:40"},
	}, scopeRows(snapshot.Scopes))

	assert.Equal(t, [][]string{
		{"top clk", "node", "1", "1", "top.vhd:5"},
		{"top ram", "memory", "8", "4", "-"},
	}, itemRows(snapshot.Items))
}

func TestScopeLabel(t *testing.T) {
	top := m.Path("top")
	root := m.RootPath

	assert.Equal(t, "design", scopeLabel(nil))
	assert.Equal(t, "top", scopeLabel(&top))
	assert.Equal(t, "(root)", scopeLabel(&root))
}
