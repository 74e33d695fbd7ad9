package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
)

func pathPtr(p m.Path) *m.Path { return &p }

func TestBridge_ListScopes_EmptyDesign(t *testing.T) {
	sim := newTestSimulator(t, "")
	bridge := NewBridge(sim)

	scopes, err := bridge.ListScopes(nil)
	require.NoError(t, err)
	assert.Equal(t, m.Scopes{"": m.RootScope()}, scopes)
	assert.Equal(t, m.ScopeModule, scopes[""].Kind)
}

func TestBridge_ListScopes(t *testing.T) {
	sim := newTestSimulator(t, sampleDesign)
	bridge := NewBridge(sim)

	scopes, err := bridge.ListScopes(nil)
	require.NoError(t, err)
	require.Len(t, scopes, 2)
	assert.Contains(t, scopes, m.RootPath)

	top := scopes["top"]
	assert.Equal(t, m.ScopeModule, top.Kind)
	assert.Equal(t, m.StringPtr("top_entity"), top.Definition.Name)
	assert.Equal(t, m.StringPtr("top.vhd:3"), top.Definition.Src)
	assert.Equal(t, m.StringPtr("tb.vhd:40"), top.Instantiation.Src)

	scopes, err = bridge.ListScopes(pathPtr("top"))
	require.NoError(t, err)
	assert.Len(t, scopes, 2)
	assert.Contains(t, scopes, m.RootPath)

	cpu := scopes["top cpu"]
	assert.Equal(t, m.StringPtr("cpu"), cpu.Definition.Name)
	assert.Nil(t, cpu.Definition.Src)
	assert.Nil(t, cpu.Instantiation.Src)

	scopes, err = bridge.ListScopes(pathPtr("top cpu"))
	require.NoError(t, err)
	assert.Equal(t, m.Scopes{"": m.RootScope()}, scopes)

	scopes, err = bridge.ListScopes(pathPtr(""))
	require.NoError(t, err)
	assert.Len(t, scopes, 2)

	assert.Zero(t, sim.OpenHandles())
}

func TestBridge_ListScopes_UnknownScope(t *testing.T) {
	sim := newTestSimulator(t, sampleDesign)
	bridge := NewBridge(sim)

	for _, path := range []m.Path{"other", "top gpu", "top clk"} {
		scopes, err := bridge.ListScopes(pathPtr(path))
		if path == "top clk" {
			// a signal has no child instances
			require.NoError(t, err)
			assert.Len(t, scopes, 1)

			continue
		}

		assert.ErrorIs(t, err, ErrUnknownScope, path)
		assert.Contains(t, scopes, m.RootPath)
	}

	assert.Zero(t, sim.OpenHandles())
}

func TestBridge_ListItems(t *testing.T) {
	sim := newTestSimulator(t, sampleDesign)
	bridge := NewBridge(sim)

	items, err := bridge.ListItems(pathPtr("top"))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, m.Node{
		Src:        "top.vhd:5",
		Width:      1,
		Input:      true,
		Attributes: m.Attributes{},
	}, items["top clk"])

	assert.Equal(t, m.Node{
		Src:        "top.vhd:6",
		Width:      40,
		Output:     true,
		Attributes: m.Attributes{},
	}, items["top count"])

	assert.Equal(t, m.Memory{
		Width:      8,
		Depth:      4,
		ZeroAt:     16,
		Settable:   true,
		Attributes: m.Attributes{},
	}, items["top ram"])

	all, err := bridge.ListItems(nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Contains(t, all, m.Path("top cpu pc"))

	for _, item := range all {
		assert.NoError(t, item.Validate())
	}

	empty, err := bridge.ListItems(pathPtr("top nowhere"))
	require.NoError(t, err)
	assert.Empty(t, empty)

	rootItems, err := bridge.ListItems(pathPtr(""))
	require.NoError(t, err)
	assert.Empty(t, rootItems)

	assert.Zero(t, sim.OpenHandles())
}

func TestBridge_Describe(t *testing.T) {
	sim := newTestSimulator(t, sampleDesign)
	bridge := NewBridge(sim)

	widths, err := bridge.Describe([]m.Designation{
		{Path: "top count"},
		{Path: "top ram", HasRows: true, First: 2, Last: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []m.ValueWidth{
		{Key: m.ValueKey{Path: "top count", Row: m.NodeRow}, Width: 40},
		{Key: m.ValueKey{Path: "top ram", Row: 2}, Width: 8},
		{Key: m.ValueKey{Path: "top ram", Row: 1}, Width: 8},
	}, widths)

	tests := []struct {
		name string
		d    m.Designation
		want error
	}{
		{"unknown item", m.Designation{Path: "top nope"}, ErrUnknownItem},
		{"scope is not an item", m.Designation{Path: "top cpu"}, ErrUnknownItem},
		{"top-level name", m.Designation{Path: "top"}, ErrUnknownItem},
		{"rows on node", m.Designation{Path: "top clk", HasRows: true}, ErrInvalidRow},
		{"memory without rows", m.Designation{Path: "top ram"}, ErrInvalidRow},
		{"row past depth", m.Designation{Path: "top ram", HasRows: true, First: 0, Last: 4}, ErrInvalidRow},
		{"negative row", m.Designation{Path: "top ram", HasRows: true, First: -1, Last: 0}, ErrInvalidRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bridge.Describe([]m.Designation{tt.d})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Zero(t, sim.OpenHandles())
}

func TestBridge_ReadValues(t *testing.T) {
	sim := newTestSimulator(t, sampleDesign)
	bridge := NewBridge(sim)

	values, err := bridge.ReadValues([]m.ValueKey{
		{Path: "top count", Row: m.NodeRow},
		{Path: "top ram", Row: 0},
		{Path: "top ram", Row: 1},
		{Path: "top cpu pc", Row: m.NodeRow},
	})
	require.NoError(t, err)
	assert.Equal(t, map[m.ValueKey][]uint32{
		{Path: "top count", Row: m.NodeRow}: {7, 0},
		{Path: "top ram", Row: 0}:           {1},
		{Path: "top ram", Row: 1}:           {2},
		{Path: "top cpu pc", Row: m.NodeRow}: {0},
	}, values)

	values, err = bridge.ReadValues([]m.ValueKey{
		{Path: "top count", Row: m.NodeRow},
		{Path: "top gone", Row: m.NodeRow},
	})
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.Len(t, values, 1)

	assert.Zero(t, sim.OpenHandles())
}

func TestBridge_ControlAndCallbacks(t *testing.T) {
	sim := newTestSimulator(t, sampleDesign)
	bridge := NewBridge(sim)

	require.NoError(t, bridge.RegisterCallback(CbNextTimeStep, func(CallbackData) {}))
	assert.Zero(t, sim.OpenHandles())

	require.NoError(t, bridge.Control(ControlStop, nil))
	assert.Equal(t, m.TimeStamp{}, bridge.Now())

	require.NoError(t, sim.Control(ControlFinish, nil))
}
