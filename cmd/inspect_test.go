package cmd

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vhpidbg.dev/pkg/vhpidbg/internal/adapter"
	"vhpidbg.dev/pkg/vhpidbg/internal/domain"
	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
)

// startDebugServer runs a debug server over testDesign and returns its address.
func startDebugServer(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	parsed, err := adapter.ParseDesign([]byte(testDesign))
	require.NoError(t, err)

	sim, err := adapter.NewDesignSimulator(parsed, nil)
	require.NoError(t, err)

	plugin, err := domain.Startup(ctx, sim, domain.Config{
		Address:  "127.0.0.1:0",
		SpillDir: t.TempDir(),
		Server:   domain.ServerConfig{Mode: domain.ModeConcurrent},
	})
	require.NoError(t, err)

	simDone := make(chan error, 1)

	go func() {
		simDone <- sim.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, plugin.Close())
		<-simDone
	})

	select {
	case <-plugin.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("debug server never started")
	}

	addr, err := plugin.Addr()
	require.NoError(t, err)

	return addr.String()
}

func runInspect(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlagBindings(t)

	cmd := newInspectCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

func TestInspectCmd_Design(t *testing.T) {
	// Arrange
	address := startDebugServer(t)

	// Act
	output, _, err := runInspect(t, "--address", address)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, output, "Server:    "+address)
	assert.Contains(t, output, "Status:    paused")
	assert.Contains(t, output, "Scopes under design")
	assert.Contains(t, output, "top_entity")
	assert.Contains(t, output, "Items in design")
	assert.Contains(t, output, "top count")
	assert.Contains(t, output, "top cpu pc")
}

func TestInspectCmd_Scope(t *testing.T) {
	address := startDebugServer(t)

	output, _, err := runInspect(t, "--address", address, "top cpu")

	require.NoError(t, err)
	assert.Contains(t, output, "Scopes under top cpu")
	assert.Contains(t, output, "Items in top cpu")
	assert.Contains(t, output, "top cpu pc")
	assert.NotContains(t, output, "top count")
}

func TestInspectCmd_Raw(t *testing.T) {
	address := startDebugServer(t)

	output, _, err := runInspect(t, "--address", address, "--raw")

	require.NoError(t, err)
	assert.Contains(t, output, `> {`)
	assert.Contains(t, output, `< {`)
	assert.Contains(t, output, `"type": "greeting"`)
	assert.Contains(t, output, `"command": "list_items"`)
}

func TestInspectCmd_ConnectionRefused(t *testing.T) {
	ln, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	address := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, errOutput, err := runInspect(t, "--address", address, "--timeout", "200ms")

	require.Error(t, err)
	assert.Contains(t, errOutput, "error: ")
	assert.Contains(t, errOutput, "failed to connect to "+address)
}

func TestParseScope(t *testing.T) {
	assert.Nil(t, parseScope(nil))

	scope := parseScope([]string{"top cpu"})
	require.NotNil(t, scope)
	assert.Equal(t, m.Path("top cpu"), *scope)
}

func TestInspectAddress(t *testing.T) {
	resetFlagBindings(t)

	serve := newServeCmd()
	require.NoError(t, serve.ParseFlags([]string{"--listen", "127.0.0.1:7000"}))

	inspect := newInspectCmd()
	require.NoError(t, inspect.ParseFlags(nil))

	assert.Equal(t, "127.0.0.1:7000", inspectAddress())

	inspect = newInspectCmd()
	require.NoError(t, inspect.ParseFlags([]string{"--address", "10.0.0.1:4567"}))

	assert.Equal(t, "10.0.0.1:4567", inspectAddress())
}
