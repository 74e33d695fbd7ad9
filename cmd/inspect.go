package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vhpidbg.dev/pkg/vhpidbg/internal/adapter"
	"vhpidbg.dev/pkg/vhpidbg/internal/controller"
	m "vhpidbg.dev/pkg/vhpidbg/internal/model"
)

// inspectCmd represents the inspect command.
var inspectCmd = newInspectCmd()

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [scope]",
		Short: "Connect to a debug server and show its design",
		Long: `Connect to a running debug server, greet it and print the simulation status,
the scopes under the given scope (the design root by default) and its items.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := cmd.Flags().GetBool(rawFlagName)
			if err != nil {
				return err
			}

			ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))

			err = inspect(cmd, ui, inspectAddress(), parseScope(args), raw)
			if err != nil {
				ui.DisplayError(cmd.Context(), err)
			}

			return err
		},
	}

	configureInspectFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func configureInspectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(addressFlagName, "a", viper.GetString(inspectAddressKey), "server address (defaults to listen.address)")
	bindFlagToConfig(cmd.Flags().Lookup(addressFlagName), inspectAddressKey)

	cmd.Flags().Duration(timeoutFlagName, viper.GetDuration(inspectDialTimeoutKey), "how long to keep retrying the connection")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), inspectDialTimeoutKey)

	cmd.Flags().Bool(rawFlagName, false, "print every protocol frame")
}

func inspectAddress() string {
	if address := viper.GetString(inspectAddressKey); address != "" {
		return address
	}

	return viper.GetString(listenAddressKey)
}

func parseScope(args []string) *m.Path {
	if len(args) == 0 {
		return nil
	}

	scope := m.Path(args[0])

	return &scope
}

func inspect(cmd *cobra.Command, ui controller.UI, address string, scope *m.Path, raw bool) error {
	ctx := cmd.Context()

	opts := adapter.DialOptions{
		Timeout:      viper.GetDuration(inspectDialTimeoutKey),
		MaxFrameSize: viper.GetInt(wireMaxFrameSizeKey),
	}

	if raw {
		opts.Observer = func(outbound bool, payload []byte) {
			ui.DisplayFrame(ctx, outbound, payload)
		}
	}

	client, err := adapter.Dial(ctx, address, opts)
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	greeting, err := client.Greet(ctx)
	if err != nil {
		return fmt.Errorf("greeting failed: %w", err)
	}

	status, err := client.Status(ctx)
	if err != nil {
		return fmt.Errorf("get_simulation_status failed: %w", err)
	}

	scopes, err := client.ListScopes(ctx, scope)
	if err != nil {
		return fmt.Errorf("list_scopes failed: %w", err)
	}

	items, err := client.ListItems(ctx, scope)
	if err != nil {
		return fmt.Errorf("list_items failed: %w", err)
	}

	return ui.DisplaySnapshot(ctx, controller.Snapshot{
		Address:  address,
		Greeting: greeting,
		Status:   status,
		Scope:    scope,
		Scopes:   scopes,
		Items:    items,
	})
}
