package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"vhpidbg.dev/pkg/vhpidbg/internal/adapter"
	"vhpidbg.dev/pkg/vhpidbg/internal/domain"
)

const serveLongDescription = `Simulate the design described by a YAML file and serve debugger
connections until interrupted.

The simulation starts paused. A debugger resumes it with run_simulation and
may inspect the design hierarchy, reference items and query their recorded
values at any time. After the simulation finishes the server keeps answering
queries until it is interrupted, or until its only session ends when
accept-once is set.`

// serveCmd represents the serve command.
var serveCmd = newServeCmd()

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Simulate a design and serve debugger connections",
		Long:  serveLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cmd)
		},
	}

	configureServeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func configureServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(designFlagName, "d", viper.GetString(designFileKey), "YAML design file to simulate")
	bindFlagToConfig(cmd.Flags().Lookup(designFlagName), designFileKey)

	cmd.Flags().StringP(listenFlagName, "l", viper.GetString(listenAddressKey), "TCP address to listen on")
	bindFlagToConfig(cmd.Flags().Lookup(listenFlagName), listenAddressKey)

	cmd.Flags().String(modeFlagName, viper.GetString(serverModeKey), "session handling: sequential or concurrent")
	bindFlagToConfig(cmd.Flags().Lookup(modeFlagName), serverModeKey)

	cmd.Flags().Int(maxSessionsFlagName, viper.GetInt(serverMaxSessionsKey), "maximum concurrent sessions in concurrent mode")
	bindFlagToConfig(cmd.Flags().Lookup(maxSessionsFlagName), serverMaxSessionsKey)

	cmd.Flags().Bool(acceptOnceFlagName, viper.GetBool(serverAcceptOnceKey), "stop after the first session ends")
	bindFlagToConfig(cmd.Flags().Lookup(acceptOnceFlagName), serverAcceptOnceKey)

	cmd.Flags().String(spillDirFlagName, viper.GetString(recorderSpillDirKey), "directory for recorded samples")
	bindFlagToConfig(cmd.Flags().Lookup(spillDirFlagName), recorderSpillDirKey)
}

func serve(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := serverConfig()
	if err != nil {
		return err
	}

	design, err := adapter.LoadDesignFile(viper.GetString(designFileKey))
	if err != nil {
		return err
	}

	sim, err := adapter.NewDesignSimulator(design, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	plugin, err := domain.Startup(ctx, sim, cfg)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return ignoreCanceled(sim.Run(groupCtx))
	})

	group.Go(func() error {
		// The simulator stays paused without a session; end it with the server.
		defer cancel()

		select {
		case <-plugin.Ready():
		case <-groupCtx.Done():
			return nil
		}

		if _, err := plugin.Addr(); err != nil {
			return err
		}

		return ignoreCanceled(plugin.Wait(groupCtx))
	})

	err = group.Wait()
	slog.Info("Debug server stopped", "error", err)

	return errors.Join(err, plugin.Close())
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
