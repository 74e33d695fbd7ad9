package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const sampleDesign = `# Behavioral design simulated by "vhpidbg serve".
step_fs: 1000
tick: 10ms
end_time: "0.000001000000000"
top:
  name: top
  unit: top_entity
  signals:
    - name: clk
      width: 1
      direction: in
      generator: clock
    - name: count
      width: 8
      direction: out
      generator: counter
  memories:
    - name: ram
      width: 8
      depth: 4
      init: [1, 2, 3, 4]
  scopes:
    - name: cpu
      unit: cpu
      signals:
        - name: pc
          width: 32
          generator: counter
`

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default vhpidbg.yaml and a sample design",
		Long: `Create a vhpidbg.yaml in the current working directory populated with the
current CLI defaults, and a sample design file for "vhpidbg serve" when the
configured design file does not exist yet.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			designPath := viper.GetString(designFileKey)

			written, err := writeSampleDesign(designPath)
			if err != nil {
				return err
			}

			if written {
				cmd.Printf("wrote %s and %s\n", targetPath, designPath)
			} else {
				cmd.Printf("wrote %s, kept existing %s\n", targetPath, designPath)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// writeSampleDesign creates path with the sample design unless it exists.
func writeSampleDesign(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to create design file: %w", err)
	}

	if _, err := f.WriteString(sampleDesign); err != nil {
		_ = f.Close()

		return false, fmt.Errorf("failed to write design file: %w", err)
	}

	return true, f.Close()
}
