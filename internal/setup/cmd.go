package setup

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewCommand returns the "setup" command used by the lite MCP server binary.
func NewCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "setup",
		Short:         "Register the report MCP server with a desktop MCP client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Client config file (defaults to the desktop client location)")

	var binary, dataDir string
	register := &cobra.Command{
		Use:   "register",
		Short: "Add or update the server entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := Register(Options{ConfigPath: configPath, BinaryPath: binary, DataDir: dataDir})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s in %s\n", ServerName, path)
			fmt.Fprintln(cmd.OutOrStdout(), "Restart the client to load the server.")
			return nil
		},
	}
	register.Flags().StringVar(&binary, "binary", "", "Path to the mcp-server-lite binary")
	register.Flags().StringVar(&dataDir, "data-dir", "", "Data directory passed to the server")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show registration status as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := GetStatus(configPath)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		},
	}

	cmd.AddCommand(register, status)
	return cmd
}
