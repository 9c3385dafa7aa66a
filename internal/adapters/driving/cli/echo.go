package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/echo"
)

var (
	echoAddr     string
	echoProbeURL string
)

var echoCmd = &cobra.Command{
	Use:   "echo",
	Short: "Run the WebSocket echo relay",
	Long: `Run a WebSocket relay that greets every client and echoes each
message back prefixed with "Server received: ".`,
	Args: cobra.NoArgs,
	RunE: runEcho,
}

var echoProbeCmd = &cobra.Command{
	Use:   "probe [message...]",
	Short: "Send one message to an echo relay and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEchoProbe,
}

func init() {
	echoCmd.Flags().StringVar(&echoAddr, "addr", "", "listen address (default from echo.addr)")
	echoProbeCmd.Flags().StringVar(&echoProbeURL, "url", "ws://localhost:8080/", "relay URL")
	echoCmd.AddCommand(echoProbeCmd)
	rootCmd.AddCommand(echoCmd)
}

func runEcho(cmd *cobra.Command, _ []string) error {
	addr := currentConfig().EchoAddr
	if echoAddr != "" {
		addr = echoAddr
	}
	cmd.Printf("Echo relay listening on ws://localhost%s/\n", addr)
	return echo.NewRelay().ListenAndServe(cmd.Context(), addr)
}

func runEchoProbe(cmd *cobra.Command, args []string) error {
	reply, err := echo.Probe(cmd.Context(), echoProbeURL, strings.Join(args, " "))
	if err != nil {
		return err
	}
	cmd.Println(reply)
	return nil
}
