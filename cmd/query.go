package cmd

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"pathctx/pkg/conf"
	"pathctx/pkg/listener"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Sends one request to a running pathctx server",
	Long: `Sends a single request to the websocket endpoint of a server started
with "pathctx serve" and prints the response.`,
	Args:         cobra.NoArgs,
	RunE:         runQuery,
	SilenceUsage: true,
}

// Query flags
var (
	qServer    string
	qMethod    string
	qLine      string
	qBuffer    string
	qBufferDir string
	qConfig    string
	qTimeout   time.Duration
)

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&qServer, "server", net.JoinHostPort(conf.DefaultAddress, strconv.Itoa(conf.DefaultPort)), "Server address")
	queryCmd.Flags().StringVar(&qMethod, "method", listener.MethodComplete, "Request method [complete|capabilities]")
	queryCmd.Flags().StringVar(&qLine, "line", "", "Line text up to the cursor")
	queryCmd.Flags().StringVar(&qBuffer, "buffer", "", "Buffer identifier")
	queryCmd.Flags().StringVar(&qBufferDir, "buffer-dir", "", "Directory of the edited buffer")
	queryCmd.Flags().StringVar(&qConfig, "config", "", "JSON configuration blob merged by the server")
	queryCmd.Flags().DurationVar(&qTimeout, "timeout", 10*time.Second, "Time to wait for the response")
}

func runQuery(cmd *cobra.Command, args []string) error {
	if qConfig != "" && !gjson.Valid(qConfig) {
		return fmt.Errorf("--config is not valid JSON")
	}

	wsURL, err := listener.WebSocketURL(qServer)
	if err != nil {
		return err
	}
	conn, _, err := listener.DefaultWebSocketDialer.DialContext(cmd.Context(), wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	defer func() { _ = conn.Close() }()

	req := map[string]any{
		"id":        uuid.NewString(),
		"method":    qMethod,
		"buffer":    qBuffer,
		"line":      qLine,
		"bufferDir": qBufferDir,
	}
	if qConfig != "" {
		req["config"] = gjson.Parse(qConfig).Value()
	}
	if err = conn.WriteJSON(req); err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(qTimeout))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if e := gjson.GetBytes(data, "error"); e.Exists() {
		return fmt.Errorf("server error: %s", e.String())
	}
	out := pretty.Pretty(data)
	if !color.NoColor {
		out = pretty.Color(out, nil)
	}
	fmt.Print(string(out))
	return nil
}
