package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-sling/internal/config"
	"github.com/vovakirdan/gravity-sling/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sling SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own campaign. Progress is stored per SSH
user name in the server's database.

Host key handling:
  - If --host-key (or ssh.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.sling/host_key

Examples:
  sling serve                           # Listen on :23234 with auto-generated key
  sling serve --ssh :2222               # Listen on port 2222
  sling serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
}

func runServe(cmd *cobra.Command, _ []string) {
	settings := mustLoadSettings(cmd)
	logger := newLogger(os.Stderr, "sling-ssh", settings.LogLevel)

	src, err := resolveSource(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Fail early on a broken pack instead of in every session
	if _, err := src.campaign(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = settings.SSH.Address
	cfg.HostKeyPath = config.ExpandPath(settings.SSH.HostKey)
	cfg.DBPath = settings.DBPath
	cfg.IdleTimeout = settings.SSH.IdleTimeout
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.Pack = src.pack
	cfg.Open = src.campaign
	cfg.Settings = settings

	meter := startTelemetry(settings, logger)
	if meter != nil {
		cfg.Cues = meter
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting sling SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	err = server.ListenAndServe()
	stopTelemetry(meter, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
