package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackmatch/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stackmatch SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the mode and level menu.
Progress, coins and power-ups are stored per SSH user name in the
server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stackmatch/host_key

Examples:
  stackmatch serve                           # Listen on :23234 with auto-generated key
  stackmatch serve --ssh :2222               # Listen on port 2222
  stackmatch serve --host-key ./my_host_key  # Use specific host key
  stackmatch serve --db ./stackmatch.db      # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger("stackmatch-ssh")
	cfg := loadConfig(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = firstNonEmpty(flagSSHAddr, cfg.Server.SSHAddr, sshCfg.Address)
	sshCfg.HostKeyPath = firstNonEmpty(flagHostKey, cfg.Server.HostKeyPath)
	sshCfg.IdleTimeout = cfg.IdleTimeout()
	if flagIdleTimeout > 0 {
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	sshCfg.TickRate = flagFPS
	sshCfg.Session = sessionOptions(cfg, logger)

	server, err := tui.NewSSHServer(sshCfg, store, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting stackmatch SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh <name>@localhost -p <port>")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
