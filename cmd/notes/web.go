package main

import (
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/aretw0/notes/pkg/web"
	"github.com/spf13/cobra"
)

var (
	webWatch bool
)

// webCmd represents the web command
var webCmd = &cobra.Command{
	Use:   "web [port]",
	Short: "Serve the notes as a local web page",
	Long: `Serve a read-only page listing every note.
The notes are read once at startup; pass --watch to reload them whenever the store file changes.`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := listenAddr(args)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := openStore(true)
		if err != nil {
			return err
		}

		list, err := svc.ListAll(ctx)
		if err != nil {
			return err
		}

		srv := web.New(list,
			web.WithLogger(slog.Default()),
			web.WithRateLimit(cfg.Web.RateLimitRPS, cfg.Web.RateLimitBurst),
		)

		if webWatch {
			events, err := svc.Watch(ctx)
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", cfg.File, err)
			}
			srv.Follow(ctx, events, svc.ListAll)
		}

		return srv.Listen(ctx, addr)
	},
}

// listenAddr combines the configured host with the optional port argument,
// falling back to web.port.
func listenAddr(args []string) (string, error) {
	port := cfg.Web.Port
	if len(args) == 1 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 || p > 65535 {
			return "", fmt.Errorf("invalid port %q", args[0])
		}
		port = p
	}
	return net.JoinHostPort(cfg.Web.Host, strconv.Itoa(port)), nil
}

func init() {
	rootCmd.AddCommand(webCmd)
	// Read through viper as web.host; see config.Load.
	webCmd.Flags().String("host", "", "Interface to bind (default 127.0.0.1)")
	webCmd.Flags().BoolVar(&webWatch, "watch", false, "Reload the page data when the store file changes")
}
