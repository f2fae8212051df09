package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/9046balaji/Heart-sub003/internal/client/auth"
	"github.com/9046balaji/Heart-sub003/internal/client/chat"
	"github.com/9046balaji/Heart-sub003/internal/client/cli"
	"github.com/9046balaji/Heart-sub003/internal/client/iocli"
	"github.com/9046balaji/Heart-sub003/internal/client/meds"
	"github.com/9046balaji/Heart-sub003/internal/client/netmon"
	"github.com/9046balaji/Heart-sub003/internal/client/queue"
	"github.com/9046balaji/Heart-sub003/internal/client/rpc"
	"github.com/9046balaji/Heart-sub003/internal/client/session"
	"github.com/9046balaji/Heart-sub003/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const healthPath = "/api/v1/health"

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "heart-client.db", "Path to local database")
	timeout := flag.Duration("timeout", rpc.DefaultTimeout, "Default request timeout")
	retries := flag.Uint64("retries", rpc.DefaultMaxRetries, "Retry budget for transient failures")
	offline := flag.Bool("offline", false, "Force offline mode (queue all mutations)")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// One connectivity signal feeds both the RPC short-circuit and the
	// post-reconnect queue drain
	monitor := netmon.New(*serverURL+healthPath, netmon.DefaultProbeInterval, logger)
	if *offline {
		monitor.SetOnline(false)
	}

	sessionStore := session.New(boltStorage, logger)
	client := rpc.New(rpc.Config{
		BaseURL:    *serverURL,
		Timeout:    *timeout,
		MaxRetries: *retries,
	}, rpc.NewTransport(), sessionStore, monitor.Online, logger)

	medQueue := queue.New(boltStorage, meds.Domain)
	coordinator := meds.NewCoordinator(client, medQueue, monitor.Online, logger)

	// Background connectivity probing and reconnect draining; forced
	// offline mode keeps both quiet
	if !*offline {
		go monitor.Run(ctx)
		go coordinator.Watch(ctx, monitor.Subscribe())
	}

	authService := auth.NewService(client, sessionStore, logger)
	chatService := chat.NewService(client)

	c := cli.New(iocli.NewStdio(), authService, coordinator, chatService)

	if err := run(ctx, c, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches one command
func run(ctx context.Context, c *cli.Cli, command string, args []string) error {
	switch command {
	case "login":
		return c.RunLogin(ctx)
	case "logout":
		return c.RunLogout(ctx)
	case "status":
		return c.RunStatus(ctx)
	case "add":
		return c.RunAdd(ctx, args)
	case "list":
		return c.RunList(ctx)
	case "rm":
		return c.RunRemove(ctx, args)
	case "chat":
		// Model inference is known-slow; give the stream room
		cctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		return c.RunChat(cctx, args)
	case "sync":
		return c.RunSync(ctx)
	default:
		cli.PrintUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printVersion() {
	fmt.Printf("heartctl %s\n", Version)
	fmt.Printf("Build date: %s\n", BuildDate)
	fmt.Printf("Git commit: %s\n", GitCommit)
}
