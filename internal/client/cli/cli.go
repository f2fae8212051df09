// Package cli implements the terminal commands of the health assistant
// client. Commands are thin: all synchronization mechanics live in the
// rpc client and the meds coordinator.
package cli

import (
	"fmt"

	"github.com/9046balaji/Heart-sub003/internal/client/auth"
	"github.com/9046balaji/Heart-sub003/internal/client/chat"
	"github.com/9046balaji/Heart-sub003/internal/client/iocli"
	"github.com/9046balaji/Heart-sub003/internal/client/meds"
)

// Cli holds the wired services behind the terminal commands
type Cli struct {
	io          iocli.IO
	authService *auth.Service
	coordinator *meds.Coordinator
	chatService *chat.Service
}

// New creates the CLI over its services
func New(io iocli.IO, authService *auth.Service, coordinator *meds.Coordinator, chatService *chat.Service) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		coordinator: coordinator,
		chatService: chatService,
	}
}

// PrintUsage prints the command summary
func PrintUsage() {
	fmt.Println("Usage: heartctl [flags] <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login                    Authenticate with the server")
	fmt.Println("  logout                   Clear the local session")
	fmt.Println("  status                   Show session and sync status")
	fmt.Println("  add <name> <dose>        Track a new medication")
	fmt.Println("  list                     List tracked medications")
	fmt.Println("  rm <id>                  Stop tracking a medication")
	fmt.Println("  chat <message>           Ask the assistant")
	fmt.Println("  sync                     Replay queued offline changes")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -server <url>            Server URL")
	fmt.Println("  -db <path>               Path to the local database")
	fmt.Println("  -offline                 Force offline mode")
	fmt.Println("  -version                 Show version information")
}
