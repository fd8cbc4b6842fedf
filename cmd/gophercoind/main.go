// Gophercoin node daemon.
//
// Usage:
//
//	gophercoind [--socket-port=2794 --http-port=8000 --private-key-path=...]
//	gophercoind --help
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gophercoin/gophercoin/config"
	"github.com/gophercoin/gophercoin/internal/node"
)

func main() {
	// ── 1. Parse flags ───────────────────────────────────────────────────
	flags, err := config.ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	cfg := flags.ToConfig()

	// ── 2. Build the node (logger init, wallet load/create, fresh chain) ─
	n, err := node.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// ── 3. Start listeners ───────────────────────────────────────────────
	if err := n.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "gophercoind listening: socket=%s http=%s address=%s\n",
		n.SocketAddr(), n.HTTPAddr(), n.Address())

	// ── 4. Wait for shutdown ─────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	n.Stop()
}
