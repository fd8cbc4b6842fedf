// Package node wires the chain, wallet, gossip broker, and HTTP control
// surface into a single runnable process.
package node

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gophercoin/gophercoin/config"
	"github.com/gophercoin/gophercoin/internal/chain"
	"github.com/gophercoin/gophercoin/internal/gossip"
	klog "github.com/gophercoin/gophercoin/internal/log"
	"github.com/gophercoin/gophercoin/internal/rpc"
	"github.com/gophercoin/gophercoin/internal/wallet"
)

// Node owns the chain engine, wallet, gossip broker, and the two listeners
// (WebSocket gossip socket, HTTP control surface) that expose them.
type Node struct {
	chain  *chain.Chain
	wallet *wallet.Wallet
	broker *gossip.Broker

	socketAddr   string
	socketServer *http.Server
	socketLn     net.Listener

	rpcServer *rpc.Server

	logger zerolog.Logger
}

// New builds a Node from cfg: it initializes logging, loads (or creates)
// the wallet key, starts a fresh chain, and constructs the gossip broker
// and RPC server, without binding any listener yet.
func New(cfg *config.Config) (*Node, error) {
	if err := klog.Init(cfg.LogLevel, cfg.LogJSON, ""); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger := klog.WithComponent("node")

	w, err := wallet.Load(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("load wallet: %w", err)
	}

	c := chain.New()
	broker := gossip.NewBroker(c)
	rpcServer := rpc.New(cfg.HTTPAddr, c, w, broker)

	logger.Info().
		Str("address", w.Address().String()).
		Str("socket_addr", cfg.SocketAddr).
		Str("http_addr", cfg.HTTPAddr).
		Msg("node initialized")

	return &Node{
		chain:      c,
		wallet:     w,
		broker:     broker,
		socketAddr: cfg.SocketAddr,
		rpcServer:  rpcServer,
		logger:     logger,
	}, nil
}

// Start binds both listeners and returns once they are accepting
// connections. It never blocks waiting for shutdown; callers wait on
// their own signal (see cmd/gophercoind).
func (n *Node) Start() error {
	ln, err := net.Listen("tcp", n.socketAddr)
	if err != nil {
		return fmt.Errorf("listen socket: %w", err)
	}
	n.socketLn = ln

	mux := http.NewServeMux()
	mux.Handle("/", n.broker)
	n.socketServer = &http.Server{Handler: mux}

	go func() {
		if err := n.socketServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			n.logger.Error().Err(err).Msg("gossip socket server error")
		}
	}()

	if err := n.rpcServer.Start(); err != nil {
		n.socketServer.Close()
		return fmt.Errorf("start rpc: %w", err)
	}

	n.logger.Info().
		Str("socket_addr", n.socketLn.Addr().String()).
		Str("http_addr", n.rpcServer.Addr()).
		Msg("node started")
	return nil
}

// Stop gracefully shuts both listeners down.
func (n *Node) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if n.socketServer != nil {
		if err := n.socketServer.Shutdown(ctx); err != nil {
			n.logger.Error().Err(err).Msg("gossip socket shutdown error")
		}
	}
	if err := n.rpcServer.Stop(); err != nil {
		n.logger.Error().Err(err).Msg("rpc shutdown error")
	}
	n.logger.Info().Msg("node stopped")
}

// Height returns the current chain tip height.
func (n *Node) Height() uint64 {
	return n.chain.Height()
}

// SocketAddr returns the bound gossip listener address.
func (n *Node) SocketAddr() string {
	if n.socketLn != nil {
		return n.socketLn.Addr().String()
	}
	return n.socketAddr
}

// HTTPAddr returns the bound RPC listener address.
func (n *Node) HTTPAddr() string {
	return n.rpcServer.Addr()
}

// Address returns the node wallet's public address.
func (n *Node) Address() string {
	return n.wallet.Address().String()
}
