// Package rpc implements the node's HTTP control surface: wallet queries,
// chain/mempool inspection, and the mining and transaction-submission
// endpoints described in the wire protocol.
package rpc

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gophercoin/gophercoin/internal/chain"
	"github.com/gophercoin/gophercoin/internal/gossip"
	klog "github.com/gophercoin/gophercoin/internal/log"
	"github.com/gophercoin/gophercoin/internal/wallet"
)

// Server is the HTTP control surface: a *http.Server wrapping a plain
// http.ServeMux, one handler per route.
type Server struct {
	addr   string
	chain  *chain.Chain
	wallet *wallet.Wallet
	broker *gossip.Broker

	server *http.Server
	ln     net.Listener
	logger zerolog.Logger
}

// New creates an HTTP server bound to addr, serving the node's control
// surface against chain (and its embedded UTXO set and mempool), wallet,
// and broker.
func New(addr string, c *chain.Chain, w *wallet.Wallet, broker *gossip.Broker) *Server {
	s := &Server{
		addr:   addr,
		chain:  c,
		wallet: w,
		broker: broker,
		logger: klog.WithComponent("rpc"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ping", s.handlePing)
	mux.HandleFunc("GET /api/blocks", s.handleBlocks)
	mux.HandleFunc("POST /api/mine-raw-block", s.handleMineRawBlock)
	mux.HandleFunc("POST /api/mine-block", s.handleMineBlock)
	mux.HandleFunc("GET /api/address", s.handleAddress)
	mux.HandleFunc("GET /api/balance", s.handleBalance)
	mux.HandleFunc("GET /api/unspent-transaction-outputs", s.handleUnspentOutputs)
	mux.HandleFunc("GET /api/my-unspent-transaction-outputs", s.handleMyUnspentOutputs)
	mux.HandleFunc("POST /api/mine-transaction", s.handleMineTransaction)
	mux.HandleFunc("POST /api/send-transaction", s.handleSendTransaction)
	mux.HandleFunc("GET /api/transaction-pool", s.handleTransactionPool)
	mux.HandleFunc("POST /api/add-peer", s.handleAddPeer)
	mux.HandleFunc("GET /api/peers", s.handlePeers)
	mux.HandleFunc("GET /api/info", s.handleInfo)

	s.server = &http.Server{
		Handler:      s.logged(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// logged wraps next with a zerolog access log line per request.
func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// Start begins listening and serving in a background goroutine. It
// returns once the listener is bound.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("http server error")
		}
	}()
	return nil
}

// Addr returns the bound listener address (useful when addr was ":0").
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the {code, message, errors?} envelope. Validation
// failures carry a non-empty errors list; domain failures use code 500
// with a descriptive message and no errors list.
func writeError(w http.ResponseWriter, code int, message string, errs ...string) {
	writeJSON(w, code, ErrorBody{Code: code, Message: message, Errors: errs})
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, err.Error())
}
