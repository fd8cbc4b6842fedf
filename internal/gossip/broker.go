// Package gossip is the single-owner broker that keeps the peer-connection
// map, reacts to locally produced chain/mempool updates, and applies
// remote ones under the chain engine's consistency rules.
package gossip

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gophercoin/gophercoin/internal/chain"
	klog "github.com/gophercoin/gophercoin/internal/log"
	"github.com/gophercoin/gophercoin/pkg/block"
	"github.com/gophercoin/gophercoin/pkg/tx"
)

// ErrPeerConnect is returned by Peer when the outbound dial fails.
var ErrPeerConnect = errors.New("peer-connect")

// PeerInfo describes one connected peer for read-only surfaces like
// GET /api/peers.
type PeerInfo struct {
	ID        uint64 `json:"id"`
	URL       string `json:"url"`
	Direction string `json:"direction"`
}

// Broker owns the peer_id -> Connection map and is the only component
// that ever appends a block or a transaction on behalf of the network.
// All map access is guarded by mu; mining, signing, and HTTP handling
// never touch it directly.
type Broker struct {
	chain *chain.Chain

	mu     sync.Mutex
	peers  map[uint64]*Connection
	nextID uint64

	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewBroker creates a broker with an empty peer set, fanning remote
// updates into c.
func NewBroker(c *chain.Chain) *Broker {
	return &Broker{
		chain:    c,
		peers:    make(map[uint64]*Connection),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		logger:   klog.WithComponent("gossip"),
	}
}

// ServeHTTP upgrades an inbound request to a WebSocket and joins the
// resulting connection. Mounted at the listener's root path.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	b.join(conn, r.RemoteAddr, Inbound)
}

// Peer dials url and joins the resulting socket, which registers it and
// spawns its reader. A dial failure is reported to the caller and produces
// no Join.
func (b *Broker) Peer(url string) error {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPeerConnect, url, err)
	}
	b.join(conn, url, Outbound)
	return nil
}

// join registers conn under a freshly minted peer id and spawns its
// reader. Joining is the only way a peer id enters the map, so
// last-writer-wins is trivially satisfied: every id is unique to one
// connection for its lifetime.
func (b *Broker) join(conn *websocket.Conn, url string, dir Direction) {
	id := atomic.AddUint64(&b.nextID, 1)
	c := newConnection(id, url, dir, conn)

	b.mu.Lock()
	b.peers[id] = c
	b.mu.Unlock()

	b.logger.Info().Uint64("peer", id).Str("url", url).Str("direction", dir.String()).Msg("peer joined")
	go b.read(c)
}

// Quit drops a peer from the map and releases its socket. Safe to call
// more than once for the same id.
func (b *Broker) Quit(id uint64) {
	b.mu.Lock()
	c, ok := b.peers[id]
	if ok {
		delete(b.peers, id)
	}
	b.mu.Unlock()

	if !ok {
		return
	}
	c.close()
	b.logger.Info().Uint64("peer", id).Msg("peer quit")
}

// Peers returns a snapshot of the currently connected peers.
func (b *Broker) Peers() []PeerInfo {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]PeerInfo, 0, len(b.peers))
	for _, c := range b.peers {
		out = append(out, PeerInfo{ID: c.ID, URL: c.URL, Direction: c.Direction.String()})
	}
	return out
}

// read is the per-peer reader: one goroutine per connection, so messages
// from a single peer are always applied in the order they arrived.
func (b *Broker) read(c *Connection) {
	defer b.Quit(c.ID)

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		p, err := decodePayload(data)
		if err != nil {
			b.logger.Warn().Uint64("peer", c.ID).Err(err).Msg("bad-payload")
			continue
		}
		b.handle(c.ID, p)
	}
}

func (b *Broker) handle(sender uint64, p Payload) {
	switch p.Type {
	case TypeBlockchain:
		b.handleBlockchain(sender, p)
	case TypeTransaction:
		b.handleTransaction(sender, p)
	default:
		b.logger.Warn().Uint64("peer", sender).Str("type", p.Type).Msg("bad-payload")
	}
}

func (b *Broker) handleBlockchain(sender uint64, p Payload) {
	incoming, err := decodeBlockchain(p)
	if err != nil {
		b.logger.Warn().Uint64("peer", sender).Err(err).Msg("bad-payload")
		return
	}
	if !b.chain.ShouldReplace(incoming) {
		return
	}
	if err := b.chain.ReplaceChain(incoming); err != nil {
		// Lost a race against another replacement between the check and
		// the swap; not an error worth surfacing to the peer.
		return
	}
	except := sender
	b.Blockchain(&except)
}

func (b *Broker) handleTransaction(sender uint64, p Payload) {
	transactions, err := decodeMempool(p)
	if err != nil {
		b.logger.Warn().Uint64("peer", sender).Err(err).Msg("bad-payload")
		return
	}

	admitted := false
	for _, t := range transactions {
		if err := b.chain.Mempool().Add(t, b.chain.UTXOSet()); err == nil {
			admitted = true
		}
	}
	if admitted {
		except := sender
		b.Transaction(&except)
	}
}

// Blockchain serializes the current chain and sends it to every
// registered peer except the one named by except, if any.
func (b *Broker) Blockchain(except *uint64) {
	payload, err := encodePayload(TypeBlockchain, b.chain.Blocks())
	if err != nil {
		b.logger.Error().Err(err).Msg("encode chain snapshot")
		return
	}
	b.broadcast(payload, except)
}

// Transaction serializes the current mempool and sends it to every
// registered peer except the one named by except, if any.
func (b *Broker) Transaction(except *uint64) {
	payload, err := encodePayload(TypeTransaction, b.chain.Mempool().All())
	if err != nil {
		b.logger.Error().Err(err).Msg("encode mempool snapshot")
		return
	}
	b.broadcast(payload, except)
}

func (b *Broker) broadcast(p Payload, except *uint64) {
	b.mu.Lock()
	targets := make([]*Connection, 0, len(b.peers))
	for id, c := range b.peers {
		if except != nil && id == *except {
			continue
		}
		targets = append(targets, c)
	}
	b.mu.Unlock()

	for _, c := range targets {
		if err := c.send(p); err != nil {
			b.logger.Warn().Uint64("peer", c.ID).Err(err).Msg("send failed")
		}
	}
}

func decodeBlockchain(p Payload) ([]*block.Block, error) {
	var blocks []*block.Block
	err := jsonUnmarshalString(p.Data, &blocks)
	return blocks, err
}

func decodeMempool(p Payload) ([]*tx.Transaction, error) {
	var transactions []*tx.Transaction
	err := jsonUnmarshalString(p.Data, &transactions)
	return transactions, err
}
