package gossip

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Direction records which side initiated a peer connection.
type Direction int

const (
	// Inbound connections arrived via the broker's WebSocket listener.
	Inbound Direction = iota
	// Outbound connections were dialed out by Peer.
	Outbound
)

func (d Direction) String() string {
	if d == Outbound {
		return "outbound"
	}
	return "inbound"
}

// Connection wraps a single peer's WebSocket socket. Writes are
// serialized with a mutex since a reader goroutine and any number of
// broadcasting goroutines may send to it concurrently.
type Connection struct {
	ID        uint64
	URL       string
	Direction Direction

	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newConnection(id uint64, url string, dir Direction, conn *websocket.Conn) *Connection {
	return &Connection{ID: id, URL: url, Direction: dir, conn: conn}
}

func (c *Connection) send(p Payload) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(p)
}

func (c *Connection) close() error {
	return c.conn.Close()
}
