// Package netio hosts the per-connection network plumbing: the TCP
// accept loop and the paired sender/receiver tasks spec.md §4.3
// describes. Grounded on internal/server/websocket.go's
// per-connection goroutine split (one reader loop, one writer
// goroutine draining a channel), generalized from websocket text
// frames to the raw wire codec and from a buffered channel to the
// hub's unbounded blocking queue.
package netio

import (
	"bufio"
	"net"
	"sync"

	"robots/internal/hub"
	"robots/internal/logging"
	"robots/internal/wire"
)

// Connection bundles one accepted TCP socket with its wire codec, its
// outbound queue, and the teardown machinery spec.md §4.3 requires:
// either task may observe a failure, and teardown must be idempotent
// since both may race to call it. Per SPEC_FULL.md §4.1, the socket is
// wrapped in a bufio.Reader/bufio.Writer so a multi-field frame costs
// one read/write syscall pair instead of one per primitive.
type Connection struct {
	ID     hub.ClientID
	conn   net.Conn
	reader *wire.Reader
	writer *wire.Writer
	bufOut *bufio.Writer
	queue  *hub.Queue
	h      *hub.Hub
	log    *logging.Logger

	once sync.Once
}

// NewConnection wraps an accepted socket, registers it with h, and
// returns a ready-to-run Connection. Callers start Receive and Send
// as separate goroutines.
func NewConnection(conn net.Conn, h *hub.Hub, log *logging.Logger) *Connection {
	id := h.AcceptClient()
	q := h.CreateQueue(id)
	bufOut := bufio.NewWriter(conn)
	return &Connection{
		ID:     id,
		conn:   conn,
		reader: wire.NewReader(bufio.NewReader(conn)),
		writer: wire.NewWriter(bufOut),
		bufOut: bufOut,
		queue:  q,
		h:      h,
		log:    log,
	}
}

// teardown closes the socket, closes the outbound queue (unblocking
// the sender), and erases the client from the hub. Safe to call from
// both tasks; only the first call does anything.
func (c *Connection) teardown() {
	c.once.Do(func() {
		_ = c.conn.Close()
		c.queue.Close()
		c.h.EraseClient(c.ID)
	})
}
