package netio

import "robots/internal/wire"

// Receive runs the receiver task: decode the next client message and
// dispatch it, until a codec failure, a protocol violation, or peer
// close. Join messages go straight to TryAcceptPlayer and are never
// recorded as a turn input; everything else overwrites the client's
// last message for the turn in progress.
func (c *Connection) Receive() {
	defer c.teardown()

	remote := c.conn.RemoteAddr().String()
	for {
		msg, err := wire.DecodeClientMessage(c.reader)
		if err != nil {
			return
		}
		if join, ok := msg.(wire.Join); ok {
			c.h.TryAcceptPlayer(c.ID, join.Name, remote)
			continue
		}
		c.h.SetLastMessage(c.ID, msg)
	}
}
