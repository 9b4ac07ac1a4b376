package netio

import "robots/internal/wire"

// Send runs the sender task: block on a pop from the outbound queue,
// encode the message into the buffered writer, and flush it as one
// frame, until the queue closes or a write fails.
func (c *Connection) Send() {
	defer c.teardown()

	for {
		item, ok := c.queue.Pop()
		if !ok {
			return
		}
		msg, ok := item.(wire.ServerMessage)
		if !ok {
			continue
		}
		if err := wire.EncodeServerMessage(c.writer, msg); err != nil {
			return
		}
		if err := c.bufOut.Flush(); err != nil {
			return
		}
	}
}
