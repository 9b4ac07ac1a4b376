// Package sockopts sets the socket options spec.md §6 requires that
// Go's net package does not expose through its ordinary Dial/Listen
// API: an explicit dual-stack IPv6 listener (IPV6_V6ONLY cleared) and
// SO_REUSEADDR, so a restarted server doesn't fail to rebind its port
// immediately after exit.
package sockopts

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// Control is a net.ListenConfig.Control callback that applies the
// dual-stack socket options to TCP listeners and UDP sockets alike. Pattern grounded on the control-callback idiom used
// for IPv6 socket tuning in
// _examples/r0gal1kk-net-works-5th-semester/task-1/main.go (there via
// golang.org/x/net/ipv4 and ipv6; here directly via
// golang.org/x/sys/unix since no per-packet control messages are
// needed, only the listen-time options).
func Control(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		if setErr := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); setErr != nil {
			sockErr = setErr
			return
		}
		// Only meaningful for AF_INET6 sockets; harmless no-op
		// attempts on AF_INET are swallowed since dual-stack
		// listeners are always opened against "tcp"/"udp" (not
		// "tcp4"/"udp4"), which Go resolves to AF_INET6 when the
		// platform supports it.
		if network == "tcp" || network == "tcp6" || network == "udp" || network == "udp6" {
			_ = unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0)
		}
	})
	if err != nil {
		return err
	}
	return sockErr
}
