package clientstate

import (
	"net"

	"robots/internal/wire"
)

// datagramMaxSize bounds a single read from the GUI's UDP socket; the
// largest valid front-end input (FEMove) is 2 bytes, so this is purely
// a generous ceiling against a misbehaving peer, not a protocol limit.
const datagramMaxSize = 2048

// FrontendReader owns the local UDP socket bound for the front-end
// renderer: it receives GUI input datagrams, translates them against
// the shared State, and forwards the result to the game server over
// the TCP connection the ServerReader is concurrently reading from.
type FrontendReader struct {
	gui    *net.UDPConn
	state  *State
	server *wire.Writer
}

// NewFrontendReader wraps gui (already bound) and server (the writer
// half of the TCP connection to the game server).
func NewFrontendReader(gui *net.UDPConn, state *State, server *wire.Writer) *FrontendReader {
	return &FrontendReader{gui: gui, state: state, server: server}
}

// Run receives GUI datagrams until a socket error, translating each
// valid one into a ClientMessage and writing it to the server.
// Malformed datagrams are silently dropped per spec.md §4.1.
func (r *FrontendReader) Run() error {
	buf := make([]byte, datagramMaxSize)
	for {
		n, _, err := r.gui.ReadFromUDP(buf)
		if err != nil {
			return err
		}
		input, ok := wire.DecodeFrontendInput(buf[:n])
		if !ok {
			continue
		}
		msg := r.state.TranslateFrontendInput(input)
		if msg == nil {
			continue
		}
		if err := wire.EncodeClientMessage(r.server, msg); err != nil {
			return err
		}
	}
}
