package clientstate

import (
	"net"

	"robots/internal/wire"
)

// ServerReader owns the TCP connection to the game server: it decodes
// frames, applies each to the shared State, and forwards resulting
// snapshots to a local UDP socket bound to the front-end renderer's
// address.
type ServerReader struct {
	conn    net.Conn
	reader  *wire.Reader
	state   *State
	gui     *net.UDPConn
	guiAddr *net.UDPAddr
}

// NewServerReader wraps conn (already dialed to the game server).
func NewServerReader(conn net.Conn, state *State, gui *net.UDPConn, guiAddr *net.UDPAddr) *ServerReader {
	return &ServerReader{
		conn:    conn,
		reader:  wire.NewReader(conn),
		state:   state,
		gui:     gui,
		guiAddr: guiAddr,
	}
}

// Run decodes server frames until a codec failure or peer close,
// applying each to the shared State and emitting a snapshot datagram
// whenever the frame was meaningful to the GUI.
func (r *ServerReader) Run() error {
	for {
		msg, err := wire.DecodeServerMessage(r.reader)
		if err != nil {
			return err
		}
		snap, emit := r.state.ApplyServerMessage(msg)
		if !emit {
			continue
		}
		data, err := wire.EncodeSnapshot(snap)
		if err != nil {
			continue
		}
		_, _ = r.gui.WriteToUDP(data, r.guiAddr)
	}
}
