package clientstate

import (
	"robots/internal/wire"
)

// TranslateFrontendInput implements spec.md §4.5's GUI-datagram
// handling: while in the lobby, any valid GUI input becomes a Join
// with this client's player name; otherwise it translates
// transparently. Invalid datagrams never reach here —
// wire.DecodeFrontendInput already dropped them.
func (s *State) TranslateFrontendInput(in wire.FrontendInput) wire.ClientMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isLobby {
		return wire.Join{Name: s.playerName}
	}

	switch m := in.(type) {
	case wire.FEPlaceBomb:
		return wire.PlaceBomb{}
	case wire.FEPlaceBlock:
		return wire.PlaceBlock{}
	case wire.FEMove:
		return wire.Move{Direction: m.Direction}
	default:
		return nil
	}
}
