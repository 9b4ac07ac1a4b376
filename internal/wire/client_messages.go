package wire

import (
	"fmt"

	"robots/internal/model"
)

// ClientMessage is a message sent by a client over the server↔client
// stream transport, spec.md §4.1.
type ClientMessage interface {
	isClientMessage()
}

type Join struct{ Name string }
type PlaceBomb struct{}
type PlaceBlock struct{}
type Move struct{ Direction model.Direction }

func (Join) isClientMessage()       {}
func (PlaceBomb) isClientMessage()  {}
func (PlaceBlock) isClientMessage() {}
func (Move) isClientMessage()       {}

const (
	clientMsgJoin       = 0
	clientMsgPlaceBomb  = 1
	clientMsgPlaceBlock = 2
	clientMsgMove       = 3
	clientMsgMaxTag     = clientMsgMove
)

func EncodeClientMessage(w *Writer, m ClientMessage) error {
	switch msg := m.(type) {
	case Join:
		if err := w.U8(clientMsgJoin); err != nil {
			return err
		}
		return w.String(msg.Name)
	case PlaceBomb:
		return w.U8(clientMsgPlaceBomb)
	case PlaceBlock:
		return w.U8(clientMsgPlaceBlock)
	case Move:
		if err := w.U8(clientMsgMove); err != nil {
			return err
		}
		return w.U8(uint8(msg.Direction))
	default:
		return fmt.Errorf("wire: unknown client message type %T", m)
	}
}

// DecodeClientMessage decodes one client→server message. Any type
// byte greater than clientMsgMaxTag, or a Move with direction > 3, is
// a protocol violation and yields a *ProtocolError: spec.md §4.1
// requires the server to close the connection in that case.
func DecodeClientMessage(r *Reader) (ClientMessage, error) {
	tag, err := r.U8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case clientMsgJoin:
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		return Join{Name: name}, nil
	case clientMsgPlaceBomb:
		return PlaceBomb{}, nil
	case clientMsgPlaceBlock:
		return PlaceBlock{}, nil
	case clientMsgMove:
		d, err := r.U8()
		if err != nil {
			return nil, err
		}
		if d > uint8(model.MaxDirection) {
			return nil, protoErr("decode move direction", ErrInvalidTag)
		}
		return Move{Direction: model.Direction(d)}, nil
	default:
		return nil, protoErr("decode client message", ErrInvalidTag)
	}
}
