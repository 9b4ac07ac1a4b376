package wire

import (
	"fmt"

	"robots/internal/model"
)

// ServerMessage is a message sent by the server over the
// server↔client stream transport, spec.md §4.1.
type ServerMessage interface {
	isServerMessage()
}

type Hello struct {
	ServerName      string
	PlayersCount    uint8
	SizeX           uint16
	SizeY           uint16
	GameLength      uint16
	ExplosionRadius uint16
	BombTimer       uint16
}

type AcceptedPlayer struct {
	ID     model.PlayerId
	Player model.Player
}

type GameStarted struct {
	Players map[model.PlayerId]model.Player
}

type Turn struct {
	Turn   uint16
	Events []Event
}

type GameEnded struct {
	Scores map[model.PlayerId]model.Score
}

func (Hello) isServerMessage()          {}
func (AcceptedPlayer) isServerMessage() {}
func (GameStarted) isServerMessage()    {}
func (Turn) isServerMessage()           {}
func (GameEnded) isServerMessage()      {}

const (
	serverMsgHello          = 0
	serverMsgAcceptedPlayer = 1
	serverMsgGameStarted    = 2
	serverMsgTurn           = 3
	serverMsgGameEnded      = 4
)

func EncodeServerMessage(w *Writer, m ServerMessage) error {
	switch msg := m.(type) {
	case Hello:
		if err := w.U8(serverMsgHello); err != nil {
			return err
		}
		if err := w.String(msg.ServerName); err != nil {
			return err
		}
		if err := w.U8(msg.PlayersCount); err != nil {
			return err
		}
		if err := w.U16(msg.SizeX); err != nil {
			return err
		}
		if err := w.U16(msg.SizeY); err != nil {
			return err
		}
		if err := w.U16(msg.GameLength); err != nil {
			return err
		}
		if err := w.U16(msg.ExplosionRadius); err != nil {
			return err
		}
		return w.U16(msg.BombTimer)
	case AcceptedPlayer:
		if err := w.U8(serverMsgAcceptedPlayer); err != nil {
			return err
		}
		if err := EncodePlayerId(w, msg.ID); err != nil {
			return err
		}
		return EncodePlayer(w, msg.Player)
	case GameStarted:
		if err := w.U8(serverMsgGameStarted); err != nil {
			return err
		}
		return WriteMap(w, msg.Players, EncodePlayerId, EncodePlayer)
	case Turn:
		if err := w.U8(serverMsgTurn); err != nil {
			return err
		}
		if err := w.U16(msg.Turn); err != nil {
			return err
		}
		return WriteList(w, msg.Events, EncodeEvent)
	case GameEnded:
		if err := w.U8(serverMsgGameEnded); err != nil {
			return err
		}
		return WriteMap(w, msg.Scores, EncodePlayerId, EncodeScore)
	default:
		return fmt.Errorf("wire: unknown server message type %T", m)
	}
}

func DecodeServerMessage(r *Reader) (ServerMessage, error) {
	tag, err := r.U8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case serverMsgHello:
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		count, err := r.U8()
		if err != nil {
			return nil, err
		}
		sx, err := r.U16()
		if err != nil {
			return nil, err
		}
		sy, err := r.U16()
		if err != nil {
			return nil, err
		}
		length, err := r.U16()
		if err != nil {
			return nil, err
		}
		radius, err := r.U16()
		if err != nil {
			return nil, err
		}
		timer, err := r.U16()
		if err != nil {
			return nil, err
		}
		return Hello{
			ServerName:      name,
			PlayersCount:    count,
			SizeX:           sx,
			SizeY:           sy,
			GameLength:      length,
			ExplosionRadius: radius,
			BombTimer:       timer,
		}, nil
	case serverMsgAcceptedPlayer:
		id, err := DecodePlayerId(r)
		if err != nil {
			return nil, err
		}
		p, err := DecodePlayer(r)
		if err != nil {
			return nil, err
		}
		return AcceptedPlayer{ID: id, Player: p}, nil
	case serverMsgGameStarted:
		players, err := ReadMap(r, DecodePlayerId, DecodePlayer)
		if err != nil {
			return nil, err
		}
		return GameStarted{Players: players}, nil
	case serverMsgTurn:
		turn, err := r.U16()
		if err != nil {
			return nil, err
		}
		events, err := ReadList(r, DecodeEvent)
		if err != nil {
			return nil, err
		}
		return Turn{Turn: turn, Events: events}, nil
	case serverMsgGameEnded:
		scores, err := ReadMap(r, DecodePlayerId, DecodeScore)
		if err != nil {
			return nil, err
		}
		return GameEnded{Scores: scores}, nil
	default:
		return nil, protoErr("decode server message", ErrInvalidTag)
	}
}
