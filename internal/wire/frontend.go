package wire

import (
	"bytes"
	"fmt"

	"robots/internal/model"
)

// FrontendInput is a datagram the client's local front-end renderer
// sends to request an action, spec.md §4.1. Unlike the stream
// transport, a malformed datagram is never fatal: DecodeFrontendInput
// reports ok=false and the caller silently discards it (spec.md §7).
type FrontendInput interface {
	isFrontendInput()
}

type FEPlaceBomb struct{}
type FEPlaceBlock struct{}
type FEMove struct{ Direction model.Direction }

func (FEPlaceBomb) isFrontendInput()  {}
func (FEPlaceBlock) isFrontendInput() {}
func (FEMove) isFrontendInput()       {}

const (
	feInputPlaceBomb  = 0
	feInputPlaceBlock = 1
	feInputMove       = 2
)

// DecodeFrontendInput decodes a single UDP datagram from the
// front-end. A length mismatch for the tag's fixed size, an unknown
// tag, or an out-of-range direction all yield ok=false.
func DecodeFrontendInput(data []byte) (msg FrontendInput, ok bool) {
	if len(data) == 0 {
		return nil, false
	}
	switch data[0] {
	case feInputPlaceBomb:
		if len(data) != 1 {
			return nil, false
		}
		return FEPlaceBomb{}, true
	case feInputPlaceBlock:
		if len(data) != 1 {
			return nil, false
		}
		return FEPlaceBlock{}, true
	case feInputMove:
		if len(data) != 2 {
			return nil, false
		}
		if data[1] > uint8(model.MaxDirection) {
			return nil, false
		}
		return FEMove{Direction: model.Direction(data[1])}, true
	default:
		return nil, false
	}
}

// EncodeFrontendInput renders a front-end input as the datagram bytes
// a conforming front-end renderer would send. Used by the codec's
// round-trip tests in place of a real renderer process.
func EncodeFrontendInput(msg FrontendInput) []byte {
	switch m := msg.(type) {
	case FEPlaceBomb:
		return []byte{feInputPlaceBomb}
	case FEPlaceBlock:
		return []byte{feInputPlaceBlock}
	case FEMove:
		return []byte{feInputMove, uint8(m.Direction)}
	default:
		panic(fmt.Sprintf("wire: unknown frontend input type %T", msg))
	}
}

// Snapshot is a datagram the client sends to its local front-end
// renderer after processing each meaningful server frame, spec.md
// §4.1/§4.5.
type Snapshot interface {
	isSnapshot()
}

type LobbySnapshot struct {
	ServerName      string
	PlayersCount    uint8
	SizeX           uint16
	SizeY           uint16
	GameLength      uint16
	ExplosionRadius uint16
	BombTimer       uint16
	Players         map[model.PlayerId]model.Player
}

type GameSnapshot struct {
	ServerName      string
	SizeX           uint16
	SizeY           uint16
	GameLength      uint16
	Turn            uint16
	Players         map[model.PlayerId]model.Player
	PlayerPositions map[model.PlayerId]model.Position
	Blocks          []model.Position
	Bombs           []model.Bomb
	Explosions      []model.Position
	Scores          map[model.PlayerId]model.Score
}

func (LobbySnapshot) isSnapshot() {}
func (GameSnapshot) isSnapshot()  {}

const (
	snapshotLobby = 0
	snapshotGame  = 1
)

// EncodeSnapshot renders a snapshot as a single UDP datagram.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	switch snap := s.(type) {
	case LobbySnapshot:
		if err := w.U8(snapshotLobby); err != nil {
			return nil, err
		}
		if err := w.String(snap.ServerName); err != nil {
			return nil, err
		}
		if err := w.U8(snap.PlayersCount); err != nil {
			return nil, err
		}
		if err := w.U16(snap.SizeX); err != nil {
			return nil, err
		}
		if err := w.U16(snap.SizeY); err != nil {
			return nil, err
		}
		if err := w.U16(snap.GameLength); err != nil {
			return nil, err
		}
		if err := w.U16(snap.ExplosionRadius); err != nil {
			return nil, err
		}
		if err := w.U16(snap.BombTimer); err != nil {
			return nil, err
		}
		if err := WriteMap(w, snap.Players, EncodePlayerId, EncodePlayer); err != nil {
			return nil, err
		}
	case GameSnapshot:
		if err := w.U8(snapshotGame); err != nil {
			return nil, err
		}
		if err := w.String(snap.ServerName); err != nil {
			return nil, err
		}
		if err := w.U16(snap.SizeX); err != nil {
			return nil, err
		}
		if err := w.U16(snap.SizeY); err != nil {
			return nil, err
		}
		if err := w.U16(snap.GameLength); err != nil {
			return nil, err
		}
		if err := w.U16(snap.Turn); err != nil {
			return nil, err
		}
		if err := WriteMap(w, snap.Players, EncodePlayerId, EncodePlayer); err != nil {
			return nil, err
		}
		if err := WriteMap(w, snap.PlayerPositions, EncodePlayerId, EncodePosition); err != nil {
			return nil, err
		}
		if err := WriteList(w, snap.Blocks, EncodePosition); err != nil {
			return nil, err
		}
		if err := WriteList(w, snap.Bombs, EncodeBomb); err != nil {
			return nil, err
		}
		if err := WriteList(w, snap.Explosions, EncodePosition); err != nil {
			return nil, err
		}
		if err := WriteMap(w, snap.Scores, EncodePlayerId, EncodeScore); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("wire: unknown snapshot type %T", s)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot parses a snapshot datagram. Used by tests that play
// the role of the front-end renderer.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	r := NewReader(bytes.NewReader(data))
	tag, err := r.U8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case snapshotLobby:
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
		players, err := ReadMap(r, DecodePlayerId, DecodePlayer)
		if err != nil {
			return nil, err
		}
		return LobbySnapshot{
			ServerName: name, PlayersCount: count, SizeX: sx, SizeY: sy,
			GameLength: length, ExplosionRadius: radius, BombTimer: timer,
			Players: players,
		}, nil
	case snapshotGame:
		name, err := r.String()
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
		turn, err := r.U16()
		if err != nil {
			return nil, err
		}
		players, err := ReadMap(r, DecodePlayerId, DecodePlayer)
		if err != nil {
			return nil, err
		}
		positions, err := ReadMap(r, DecodePlayerId, DecodePosition)
		if err != nil {
			return nil, err
		}
		blocks, err := ReadList(r, DecodePosition)
		if err != nil {
			return nil, err
		}
		bombs, err := ReadList(r, DecodeBomb)
		if err != nil {
			return nil, err
		}
		explosions, err := ReadList(r, DecodePosition)
		if err != nil {
			return nil, err
		}
		scores, err := ReadMap(r, DecodePlayerId, DecodeScore)
		if err != nil {
			return nil, err
		}
		return GameSnapshot{
			ServerName: name, SizeX: sx, SizeY: sy, GameLength: length, Turn: turn,
			Players: players, PlayerPositions: positions, Blocks: blocks,
			Bombs: bombs, Explosions: explosions, Scores: scores,
		}, nil
	default:
		return nil, protoErr("decode snapshot", ErrInvalidTag)
	}
}
