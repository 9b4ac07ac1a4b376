// Package clientstate implements the client's mirror of server state,
// spec.md §4.5: a single ClientState shared between the server reader
// and the front-end reader under one mutex, grounded on
// internal/server/websocket.go's dual-goroutine pattern (there: a
// reader loop plus a writer goroutine sharing one locked session;
// here: two independent readers, one per socket, sharing one locked
// mirror).
package clientstate

import (
	"sync"

	"robots/internal/model"
	"robots/internal/wire"
)

// State is the client-side mirror of spec.md §4.5. The zero value is
// not usable; construct with New.
type State struct {
	mu sync.Mutex

	isLobby    bool
	playerName string

	serverName      string
	playersCount    uint8
	sizeX, sizeY    uint16
	gameLength      uint16
	explosionRadius uint16
	bombTimer       uint16

	players         map[model.PlayerId]model.Player
	playerPositions map[model.PlayerId]model.Position
	blocks          map[model.Position]struct{}
	bombs           map[model.BombId]model.Bomb
	explosions      map[model.Position]struct{}
	scores          map[model.PlayerId]model.Score

	turn uint16

	robotsDestroyedInTurn map[model.PlayerId]struct{}
	blocksDestroyedInTurn map[model.Position]struct{}
}

// New returns a fresh State in the lobby, for playerName (the CLI's
// immutable `-n` argument).
func New(playerName string) *State {
	return &State{
		isLobby:               true,
		playerName:            playerName,
		players:               make(map[model.PlayerId]model.Player),
		playerPositions:       make(map[model.PlayerId]model.Position),
		blocks:                make(map[model.Position]struct{}),
		bombs:                 make(map[model.BombId]model.Bomb),
		explosions:            make(map[model.Position]struct{}),
		scores:                make(map[model.PlayerId]model.Score),
		robotsDestroyedInTurn: make(map[model.PlayerId]struct{}),
		blocksDestroyedInTurn: make(map[model.Position]struct{}),
	}
}

// ApplyServerMessage updates the mirror for one decoded server frame
// and returns the snapshot datagram to forward to the front-end
// renderer, if the frame is meaningful to it. GameStarted is silent to
// the GUI: it only clears local game structures and flips isLobby off.
func (s *State) ApplyServerMessage(msg wire.ServerMessage) (snap wire.Snapshot, emit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch m := msg.(type) {
	case wire.Hello:
		s.serverName = m.ServerName
		s.playersCount = m.PlayersCount
		s.sizeX, s.sizeY = m.SizeX, m.SizeY
		s.gameLength = m.GameLength
		s.explosionRadius = m.ExplosionRadius
		s.bombTimer = m.BombTimer
		s.isLobby = true
		s.players = make(map[model.PlayerId]model.Player)
		return s.lobbySnapshotLocked(), true

	case wire.AcceptedPlayer:
		s.players[m.ID] = m.Player
		return s.lobbySnapshotLocked(), true

	case wire.GameStarted:
		s.players = m.Players
		s.playerPositions = make(map[model.PlayerId]model.Position)
		s.blocks = make(map[model.Position]struct{})
		s.bombs = make(map[model.BombId]model.Bomb)
		s.explosions = make(map[model.Position]struct{})
		s.scores = make(map[model.PlayerId]model.Score)
		for id := range m.Players {
			s.scores[id] = 0
		}
		s.turn = 0
		s.isLobby = false
		return nil, false

	case wire.Turn:
		s.applyTurnLocked(m)
		return s.gameSnapshotLocked(), true

	case wire.GameEnded:
		s.scores = m.Scores
		s.isLobby = true
		return s.gameSnapshotLocked(), true
	}
	return nil, false
}

// applyTurnLocked implements spec.md §4.5's turn-processing order:
// set turn, clear explosions and per-turn sets, decrement every
// bomb's timer before applying events, then apply events in order,
// then settle casualties. Caller must hold s.mu.
func (s *State) applyTurnLocked(m wire.Turn) {
	s.turn = m.Turn
	s.explosions = make(map[model.Position]struct{})
	s.robotsDestroyedInTurn = make(map[model.PlayerId]struct{})
	s.blocksDestroyedInTurn = make(map[model.Position]struct{})

	for id, b := range s.bombs {
		b.Timer--
		s.bombs[id] = b
	}

	for _, ev := range m.Events {
		s.applyEventLocked(ev)
	}

	for id := range s.robotsDestroyedInTurn {
		s.scores[id]++
	}
	for pos := range s.blocksDestroyedInTurn {
		delete(s.blocks, pos)
	}
}

func (s *State) applyEventLocked(ev wire.Event) {
	switch e := ev.(type) {
	case wire.BombPlaced:
		s.bombs[e.ID] = model.Bomb{Position: e.Position, Timer: s.bombTimer}

	case wire.BombExploded:
		affected := model.Explosion(s.bombs[e.ID].Position, s.explosionRadius, s.blocks, s.sizeX, s.sizeY)
		for pos := range affected {
			s.explosions[pos] = struct{}{}
		}
		for _, id := range e.RobotsDestroyed {
			s.robotsDestroyedInTurn[id] = struct{}{}
			delete(s.playerPositions, id)
		}
		for _, pos := range e.BlocksDestroyed {
			s.blocksDestroyedInTurn[pos] = struct{}{}
		}
		delete(s.bombs, e.ID)

	case wire.PlayerMoved:
		s.playerPositions[e.ID] = e.Position

	case wire.BlockPlaced:
		s.blocks[e.Position] = struct{}{}
	}
}

func (s *State) lobbySnapshotLocked() wire.LobbySnapshot {
	return wire.LobbySnapshot{
		ServerName: s.serverName, PlayersCount: s.playersCount,
		SizeX: s.sizeX, SizeY: s.sizeY, GameLength: s.gameLength,
		ExplosionRadius: s.explosionRadius, BombTimer: s.bombTimer,
		Players: copyPlayerMap(s.players),
	}
}

func (s *State) gameSnapshotLocked() wire.GameSnapshot {
	return wire.GameSnapshot{
		ServerName: s.serverName, SizeX: s.sizeX, SizeY: s.sizeY,
		GameLength: s.gameLength, Turn: s.turn,
		Players:         copyPlayerMap(s.players),
		PlayerPositions: copyPositionMap(s.playerPositions),
		Blocks:          setToList(s.blocks),
		Bombs:           bombList(s.bombs),
		Explosions:      setToList(s.explosions),
		Scores:          copyScoreMap(s.scores),
	}
}

// IsLobby reports whether the mirror currently believes it is in the
// lobby phase (the same flag TranslateFrontendInput consults, under
// the lock, to decide how to translate a GUI input).
func (s *State) IsLobby() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLobby
}

// PlayerName returns the immutable name this client joins with.
func (s *State) PlayerName() string {
	return s.playerName
}
