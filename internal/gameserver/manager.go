// Package gameserver implements the authoritative game loop of
// spec.md §4.4, grounded turn-for-turn on
// original_source/server/game-manager.h: build a fresh GameState each
// session, resolve bombs before inputs, interpret client messages,
// apply casualties, respawn the dead, and broadcast exactly one Turn
// frame per tick.
//
// The teacher's internal/game package (Game/Registry, a pluggable
// multi-game abstraction with its own tic-tac-toe implementation) has
// no role here: this spec has exactly one game, so the Manager below
// plays the part registry.go's pluggable Game interface played in the
// teacher, fixed to a single ServerParams configuration instead of a
// lookup table.
package gameserver

import (
	"slices"
	"time"

	"robots/internal/hub"
	"robots/internal/logging"
	"robots/internal/model"
	"robots/internal/rng"
	"robots/internal/wire"
)

// Manager owns the RNG and runs the single, perpetual game loop: wait
// for a full lobby, play one session to completion, then loop back.
type Manager struct {
	params model.ServerParams
	hub    *hub.Hub
	rng    *rng.LCG
	log    *logging.Logger

	// sleep is the turn-duration wait, overridable in tests so a game
	// with a non-trivial game_length doesn't need to run in real time.
	sleep func(time.Duration)
}

// New returns a Manager ready to Run.
func New(params model.ServerParams, h *hub.Hub, log *logging.Logger) *Manager {
	return &Manager{
		params: params,
		hub:    h,
		rng:    rng.New(params.Seed),
		log:    log,
		sleep:  time.Sleep,
	}
}

// Run plays sessions forever. It never returns under normal operation;
// callers run it in its own goroutine.
func (m *Manager) Run() {
	for {
		m.playOneSession()
	}
}

func (m *Manager) playOneSession() {
	players := m.hub.WaitForFullLobby()

	state := model.NewGameState()
	initial := m.initializeGame(players, state)
	m.hub.CloseTurn(0, initial)

	budget := time.Duration(m.params.TurnDurationMs) * time.Millisecond
	for turn := uint16(1); turn <= m.params.GameLength; turn++ {
		m.sleep(budget)

		start := time.Now()
		inputs := m.hub.DrainTurnInputs()

		var events []wire.Event
		destroyedRobots, destroyedBlocks, explodedBombs := m.updateBombs(state, &events)
		m.interpretInputs(inputs, state, destroyedRobots, &events)
		m.applyCasualties(state, destroyedRobots, destroyedBlocks, explodedBombs)
		m.respawnMissing(players, state, &events)

		m.hub.CloseTurn(turn, events)
		m.log.TurnDuration(turn, time.Since(start), budget)
	}

	m.hub.EndGame(state.Scores)
}

// initializeGame resets scores to zero for every seated player, seats
// any robot not already on the board, and scatters the initial
// blocks, in that order (spec.md §4.4 step 2).
func (m *Manager) initializeGame(players map[model.PlayerId]model.Player, state *model.GameState) []wire.Event {
	var events []wire.Event

	state.Scores = make(map[model.PlayerId]model.Score, len(players))
	for id := range players {
		state.Scores[id] = 0
	}

	m.respawnMissing(players, state, &events)
	m.placeInitialBlocks(state, &events)

	return events
}

func (m *Manager) placeInitialBlocks(state *model.GameState, events *[]wire.Event) {
	for i := uint16(0); i < m.params.InitialBlocks; i++ {
		pos := model.Position{
			X: m.rng.Intn(m.params.SizeX),
			Y: m.rng.Intn(m.params.SizeY),
		}
		if _, exists := state.Blocks[pos]; !exists {
			state.Blocks[pos] = struct{}{}
			*events = append(*events, wire.BlockPlaced{Position: pos})
		}
	}
}

// respawnMissing places a fresh robot for every PlayerId in players
// not currently on the board, visited in ascending PlayerId order for
// determinism.
func (m *Manager) respawnMissing(players map[model.PlayerId]model.Player, state *model.GameState, events *[]wire.Event) {
	ids := make([]model.PlayerId, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if _, onBoard := state.PlayerPos[id]; onBoard {
			continue
		}
		pos := model.Position{
			X: m.rng.Intn(m.params.SizeX),
			Y: m.rng.Intn(m.params.SizeY),
		}
		state.PlayerPos[id] = pos
		*events = append(*events, wire.PlayerMoved{ID: id, Position: pos})
	}
}

// updateBombs decrements every bomb's timer, or resolves its
// explosion once the timer reaches 1, in ascending BombId order. It
// returns the session-wide sets of robots/blocks/bombs this turn's
// explosions destroyed; the caller applies them after input
// interpretation (spec.md §4.4 step e).
func (m *Manager) updateBombs(state *model.GameState, events *[]wire.Event) (destroyedRobots map[model.PlayerId]struct{}, destroyedBlocks map[model.Position]struct{}, explodedBombs map[model.BombId]struct{}) {
	destroyedRobots = make(map[model.PlayerId]struct{})
	destroyedBlocks = make(map[model.Position]struct{})
	explodedBombs = make(map[model.BombId]struct{})

	ids := make([]model.BombId, 0, len(state.Bombs))
	for id := range state.Bombs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		bomb := state.Bombs[id]
		if bomb.Timer > 1 {
			bomb.Timer--
			state.Bombs[id] = bomb
			continue
		}

		affected := model.Explosion(bomb.Position, m.params.ExplosionRadius, state.Blocks, m.params.SizeX, m.params.SizeY)

		var robots []model.PlayerId
		for pid, pos := range state.PlayerPos {
			if _, hit := affected[pos]; hit {
				robots = append(robots, pid)
				destroyedRobots[pid] = struct{}{}
			}
		}
		slices.Sort(robots)

		var blocks []model.Position
		for pos := range affected {
			if _, isBlock := state.Blocks[pos]; isBlock {
				blocks = append(blocks, pos)
				destroyedBlocks[pos] = struct{}{}
			}
		}
		slices.SortFunc(blocks, comparePosition)

		explodedBombs[id] = struct{}{}
		*events = append(*events, wire.BombExploded{ID: id, RobotsDestroyed: robots, BlocksDestroyed: blocks})
	}

	return destroyedRobots, destroyedBlocks, explodedBombs
}

func comparePosition(a, b model.Position) int {
	if a.X != b.X {
		return int(a.X) - int(b.X)
	}
	return int(a.Y) - int(b.Y)
}

// interpretInputs dispatches each player's last message for the turn,
// in ascending PlayerId order, skipping any player already killed by
// this turn's bomb update — destroyedRobots reflects that before
// applyCasualties has formally removed them from state.PlayerPos.
func (m *Manager) interpretInputs(inputs map[model.PlayerId]wire.ClientMessage, state *model.GameState, destroyedRobots map[model.PlayerId]struct{}, events *[]wire.Event) {
	ids := make([]model.PlayerId, 0, len(inputs))
	for id := range inputs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if _, alive := state.PlayerPos[id]; !alive {
			continue
		}
		if _, killed := destroyedRobots[id]; killed {
			continue
		}
		switch msg := inputs[id].(type) {
		case wire.Join:
			// Ignored: a seated player resending Join has no effect.
		case wire.PlaceBomb:
			m.placeBomb(id, state, events)
		case wire.PlaceBlock:
			m.placeBlock(id, state, events)
		case wire.Move:
			m.movePlayer(id, msg.Direction, state, events)
		}
	}
}

func (m *Manager) placeBomb(id model.PlayerId, state *model.GameState, events *[]wire.Event) {
	pos := state.PlayerPos[id]
	bombID := state.NextBombID
	state.Bombs[bombID] = model.Bomb{Position: pos, Timer: m.params.BombTimer}
	*events = append(*events, wire.BombPlaced{ID: bombID, Position: pos})
	state.NextBombID++
}

func (m *Manager) placeBlock(id model.PlayerId, state *model.GameState, events *[]wire.Event) {
	pos := state.PlayerPos[id]
	if _, exists := state.Blocks[pos]; exists {
		return
	}
	state.Blocks[pos] = struct{}{}
	*events = append(*events, wire.BlockPlaced{Position: pos})
}

func (m *Manager) movePlayer(id model.PlayerId, dir model.Direction, state *model.GameState, events *[]wire.Event) {
	pos := state.PlayerPos[id]
	dx, dy := dir.Delta()
	newX := int(pos.X) + dx
	newY := int(pos.Y) + dy
	if newX < 0 || newY < 0 || newX >= int(m.params.SizeX) || newY >= int(m.params.SizeY) {
		return
	}
	newPos := model.Position{X: uint16(newX), Y: uint16(newY)}
	if _, blocked := state.Blocks[newPos]; blocked {
		return
	}
	state.PlayerPos[id] = newPos
	*events = append(*events, wire.PlayerMoved{ID: id, Position: newPos})
}

// applyCasualties increments each destroyed robot's own death count
// and removes destroyed robots/blocks/bombs from state, run after
// input interpretation (spec.md §4.4 step e). A killed player never
// acts this turn regardless: interpretInputs already screens against
// the same destroyedRobots set.
func (m *Manager) applyCasualties(state *model.GameState, destroyedRobots map[model.PlayerId]struct{}, destroyedBlocks map[model.Position]struct{}, explodedBombs map[model.BombId]struct{}) {
	for id := range destroyedRobots {
		state.Scores[id]++
		delete(state.PlayerPos, id)
	}
	for pos := range destroyedBlocks {
		delete(state.Blocks, pos)
	}
	for id := range explodedBombs {
		delete(state.Bombs, id)
	}
}
