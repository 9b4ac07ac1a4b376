// Package hub implements the server's single synchronized
// coordinator (spec.md §4.2): the shared object every network task
// and the game manager go through to move player/lobby state and fan
// out broadcasts, guarded by one mutex plus a condition variable for
// "enough players joined."
//
// Grounded on internal/session/session.go and
// internal/session/manager.go's mutex-guarded shared-state pattern,
// generalized from "N independent reconnectable game rooms" to "one
// lobby/game state machine, N TCP clients, a replayable broadcast
// history" — the single-session shape spec.md describes.
package hub

import (
	"sync"

	"robots/internal/logging"
	"robots/internal/model"
	"robots/internal/wire"
)

// ClientID identifies one accepted TCP connection for the lifetime of
// that connection, independent of whether it ever becomes a seated
// player.
type ClientID uint64

type phase int

const (
	phaseLobby phase = iota
	phaseGame
)

type clientEntry struct {
	queue  *Queue
	player *model.PlayerId // nil until try_accept_player succeeds
}

// Hub is the shared coordinator described above. The zero value is
// not usable; construct with New.
type Hub struct {
	mu   sync.Mutex
	cond *sync.Cond
	log  *logging.Logger

	params model.ServerParams

	phase       phase
	nextClient  ClientID
	clients     map[ClientID]*clientEntry
	players     map[model.PlayerId]model.Player
	lastMessage map[model.PlayerId]wire.ClientMessage

	// history is the replayable broadcast log every newly connected
	// client's queue is seeded with: it restarts as a single Hello on
	// each lobby reset and on game start, and grows by one entry per
	// broadcast (AcceptedPlayer in the lobby, GameStarted and Turn
	// during a game).
	history []any
}

// New returns a Hub in the lobby phase, with history primed to the
// Hello frame derived from params. log receives a per-client queue
// depth reading after every broadcast.
func New(params model.ServerParams, log *logging.Logger) *Hub {
	h := &Hub{
		log:         log,
		params:      params,
		phase:       phaseLobby,
		clients:     make(map[ClientID]*clientEntry),
		players:     make(map[model.PlayerId]model.Player),
		lastMessage: make(map[model.PlayerId]wire.ClientMessage),
	}
	h.cond = sync.NewCond(&h.mu)
	h.history = []any{h.helloLocked()}
	return h
}

func (h *Hub) helloLocked() wire.ServerMessage {
	return wire.Hello{
		ServerName:      h.params.Name,
		PlayersCount:    h.params.PlayersCount,
		SizeX:           h.params.SizeX,
		SizeY:           h.params.SizeY,
		GameLength:      h.params.GameLength,
		ExplosionRadius: h.params.ExplosionRadius,
		BombTimer:       h.params.BombTimer,
	}
}

// broadcastLocked appends msg to the history and to every open
// client's outbound queue, then logs each resulting backlog depth.
// Caller must hold h.mu.
func (h *Hub) broadcastLocked(msg any) {
	h.history = append(h.history, msg)
	for id, c := range h.clients {
		c.queue.Push(msg)
		h.log.QueueDepth(uint64(id), c.queue.Len())
	}
}

// AcceptClient assigns a fresh monotonic client id.
func (h *Hub) AcceptClient() ClientID {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextClient
	h.nextClient++
	return id
}

// CreateQueue creates clientID's outbound queue, seeded with the
// current history snapshot so the new client receives every frame
// broadcast since the last lobby reset.
func (h *Hub) CreateQueue(clientID ClientID) *Queue {
	h.mu.Lock()
	defer h.mu.Unlock()
	q := NewQueue(h.history)
	h.clients[clientID] = &clientEntry{queue: q}
	return q
}

// TryAcceptPlayer seats clientID as a player if the lobby is open,
// the client has no player yet, and a seat remains. Lobby-only and
// idempotent: outside the lobby, or for an already-seated client, it
// is silently ignored.
func (h *Hub) TryAcceptPlayer(clientID ClientID, name, address string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.phase != phaseLobby {
		return
	}
	c, ok := h.clients[clientID]
	if !ok || c.player != nil {
		return
	}
	if len(h.players) >= int(h.params.PlayersCount) {
		return
	}

	id := model.PlayerId(len(h.players))
	player := model.Player{Name: name, Address: address}
	h.players[id] = player
	c.player = &id

	h.broadcastLocked(wire.AcceptedPlayer{ID: id, Player: player})
	h.cond.Broadcast()
}

// SetLastMessage records clientID's most recent non-Join input for
// the turn in progress, overwriting any previous one. Join messages
// never reach here; callers dispatch those to TryAcceptPlayer.
func (h *Hub) SetLastMessage(clientID ClientID, msg wire.ClientMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[clientID]
	if !ok || c.player == nil {
		return
	}
	h.lastMessage[*c.player] = msg
}

// DrainTurnInputs atomically returns the current last-input map and
// clears it for the next turn.
func (h *Hub) DrainTurnInputs() map[model.PlayerId]wire.ClientMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.lastMessage
	h.lastMessage = make(map[model.PlayerId]wire.ClientMessage)
	return out
}

// WaitForFullLobby blocks until every seat is filled, then flips the
// hub into the game phase, resets history to a fresh Hello, broadcasts
// GameStarted, and returns the seated roster.
func (h *Hub) WaitForFullLobby() map[model.PlayerId]model.Player {
	h.mu.Lock()
	defer h.mu.Unlock()
	for len(h.players) < int(h.params.PlayersCount) {
		h.cond.Wait()
	}

	h.phase = phaseGame
	h.history = []any{h.helloLocked()}
	roster := make(map[model.PlayerId]model.Player, len(h.players))
	for id, p := range h.players {
		roster[id] = p
	}
	h.broadcastLocked(wire.GameStarted{Players: roster})
	return roster
}

// CloseTurn broadcasts the Turn frame for turnID.
func (h *Hub) CloseTurn(turnID uint16, events []wire.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(wire.Turn{Turn: turnID, Events: events})
}

// EndGame broadcasts GameEnded, then clears players, seats, and
// history, and flips back to the lobby phase. New clients from this
// moment receive only the fresh Hello.
func (h *Hub) EndGame(scores map[model.PlayerId]model.Score) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(wire.GameEnded{Scores: scores})

	h.phase = phaseLobby
	h.players = make(map[model.PlayerId]model.Player)
	h.lastMessage = make(map[model.PlayerId]wire.ClientMessage)
	for _, c := range h.clients {
		c.player = nil
	}
	h.history = []any{h.helloLocked()}
}

// EraseClient removes clientID's player mapping and outbound queue,
// closing the queue to unblock its sender. Safe to call more than
// once for the same id: the sender and receiver tasks of a connection
// may both race to tear it down.
func (h *Hub) EraseClient(clientID ClientID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[clientID]
	if !ok {
		return
	}
	delete(h.clients, clientID)
	if c.player != nil {
		delete(h.players, *c.player)
	}
	c.queue.Close()
}
