package gameserver

import (
	"io"
	"testing"
	"time"

	"robots/internal/hub"
	"robots/internal/logging"
	"robots/internal/model"
	"robots/internal/wire"
)

func popTyped[T any](t *testing.T, q *hub.Queue) T {
	t.Helper()
	msg, ok := q.Pop()
	if !ok {
		t.Fatalf("queue closed, expected %T", *new(T))
	}
	v, ok := msg.(T)
	if !ok {
		t.Fatalf("expected %T, got %#v", *new(T), msg)
	}
	return v
}

func TestSinglePlayerSession(t *testing.T) {
	params := model.ServerParams{
		Name: "arena", PlayersCount: 1, SizeX: 3, SizeY: 3,
		GameLength: 3, BombTimer: 2, ExplosionRadius: 1,
		InitialBlocks: 0, Seed: 1, TurnDurationMs: 1,
	}
	log := logging.New(io.Discard)
	h := hub.New(params, log)
	m := New(params, h, log)
	advance := make(chan struct{})
	m.sleep = func(time.Duration) { <-advance }

	id := h.AcceptClient()
	q := h.CreateQueue(id)

	done := make(chan struct{})
	go func() {
		m.playOneSession()
		close(done)
	}()

	h.TryAcceptPlayer(id, "alice", "1.2.3.4:9")

	popTyped[wire.Hello](t, q)
	popTyped[wire.AcceptedPlayer](t, q)
	popTyped[wire.GameStarted](t, q)

	turn0 := popTyped[wire.Turn](t, q)
	if turn0.Turn != 0 || len(turn0.Events) != 1 {
		t.Fatalf("expected turn 0 with 1 event, got %#v", turn0)
	}
	spawn, ok := turn0.Events[0].(wire.PlayerMoved)
	if !ok || spawn.ID != 0 {
		t.Fatalf("expected initial PlayerMoved for player 0, got %#v", turn0.Events[0])
	}
	if spawn.Position != (model.Position{X: 1, Y: 0}) {
		t.Fatalf("expected LCG(seed=1) spawn at (1,0), got %#v", spawn.Position)
	}

	// Turn 1: player places a bomb at its spawn position.
	h.SetLastMessage(id, wire.PlaceBomb{})
	advance <- struct{}{}
	turn1 := popTyped[wire.Turn](t, q)
	if turn1.Turn != 1 || len(turn1.Events) != 1 {
		t.Fatalf("expected turn 1 with 1 event, got %#v", turn1)
	}
	placed, ok := turn1.Events[0].(wire.BombPlaced)
	if !ok || placed.ID != 0 || placed.Position != spawn.Position {
		t.Fatalf("expected BombPlaced{0,%v}, got %#v", spawn.Position, turn1.Events[0])
	}

	// Turn 2: bomb_timer=2 means the bomb only decrements this turn,
	// no new client message.
	advance <- struct{}{}
	turn2 := popTyped[wire.Turn](t, q)
	if turn2.Turn != 2 || len(turn2.Events) != 0 {
		t.Fatalf("expected turn 2 with no events (bomb still ticking), got %#v", turn2)
	}

	// Turn 3: bomb explodes, destroying the player, who respawns the
	// same turn.
	advance <- struct{}{}
	turn3 := popTyped[wire.Turn](t, q)
	if turn3.Turn != 3 || len(turn3.Events) != 2 {
		t.Fatalf("expected turn 3 with 2 events, got %#v", turn3)
	}
	exploded, ok := turn3.Events[0].(wire.BombExploded)
	if !ok || exploded.ID != 0 {
		t.Fatalf("expected BombExploded{0,...} first, got %#v", turn3.Events[0])
	}
	if len(exploded.RobotsDestroyed) != 1 || exploded.RobotsDestroyed[0] != 0 {
		t.Fatalf("expected robot 0 destroyed, got %#v", exploded.RobotsDestroyed)
	}
	if len(exploded.BlocksDestroyed) != 0 {
		t.Fatalf("expected no blocks destroyed, got %#v", exploded.BlocksDestroyed)
	}
	respawn, ok := turn3.Events[1].(wire.PlayerMoved)
	if !ok || respawn.ID != 0 {
		t.Fatalf("expected respawn PlayerMoved second, got %#v", turn3.Events[1])
	}

	ended := popTyped[wire.GameEnded](t, q)
	if ended.Scores[0] != 1 {
		t.Fatalf("expected score 1 for the one death, got %#v", ended.Scores)
	}

	<-done
}

func TestTwoPlayerStalemate(t *testing.T) {
	params := model.ServerParams{
		Name: "arena", PlayersCount: 2, SizeX: 5, SizeY: 5,
		GameLength: 1, BombTimer: 5, ExplosionRadius: 1,
		InitialBlocks: 0, Seed: 7, TurnDurationMs: 1,
	}
	log := logging.New(io.Discard)
	h := hub.New(params, log)
	m := New(params, h, log)
	advance := make(chan struct{})
	m.sleep = func(time.Duration) { <-advance }

	a := h.AcceptClient()
	qa := h.CreateQueue(a)
	b := h.AcceptClient()
	h.CreateQueue(b)

	done := make(chan struct{})
	go func() {
		m.playOneSession()
		close(done)
	}()

	h.TryAcceptPlayer(a, "alice", "x:1")
	h.TryAcceptPlayer(b, "bob", "x:2")

	popTyped[wire.Hello](t, qa)
	popTyped[wire.AcceptedPlayer](t, qa)
	popTyped[wire.AcceptedPlayer](t, qa)
	popTyped[wire.GameStarted](t, qa)
	popTyped[wire.Turn](t, qa) // turn 0 spawns

	advance <- struct{}{}
	turn1 := popTyped[wire.Turn](t, qa)
	if len(turn1.Events) != 0 {
		t.Fatalf("expected idle turn 1 with no events, got %#v", turn1)
	}

	ended := popTyped[wire.GameEnded](t, qa)
	if ended.Scores[0] != 0 || ended.Scores[1] != 0 {
		t.Fatalf("expected 0-0 stalemate, got %#v", ended.Scores)
	}

	<-done
}
