package netio

import (
	"bytes"
	"net"
	"testing"
	"time"

	"robots/internal/hub"
	"robots/internal/logging"
	"robots/internal/model"
	"robots/internal/wire"
)

func pipeConns(t *testing.T) (client net.Conn, server net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, _ := ln.Accept()
		accepted <- c
	}()

	client, err = net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	server = <-accepted
	return client, server
}

func testParams() model.ServerParams {
	return model.ServerParams{
		Name: "arena", PlayersCount: 1, SizeX: 4, SizeY: 4,
		GameLength: 5, ExplosionRadius: 1, BombTimer: 2,
		TurnDurationMs: 10, Seed: 1,
	}
}

func TestReceiveDispatchesJoinToHub(t *testing.T) {
	client, server := pipeConns(t)
	defer client.Close()
	defer server.Close()

	h := hub.New(testParams(), logging.New(&bytes.Buffer{}))
	conn := NewConnection(server, h, logging.New(&bytes.Buffer{}))
	go conn.Receive()

	w := wire.NewWriter(client)
	if err := wire.EncodeClientMessage(w, wire.Join{Name: "alice"}); err != nil {
		t.Fatalf("encode join: %v", err)
	}

	// Give the receiver goroutine a moment to process it, then check
	// the hub seated the player by reading a Hello+AcceptedPlayer off
	// a freshly created queue (proves the hub broadcast it).
	time.Sleep(50 * time.Millisecond)
	id2 := h.AcceptClient()
	q := h.CreateQueue(id2)
	msg, ok := q.Pop()
	if !ok {
		t.Fatal("expected Hello in seeded queue")
	}
	if _, isHello := msg.(wire.Hello); !isHello {
		t.Fatalf("expected Hello, got %#v", msg)
	}
	msg, _ = q.Pop()
	ap, ok := msg.(wire.AcceptedPlayer)
	if !ok || ap.Player.Name != "alice" {
		t.Fatalf("expected AcceptedPlayer(alice), got %#v", msg)
	}
}

func TestSendDrainsQueueToSocket(t *testing.T) {
	client, server := pipeConns(t)
	defer client.Close()
	defer server.Close()

	h := hub.New(testParams(), logging.New(&bytes.Buffer{}))
	conn := NewConnection(server, h, logging.New(&bytes.Buffer{}))
	go conn.Send()

	r := wire.NewReader(client)
	msg, err := wire.DecodeServerMessage(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, isHello := msg.(wire.Hello); !isHello {
		t.Fatalf("expected seeded Hello over the wire, got %#v", msg)
	}
}

func TestTeardownIsIdempotentAcrossSendAndReceive(t *testing.T) {
	client, server := pipeConns(t)

	h := hub.New(testParams(), logging.New(&bytes.Buffer{}))
	conn := NewConnection(server, h, logging.New(&bytes.Buffer{}))
	done := make(chan struct{}, 2)
	go func() { conn.Receive(); done <- struct{}{} }()
	go func() { conn.Send(); done <- struct{}{} }()

	client.Close() // triggers both a read error and a write error

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("receiver did not exit after peer close")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sender did not exit after queue closed")
	}
}
