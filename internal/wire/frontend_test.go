package wire

import (
	"reflect"
	"testing"

	"robots/internal/model"
)

func TestFrontendInputRoundTrip(t *testing.T) {
	cases := []FrontendInput{
		FEPlaceBomb{},
		FEPlaceBlock{},
		FEMove{Direction: model.DirRight},
	}
	for _, c := range cases {
		data := EncodeFrontendInput(c)
		got, ok := DecodeFrontendInput(data)
		if !ok {
			t.Fatalf("decode failed for %#v (bytes %v)", c, data)
		}
		if !reflect.DeepEqual(got, c) {
			t.Errorf("round trip mismatch: got %#v, want %#v", got, c)
		}
	}
}

func TestFrontendInputDiscardsWrongLength(t *testing.T) {
	cases := [][]byte{
		{},
		{feInputPlaceBomb, 0},    // PlaceBomb must be exactly 1 byte
		{feInputPlaceBlock, 1},   // PlaceBlock must be exactly 1 byte
		{feInputMove},            // Move must be exactly 2 bytes
		{feInputMove, 0, 0},      // too long
		{feInputMove, 4},         // direction out of range
		{99},                     // unknown tag
	}
	for _, data := range cases {
		if _, ok := DecodeFrontendInput(data); ok {
			t.Errorf("expected discard for %v", data)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	lobby := LobbySnapshot{
		ServerName: "arena", PlayersCount: 2, SizeX: 5, SizeY: 5,
		GameLength: 10, ExplosionRadius: 1, BombTimer: 3,
		Players: map[model.PlayerId]model.Player{0: {Name: "a", Address: "x:1"}},
	}
	data, err := EncodeSnapshot(lobby)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if data[0] != snapshotLobby {
		t.Fatalf("expected leading byte 0 for lobby snapshot")
	}
	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, lobby) {
		t.Errorf("round trip mismatch: got %#v, want %#v", got, lobby)
	}

	game := GameSnapshot{
		ServerName: "arena", SizeX: 5, SizeY: 5, GameLength: 10, Turn: 3,
		Players:         map[model.PlayerId]model.Player{0: {Name: "a", Address: "x:1"}},
		PlayerPositions: map[model.PlayerId]model.Position{0: {X: 1, Y: 1}},
		Blocks:          []model.Position{{X: 2, Y: 2}},
		Bombs:           []model.Bomb{{Position: model.Position{X: 3, Y: 3}, Timer: 2}},
		Explosions:      []model.Position{{X: 4, Y: 4}},
		Scores:          map[model.PlayerId]model.Score{0: 1},
	}
	data, err = EncodeSnapshot(game)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if data[0] != snapshotGame {
		t.Fatalf("expected leading byte 1 for game snapshot")
	}
	got, err = DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, game) {
		t.Errorf("round trip mismatch: got %#v, want %#v", got, game)
	}
}
