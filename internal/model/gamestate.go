package model

// GameState is the authoritative mutable state of one game session,
// spec.md §3. The server's game manager owns the canonical instance;
// the client's state mirror keeps a structurally similar (but not
// identical — the client also tracks per-turn accumulators) copy built
// from the events it receives.
type GameState struct {
	Bombs      map[BombId]Bomb
	Blocks     map[Position]struct{}
	PlayerPos  map[PlayerId]Position
	Scores     map[PlayerId]Score
	NextBombID BombId
}

// NewGameState returns an empty GameState ready for a fresh game.
func NewGameState() *GameState {
	return &GameState{
		Bombs:     make(map[BombId]Bomb),
		Blocks:    make(map[Position]struct{}),
		PlayerPos: make(map[PlayerId]Position),
		Scores:    make(map[PlayerId]Score),
	}
}

var cardinalDeltas = [4][2]int{
	{1, 0},  // +x
	{-1, 0}, // -x
	{0, 1},  // +y
	{0, -1}, // -y
}

// Explosion computes the set of cells affected by a bomb at bombPos
// with the given arm length, on a board of the given dimensions with
// the given blocks. It is the cross-pattern geometry of spec.md §4.4,
// shared verbatim by the server (the authority) and the client (which
// must reproduce it identically to reconcile BombExploded events) —
// grounded on original_source/server/game-manager.h's calcExplosion.
//
// Each of the four cardinal directions is walked from radius 0 up to
// and including radius; every in-bounds cell visited is affected. A
// cell holding a block is affected (and destroyed) but stops further
// propagation along that arm. r=0 (the bomb's own cell) is visited on
// every arm, which is harmless since the result is a set.
func Explosion(bombPos Position, radius uint16, blocks map[Position]struct{}, sizeX, sizeY uint16) map[Position]struct{} {
	affected := make(map[Position]struct{})
	for _, d := range cardinalDeltas {
		for r := 0; r <= int(radius); r++ {
			x := int(bombPos.X) + d[0]*r
			y := int(bombPos.Y) + d[1]*r
			if x < 0 || y < 0 || x >= int(sizeX) || y >= int(sizeY) {
				break
			}
			pos := Position{X: uint16(x), Y: uint16(y)}
			affected[pos] = struct{}{}
			if _, blocked := blocks[pos]; blocked {
				break
			}
		}
	}
	return affected
}
