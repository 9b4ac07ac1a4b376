package model

import "testing"

func posSet(ps ...Position) map[Position]struct{} {
	s := make(map[Position]struct{}, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

func TestExplosionSymmetryOnEmptyBoard(t *testing.T) {
	bomb := Position{X: 5, Y: 5}
	radius := uint16(3)
	got := Explosion(bomb, radius, nil, 20, 20)

	want := posSet(bomb)
	for i := uint16(1); i <= radius; i++ {
		want[Position{X: bomb.X + i, Y: bomb.Y}] = struct{}{}
		want[Position{X: bomb.X - i, Y: bomb.Y}] = struct{}{}
		want[Position{X: bomb.X, Y: bomb.Y + i}] = struct{}{}
		want[Position{X: bomb.X, Y: bomb.Y - i}] = struct{}{}
	}

	if len(got) != len(want) {
		t.Fatalf("len(got)=%d len(want)=%d", len(got), len(want))
	}
	for pos := range want {
		if _, ok := got[pos]; !ok {
			t.Errorf("missing expected affected cell %+v", pos)
		}
	}
}

func TestExplosionBlockStopsArm(t *testing.T) {
	bomb := Position{X: 5, Y: 5}
	blockPos := Position{X: 7, Y: 5} // bomb.X + 2
	blocks := posSet(blockPos)

	got := Explosion(bomb, 5, blocks, 20, 20)

	mustHave := []Position{
		bomb,
		{X: 6, Y: 5}, // bomb.X + 1
		blockPos,     // bomb.X + 2, the block itself is affected
	}
	for _, pos := range mustHave {
		if _, ok := got[pos]; !ok {
			t.Errorf("expected %+v to be affected", pos)
		}
	}
	mustNotHave := []Position{
		{X: 8, Y: 5},
		{X: 9, Y: 5},
	}
	for _, pos := range mustNotHave {
		if _, ok := got[pos]; ok {
			t.Errorf("expected %+v to be unaffected (beyond the block)", pos)
		}
	}
}

func TestExplosionRespectsBoardBounds(t *testing.T) {
	bomb := Position{X: 0, Y: 0}
	got := Explosion(bomb, 5, nil, 3, 3)
	for pos := range got {
		if pos.X >= 3 || pos.Y >= 3 {
			t.Errorf("cell %+v out of bounds", pos)
		}
	}
	if _, ok := got[Position{X: 2, Y: 0}]; !ok {
		t.Errorf("expected in-bounds cell (2,0) to be affected")
	}
}
