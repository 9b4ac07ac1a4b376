package clientstate

import (
	"slices"

	"robots/internal/model"
)

func copyPlayerMap(m map[model.PlayerId]model.Player) map[model.PlayerId]model.Player {
	out := make(map[model.PlayerId]model.Player, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyPositionMap(m map[model.PlayerId]model.Position) map[model.PlayerId]model.Position {
	out := make(map[model.PlayerId]model.Position, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyScoreMap(m map[model.PlayerId]model.Score) map[model.PlayerId]model.Score {
	out := make(map[model.PlayerId]model.Score, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func setToList(set map[model.Position]struct{}) []model.Position {
	if len(set) == 0 {
		return nil
	}
	out := make([]model.Position, 0, len(set))
	for pos := range set {
		out = append(out, pos)
	}
	slices.SortFunc(out, func(a, b model.Position) int {
		if a.X != b.X {
			return int(a.X) - int(b.X)
		}
		return int(a.Y) - int(b.Y)
	})
	return out
}

func bombList(m map[model.BombId]model.Bomb) []model.Bomb {
	if len(m) == 0 {
		return nil
	}
	ids := make([]model.BombId, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]model.Bomb, 0, len(m))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
