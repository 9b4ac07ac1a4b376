package wire

import "robots/internal/model"

func EncodePosition(w *Writer, p model.Position) error {
	if err := w.U16(p.X); err != nil {
		return err
	}
	return w.U16(p.Y)
}

func DecodePosition(r *Reader) (model.Position, error) {
	x, err := r.U16()
	if err != nil {
		return model.Position{}, err
	}
	y, err := r.U16()
	if err != nil {
		return model.Position{}, err
	}
	return model.Position{X: x, Y: y}, nil
}

func EncodePlayerId(w *Writer, id model.PlayerId) error {
	return w.U8(uint8(id))
}

func DecodePlayerId(r *Reader) (model.PlayerId, error) {
	v, err := r.U8()
	return model.PlayerId(v), err
}

func EncodeBombId(w *Writer, id model.BombId) error {
	return w.U32(uint32(id))
}

func DecodeBombId(r *Reader) (model.BombId, error) {
	v, err := r.U32()
	return model.BombId(v), err
}

func EncodeScore(w *Writer, s model.Score) error {
	return w.U32(uint32(s))
}

func DecodeScore(r *Reader) (model.Score, error) {
	v, err := r.U32()
	return model.Score(v), err
}

func EncodePlayer(w *Writer, p model.Player) error {
	if err := w.String(p.Name); err != nil {
		return err
	}
	return w.String(p.Address)
}

func DecodePlayer(r *Reader) (model.Player, error) {
	name, err := r.String()
	if err != nil {
		return model.Player{}, err
	}
	addr, err := r.String()
	if err != nil {
		return model.Player{}, err
	}
	return model.Player{Name: name, Address: addr}, nil
}

func EncodeBomb(w *Writer, b model.Bomb) error {
	if err := EncodePosition(w, b.Position); err != nil {
		return err
	}
	return w.U16(b.Timer)
}

func DecodeBomb(r *Reader) (model.Bomb, error) {
	pos, err := DecodePosition(r)
	if err != nil {
		return model.Bomb{}, err
	}
	timer, err := r.U16()
	if err != nil {
		return model.Bomb{}, err
	}
	return model.Bomb{Position: pos, Timer: timer}, nil
}
