package wire

import (
	"cmp"
	"encoding/binary"
	"io"
	"slices"
)

// Writer encodes the wire protocol's primitive types onto an
// underlying io.Writer (a buffered TCP connection on the server↔client
// stream transport, or a byte buffer destined for a single UDP
// datagram on the client↔front-end transport).
type Writer struct {
	w   io.Writer
	buf [4]byte
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (w *Writer) U8(v uint8) error {
	w.buf[0] = v
	_, err := w.w.Write(w.buf[:1])
	return err
}

func (w *Writer) U16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	_, err := w.w.Write(w.buf[:2])
	return err
}

func (w *Writer) U32(v uint32) error {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	_, err := w.w.Write(w.buf[:4])
	return err
}

// Raw writes p verbatim, with no length prefix.
func (w *Writer) Raw(p []byte) error {
	_, err := w.w.Write(p)
	return err
}

// String writes a one-byte length prefix followed by the UTF-8 bytes
// of s. s must be at most 255 bytes; callers validate this at the
// boundary (spec.md §6 CLI limits), so String does not re-check it —
// a string longer than that is a programmer error, not a wire
// condition.
func (w *Writer) String(s string) error {
	if err := w.U8(uint8(len(s))); err != nil {
		return err
	}
	return w.Raw([]byte(s))
}

// maxListCap bounds the initial capacity we pre-allocate for an
// incoming list/map before we've confirmed the stream actually has
// that many bytes behind it, so a forged four-byte length prefix
// can't force a multi-gigabyte allocation up front.
const maxListCap = 1 << 16

// WriteList writes a four-byte length prefix followed by each element
// encoded by enc, in slice order.
func WriteList[T any](w *Writer, items []T, enc func(*Writer, T) error) error {
	if err := w.U32(uint32(len(items))); err != nil {
		return err
	}
	for _, item := range items {
		if err := enc(w, item); err != nil {
			return err
		}
	}
	return nil
}

// WriteMap writes a four-byte length prefix followed by each (key,
// value) pair in ascending key order, per spec.md §3's determinism
// requirement.
func WriteMap[K cmp.Ordered, V any](w *Writer, m map[K]V, encK func(*Writer, K) error, encV func(*Writer, V) error) error {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	if err := w.U32(uint32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := encK(w, k); err != nil {
			return err
		}
		if err := encV(w, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// Reader decodes the wire protocol's primitive types from an
// underlying io.Reader.
type Reader struct {
	r   io.Reader
	buf [4]byte
}

func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

func (r *Reader) fill(n int) ([]byte, error) {
	if _, err := io.ReadFull(r.r, r.buf[:n]); err != nil {
		return nil, protoErr("read primitive", ErrTruncated)
	}
	return r.buf[:n], nil
}

func (r *Reader) U8() (uint8, error) {
	b, err := r.fill(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) U16() (uint16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Raw reads exactly n bytes.
func (r *Reader) Raw(n int) ([]byte, error) {
	p := make([]byte, n)
	if _, err := io.ReadFull(r.r, p); err != nil {
		return nil, protoErr("read raw", ErrTruncated)
	}
	return p, nil
}

func (r *Reader) String() (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	p, err := r.Raw(int(n))
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// ReadList reads a four-byte length prefix followed by that many
// elements, each decoded by dec.
func ReadList[T any](r *Reader, dec func(*Reader) (T, error)) ([]T, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	cap := int(n)
	if cap > maxListCap {
		cap = maxListCap
	}
	items := make([]T, 0, cap)
	for i := uint32(0); i < n; i++ {
		item, err := dec(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ReadMap reads a four-byte length prefix followed by that many (key,
// value) pairs.
func ReadMap[K comparable, V any](r *Reader, decK func(*Reader) (K, error), decV func(*Reader) (V, error)) (map[K]V, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	cap := int(n)
	if cap > maxListCap {
		cap = maxListCap
	}
	m := make(map[K]V, cap)
	for i := uint32(0); i < n; i++ {
		k, err := decK(r)
		if err != nil {
			return nil, err
		}
		v, err := decV(r)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}
