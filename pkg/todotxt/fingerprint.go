package todotxt

import (
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable hex identity for t. Every field contributes,
// so two tasks share a fingerprint only when they are structurally equal.
// It is an opaque comparison key, not a cryptographic digest.
func Fingerprint(t Task) string {
	h := xxhash.New()
	e := encoder{h: h}

	e.putString(t.Subject)
	e.putByte(t.Priority)
	e.putDate(t.CreateDate)
	e.putDate(t.FinishDate)
	e.putBool(t.Finished)
	e.putDate(t.ThresholdDate)
	e.putDate(t.DueDate)
	e.putList(t.Contexts)
	e.putList(t.Projects)
	e.putList(t.Hashtags)

	keys := sortedKeys(t.Tags)
	e.putUint(uint64(len(keys)))
	for _, k := range keys {
		e.putString(k)
		e.putString(t.Tags[k])
	}

	return strconv.FormatUint(h.Sum64(), 16)
}

// Hash is shorthand for Fingerprint(t).
func (t Task) Hash() string {
	return Fingerprint(t)
}

// encoder writes a length-prefixed canonical form so that adjacent fields
// cannot be confused with each other.
type encoder struct {
	h   *xxhash.Digest
	buf [binary.MaxVarintLen64]byte
}

func (e *encoder) putUint(v uint64) {
	n := binary.PutUvarint(e.buf[:], v)
	_, _ = e.h.Write(e.buf[:n])
}

func (e *encoder) putByte(b byte) {
	_, _ = e.h.Write([]byte{b})
}

func (e *encoder) putBool(b bool) {
	if b {
		e.putByte(1)
		return
	}
	e.putByte(0)
}

func (e *encoder) putString(s string) {
	e.putUint(uint64(len(s)))
	_, _ = e.h.WriteString(s)
}

func (e *encoder) putList(items []string) {
	e.putUint(uint64(len(items)))
	for _, s := range items {
		e.putString(s)
	}
}

func (e *encoder) putDate(d *Date) {
	if d == nil {
		e.putByte(0)
		return
	}
	e.putByte(1)
	e.putUint(uint64(d.Year))
	e.putByte(byte(d.Month))
	e.putByte(byte(d.Day))
}
