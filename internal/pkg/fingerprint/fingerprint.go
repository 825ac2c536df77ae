// Package fingerprint implements the 64-bit identity hash used to derive
// deterministic entity identifiers from request fields. It is a fast,
// FxHash-style mixer, not a cryptographic hash: inputs are first-party
// beacon fields, and the only requirement is that identical field
// sequences collapse to identical identifiers while distinct ones almost
// never collide.
package fingerprint

import (
	"encoding/binary"
	"math/bits"
)

// multiplier is 2^64 divided by pi, an odd constant chosen for bit
// diffusion under wrapping multiplication.
const multiplier uint64 = 587178100656400245

// Hasher accumulates 64-bit chunks into a single identity value.
// The zero value is ready to use. A Hasher is written once per entity
// and read out with Sum64; it is not safe for concurrent use.
type Hasher struct {
	state uint64
}

// Write mixes one 64-bit chunk into the accumulator. The rotation makes
// the mix order-sensitive, the multiplication spreads the chunk's bits
// across the full state.
func (h *Hasher) Write(chunk uint64) {
	h.state = (bits.RotateLeft64(h.state, 5) ^ chunk) * multiplier
}

// WriteBytes feeds b to the accumulator in consecutive 8-byte
// little-endian chunks. The final chunk is zero-padded to 8 bytes;
// empty input still contributes exactly one zero chunk, so a present
// empty field and an omitted field hash differently.
func (h *Hasher) WriteBytes(b []byte) {
	for len(b) > 8 {
		h.Write(binary.LittleEndian.Uint64(b[:8]))
		b = b[8:]
	}
	var tail [8]byte
	copy(tail[:], b)
	h.Write(binary.LittleEndian.Uint64(tail[:]))
}

// Sum64 returns the accumulated identity value.
func (h *Hasher) Sum64() uint64 {
	return h.state
}

// HashBytes hashes a single byte sequence with a fresh accumulator.
func HashBytes(b []byte) uint64 {
	var h Hasher
	h.WriteBytes(b)
	return h.Sum64()
}
