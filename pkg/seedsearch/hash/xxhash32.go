// Package hash provides the 32-bit non-cryptographic hash primitive the
// weather oracle mixes into every RNG seed derivation. It implements the
// xxHash32 algorithm (Yann Collet, seed 0) bit-for-bit, the same "hash the
// bytes, then reinterpret as a fixed-width scalar" shape as
// HashNeuron.Forward in the neural hasher this package was grown from.
package hash

import "encoding/binary"

const (
	prime32_1 uint32 = 2654435761
	prime32_2 uint32 = 2246822519
	prime32_3 uint32 = 3266489917
	prime32_4 uint32 = 668265263
	prime32_5 uint32 = 374761393
)

// Seed32 computes the xxHash32 digest of data with the given seed.
func Seed32(data []byte, seed uint32) uint32 {
	var h uint32
	n := len(data)

	if n >= 16 {
		v1 := seed + prime32_1 + prime32_2
		v2 := seed + prime32_2
		v3 := seed
		v4 := seed - prime32_1

		for len(data) >= 16 {
			v1 = round32(v1, binary.LittleEndian.Uint32(data[0:4]))
			v2 = round32(v2, binary.LittleEndian.Uint32(data[4:8]))
			v3 = round32(v3, binary.LittleEndian.Uint32(data[8:12]))
			v4 = round32(v4, binary.LittleEndian.Uint32(data[12:16]))
			data = data[16:]
		}

		h = rotl32(v1, 1) + rotl32(v2, 7) + rotl32(v3, 12) + rotl32(v4, 18)
	} else {
		h = seed + prime32_5
	}

	h += uint32(n)

	for len(data) >= 4 {
		h += binary.LittleEndian.Uint32(data[0:4]) * prime32_3
		h = rotl32(h, 17) * prime32_4
		data = data[4:]
	}

	for len(data) > 0 {
		h += uint32(data[0]) * prime32_5
		h = rotl32(h, 11) * prime32_1
		data = data[1:]
	}

	h ^= h >> 15
	h *= prime32_2
	h ^= h >> 13
	h *= prime32_3
	h ^= h >> 16

	return h
}

func round32(acc, input uint32) uint32 {
	acc += input * prime32_2
	acc = rotl32(acc, 13)
	acc *= prime32_1
	return acc
}

func rotl32(x uint32, r uint) uint32 {
	return (x << r) | (x >> (32 - r))
}

// Bytes hashes data with seed 0 and reinterprets the xxHash32 digest as a
// signed 32-bit integer using little-endian two's-complement semantics
// (the high bit of the uint32 becomes the sign bit).
func Bytes(data []byte) int32 {
	return int32(Seed32(data, 0))
}

// String hashes the UTF-8 byte sequence of s.
func String(s string) int32 {
	return Bytes([]byte(s))
}

// Ints hashes the concatenation of each v as four little-endian bytes of
// its 32-bit unsigned representation.
func Ints(v ...int32) int32 {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(x))
	}
	return Bytes(buf)
}
