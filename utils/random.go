package utils

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"
)

var RandReader io.Reader = rand.Reader

// SecureRandomBytes generates n cryptographically secure random bytes.
// It uses crypto/rand, which relies on the operating system's CSPRNG.
func SecureRandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := RandReader.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// SeededPermutation returns a permutation of [0, size) derived deterministically
// from seed. It runs a Fisher-Yates shuffle driven by SHAKE256 output, using
// rejection sampling so every swap index is uniform.
// The same seed and size always yield the same permutation.
func SeededPermutation(seed []byte, size int) ([]int, error) {
	if size < 0 {
		return nil, ErrInvalidLength
	}
	if size > MaxTableCells {
		return nil, ErrExceedsLimit
	}
	if len(seed) == 0 {
		return nil, errors.New("seed must not be empty")
	}

	perm := make([]int, size)
	for i := range perm {
		perm[i] = i
	}
	if size < 2 {
		return perm, nil
	}

	bytes := Shake256(seed, size*4*2)
	bytesUsed := 0
	extensionCounter := 0

	next := func() uint32 {
		if bytesUsed+4 > len(bytes) {
			extensionCounter++
			extSeed := make([]byte, len(seed)+4)
			copy(extSeed, seed)
			binary.LittleEndian.PutUint32(extSeed[len(seed):], uint32(extensionCounter))
			bytes = Shake256(extSeed, size*4*2)
			bytesUsed = 0
		}
		v := binary.LittleEndian.Uint32(bytes[bytesUsed:])
		bytesUsed += 4
		return v
	}

	for i := size - 1; i > 0; i-- {
		bound := uint32(i + 1)
		// Rejection threshold for unbiased sampling
		threshold := uint32(0xFFFFFFFF - (0xFFFFFFFF % bound))
		var v uint32
		for {
			v = next()
			if v < threshold {
				break
			}
		}
		j := int(v % bound)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm, nil
}
