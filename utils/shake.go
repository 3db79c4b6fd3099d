package utils

import (
	"encoding/binary"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/sha3"
)

// DomainFingerprint separates S-box fingerprints from any other hash use.
const DomainFingerprint = "sboxeval-fingerprint-v1"

var shake256Pool = sync.Pool{
	New: func() interface{} {
		return sha3.NewShake256()
	},
}

// Shake256 computes the SHAKE256 extendable output function (XOF).
// It takes an input byte slice and generates an output of the specified length.
func Shake256(input []byte, outputLen int) []byte {
	h := shake256Pool.Get().(sha3.ShakeHash)
	defer func() {
		h.Reset()
		shake256Pool.Put(h)
	}()

	h.Write(input)
	output := make([]byte, outputLen)
	_, _ = h.Read(output)
	return output
}

// HashWithDomain computes a domain-separated SHA3-256 hash.
// It prefixes the data with the length of the domain string and the domain string itself.
// Panics if domain is longer than 255 bytes.
func HashWithDomain(domain string, data []byte) []byte {
	domainBytes := []byte(domain)
	if len(domainBytes) > 255 {
		panic("domain string must be at most 255 bytes")
	}
	h := sha3.New256()
	h.Write([]byte{byte(len(domainBytes))})
	h.Write(domainBytes)
	h.Write(data)
	return h.Sum(nil)
}

// Fingerprint returns a hex SHA3-256 digest identifying a flattened S-box.
// Two tables that normalize to the same integer sequence share a fingerprint,
// whatever symbols they were written in.
func Fingerprint(values []int) string {
	buf := make([]byte, 0, 8+8*len(values))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(values)))
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	return hex.EncodeToString(HashWithDomain(DomainFingerprint, buf))
}
