package ident

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const (
	DefaultIDLength  = 26
	DefaultHexLength = 42
)

// Minter mints synthetic identifiers. The pipeline has no real resolution
// authority to obtain condition ids or token ids from; a future oracle
// integration replaces this interface without touching the orchestrator.
type Minter interface {
	// MintID returns a random lowercase hex string of exactly length chars.
	MintID(length int) string
	// MintHex returns a 0x-prefixed random hex string whose total length
	// (including the prefix) equals length.
	MintHex(length int) string
	// DeriveHex returns a 0x-prefixed hex string of total length derived
	// deterministically from seed. Same seed, same output.
	DeriveHex(seed string, length int) string
}

// CryptoMinter draws from crypto/rand
type CryptoMinter struct{}

func NewCryptoMinter() *CryptoMinter {
	return &CryptoMinter{}
}

func (m *CryptoMinter) MintID(length int) string {
	if length <= 0 {
		length = DefaultIDLength
	}
	return randomHex(length)
}

func (m *CryptoMinter) MintHex(length int) string {
	if length <= 2 {
		length = DefaultHexLength
	}
	return "0x" + randomHex(length-2)
}

func (m *CryptoMinter) DeriveHex(seed string, length int) string {
	if length <= 2 {
		length = DefaultHexLength
	}
	n := length - 2
	sum := sha256.Sum256([]byte(seed))
	out := hex.EncodeToString(sum[:])
	// Stretch by re-hashing when more than 64 hex chars are requested
	for len(out) < n {
		sum = sha256.Sum256(sum[:])
		out += hex.EncodeToString(sum[:])
	}
	return "0x" + out[:n]
}

// randomHex returns n random lowercase hex characters
func randomHex(n int) string {
	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)[:n]
}
