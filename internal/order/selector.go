package order

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Selector is a 4-byte identifier: a function selector, an ERC-165 interface
// id, or the magic value a callback returns to signal success.
type Selector [4]byte

// SelectorOf returns the first four bytes of keccak256(signature), e.g.
// SelectorOf("supportsInterface(bytes4)") == 0x01ffc9a7.
func SelectorOf(signature string) Selector {
	var s Selector
	copy(s[:], crypto.Keccak256([]byte(signature))[:4])
	return s
}

// InterfaceID returns the ERC-165 interface id of a set of function
// signatures: the XOR of their selectors.
func InterfaceID(signatures ...string) Selector {
	var id Selector
	for _, sig := range signatures {
		s := SelectorOf(sig)
		for i := range id {
			id[i] ^= s[i]
		}
	}
	return id
}

// Bytes returns the selector as a fresh 4-byte slice.
func (s Selector) Bytes() []byte {
	return []byte{s[0], s[1], s[2], s[3]}
}

// IsZero reports whether all four bytes are zero.
func (s Selector) IsZero() bool {
	return s == Selector{}
}

// String returns the 0x-prefixed hex form.
func (s Selector) String() string {
	return hexutil.Encode(s[:])
}

// MarshalText implements encoding.TextMarshaler.
func (s Selector) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Input must be
// 0x-prefixed and exactly four bytes long.
func (s *Selector) UnmarshalText(text []byte) error {
	b, err := hexutil.Decode(string(text))
	if err != nil {
		return fmt.Errorf("selector %q: %w", text, err)
	}
	if len(b) != len(s) {
		return fmt.Errorf("selector %q: want %d bytes, got %d", text, len(s), len(b))
	}
	copy(s[:], b)
	return nil
}
