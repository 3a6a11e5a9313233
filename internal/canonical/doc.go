// Package canonical produces RFC 8785 canonical JSON and domain-separated
// digests of it.
//
// Canonical bytes are the only input to fingerprints and golden snapshots.
// Two values that are equal as data always marshal to identical bytes:
// object keys are sorted by UTF-16 code units, strings are NFC normalized,
// and HTML characters are not escaped.
//
// Supported values: string, bool, int, int64, uint64, []any, []string and
// map[string]any. Floats and nil are rejected; callers encode 256-bit
// numbers as decimal strings.
package canonical
