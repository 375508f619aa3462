package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainTable = "primgen/table/v1"
)

// tableNamespace is the UUID namespace for table identities.
var tableNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/roach88/primgen/table"))

// domainData prefixes data with its domain and a 0x00 separator.
// The separator prevents domain/data boundary ambiguity.
func domainData(domain string, data []byte) []byte {
	out := make([]byte, 0, len(domain)+1+len(data))
	out = append(out, domain...)
	out = append(out, 0x00)
	return append(out, data...)
}

// TableDigest returns the SHA-256 of the table's canonical form, hex encoded.
func TableDigest(t *Table) (string, error) {
	canonical, err := MarshalCanonical(t)
	if err != nil {
		return "", fmt.Errorf("TableDigest: failed to marshal: %w", err)
	}
	sum := sha256.Sum256(domainData(DomainTable, canonical))
	return hex.EncodeToString(sum[:]), nil
}

// TableID computes a name-based (version 5) UUID for the table.
// Two tables with the same data model and rows in the same order share an ID,
// regardless of where they were loaded from.
func TableID(t *Table) (uuid.UUID, error) {
	canonical, err := MarshalCanonical(t)
	if err != nil {
		return uuid.Nil, fmt.Errorf("TableID: failed to marshal: %w", err)
	}
	return uuid.NewSHA1(tableNamespace, domainData(DomainTable, canonical)), nil
}

// MustTableID is like TableID but panics on error.
// Use only in tests or when the table is known to be valid.
func MustTableID(t *Table) uuid.UUID {
	id, err := TableID(t)
	if err != nil {
		panic(err)
	}
	return id
}
