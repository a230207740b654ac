// Package hash computes content hashes of course listings.
//
// A stored plan keeps the hash of every listing it was built from. Refreshing
// a plan fetches each listing again and compares hashes to tell which courses
// changed upstream. The package provides both a real implementation using
// crypto/sha256 and a fake implementation for testing.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/WillCS/uqplanner/internal/timetable"
)

// Hasher provides an abstraction for listing hashing operations.
type Hasher interface {
	// HashListing computes the content hash of a listing. The listing's own
	// Hash field never contributes to the result.
	HashListing(listing timetable.Listing) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256 over the listing's JSON form.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashListing computes the SHA-256 hash of the listing with Hash cleared.
func (h *SHA256Hasher) HashListing(listing timetable.Listing) (string, error) {
	listing.Hash = ""
	data, err := json.Marshal(listing)
	if err != nil {
		return "", fmt.Errorf("failed to encode listing %s: %w", listing.Name, err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// WithHash returns a copy of listing with its Hash field filled in.
func WithHash(h Hasher, listing timetable.Listing) (timetable.Listing, error) {
	sum, err := h.HashListing(listing)
	if err != nil {
		return timetable.Listing{}, err
	}
	listing.Hash = sum
	return listing, nil
}

// FakeHasher implements Hasher with deterministic hashes for testing.
type FakeHasher struct {
	hashes map[string]string
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
	}
}

// SetHash sets the hash returned for a listing name (for testing).
func (h *FakeHasher) SetHash(listingName, hash string) {
	h.hashes[listingName] = hash
}

// HashListing returns the predetermined hash for the listing's name.
func (h *FakeHasher) HashListing(listing timetable.Listing) (string, error) {
	if hash, ok := h.hashes[listing.Name]; ok {
		return hash, nil
	}
	return "fakehash", nil
}
