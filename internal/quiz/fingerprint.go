package quiz

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Domain prefix for fingerprint hashing. The version suffix enables a
// future algorithm migration without ambiguity against old fingerprints.
const domainFingerprint = "multiquiz/fingerprint/v1"

// Fingerprint computes a content-addressed hash of the document's
// structural data. Two documents with equal steps and outcomes always hash
// equal, regardless of field ordering in memory. Selection state is not part
// of the document type and therefore never part of the fingerprint.
//
// The autosave scheduler compares fingerprints to skip commits when nothing
// changed since the last successful write.
func Fingerprint(d *Document) (string, error) {
	encoded, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("fingerprint: marshal document: %w", err)
	}

	// Round-trip through a generic map so canonical marshalling controls
	// key order. UseNumber keeps integer fields out of float64.
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var generic map[string]any
	if err := dec.Decode(&generic); err != nil {
		return "", fmt.Errorf("fingerprint: decode document: %w", err)
	}

	canonical, err := MarshalCanonical(generic)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(domainFingerprint, canonical), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when the document is known to be well-formed.
func MustFingerprint(d *Document) string {
	fp, err := Fingerprint(d)
	if err != nil {
		panic(err)
	}
	return fp
}

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
