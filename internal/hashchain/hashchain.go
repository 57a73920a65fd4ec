// Package hashchain computes the per-entity-type block hashes that link each
// newly recorded farming activity or collaboration to the previously inserted
// row. The chain is an integrity aid for external auditors, not a consensus
// mechanism: the service never verifies it, an auditor recomputes the sequence
// and compares.
package hashchain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Sentinel seeds a chain that has no rows yet.
const Sentinel = "initial_block"

// TimestampLayout pins the timestamp rendering that feeds the digest. A hash
// is only reproducible if the verifier renders the stored timestamp the same
// way.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// BlockHash returns hex(SHA256(prevHash || practice || timestamp)). The hash
// is computed exactly once, at first insert, and never recomputed on update.
func BlockHash(prevHash, practice string, ts time.Time) string {
	content := prevHash + practice + ts.UTC().Format(TimestampLayout)
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
