// Package id mints trade identifiers.
package id

import "github.com/oklog/ulid/v2"

// Trade returns a fresh trade ID. IDs minted within the same millisecond
// stay lexicographically increasing, which the journal relies on for
// close-time ordering. Safe for concurrent use.
func Trade() string {
	return ulid.Make().String()
}
