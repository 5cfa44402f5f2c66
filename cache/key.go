// SPDX-License-Identifier: MIT

package cache

import (
	"strings"

	"github.com/google/uuid"
)

// namespace scopes every Key ID to this module.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("github.com/katalvlaran/diffentropy/cache"))

// Key identifies one artifact.
type Key struct {
	// Checkpoint identifies the data the artifact was computed from
	// (typically a file path plus modification time or a content digest).
	Checkpoint string
	// Artifact names the quantity, e.g. "eigenvalues".
	Artifact string
	// Params is a canonical rendering of the numeric settings.
	Params string
}

// ID returns the deterministic name-based UUID (version 5) of k.
// Equal keys always map to the same ID, across processes.
func (k Key) ID() string {
	var b strings.Builder
	b.WriteString(k.Checkpoint)
	b.WriteByte(0)
	b.WriteString(k.Artifact)
	b.WriteByte(0)
	b.WriteString(k.Params)

	return uuid.NewSHA1(namespace, []byte(b.String())).String()
}

// Validate reports ErrInvalidKey for keys without checkpoint or artifact.
func (k Key) Validate() error {
	if k.Checkpoint == "" || k.Artifact == "" {
		return ErrInvalidKey
	}
	return nil
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return k.Artifact + "@" + k.Checkpoint + "[" + k.Params + "]"
}
