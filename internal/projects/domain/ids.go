package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ID prefixes for generated identifiers.
const (
	PrefixProject      = "project"
	PrefixMicroservice = "service"
	PrefixNode         = "node"
	PrefixConnection   = "conn"
)

// IDGenerator produces identifiers for new entities.
type IDGenerator func(prefix string) string

// NewID generates a collision-resistant id, e.g. "node-3f2a...".
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
