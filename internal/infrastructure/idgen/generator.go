// Package idgen generates the opaque identifiers used across the order
// aggregate ("order-", "svc-", "evt-", ... prefixes).
package idgen

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/seha3/repair-orders/internal/usecase/interfaces"
)

// UUIDGenerator issues prefix-tagged UUIDs. The prefix only aids debugging;
// uniqueness comes from the UUID.
type UUIDGenerator struct{}

var _ interfaces.IDGenerator = (*UUIDGenerator)(nil)

func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID(prefix string) string {
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
