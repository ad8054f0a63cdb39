package interfaces

// IDGenerator produces unique opaque string identifiers. Uniqueness is the
// only guarantee; ids are not required to be sortable or monotonic.
//
// The prefix conventions mirror the stored data: "order", "svc", "cmp",
// "evt", "err", "auth".
type IDGenerator interface {
	NewID(prefix string) string
}
