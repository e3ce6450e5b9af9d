package partition

// ID is one of the three destination partitions. Every order maps to
// exactly one: the two known classifications route to their own ledger,
// anything else falls through to the international one.
type ID string

const (
	Local         ID = "local"
	Remote        ID = "remote"
	International ID = "international"
)

// Classifications the order form is known to send.
const (
	ClassLocal  = "local"
	ClassRemote = "remote"
)

// Route maps an order classification to its partition. Unknown values are
// not an error; they land in the international partition.
func Route(orderType string) ID {
	switch orderType {
	case ClassLocal:
		return Local
	case ClassRemote:
		return Remote
	default:
		return International
	}
}

// TableName is the ledger table backing the partition.
func (id ID) TableName() string {
	switch id {
	case Local:
		return "local_orders"
	case Remote:
		return "remote_orders"
	default:
		return "international_orders"
	}
}

// FromString parses a partition identifier, e.g. from a URL path segment.
func FromString(s string) (ID, bool) {
	switch ID(s) {
	case Local, Remote, International:
		return ID(s), true
	}
	return "", false
}

// All lists every partition, in routing order.
func All() []ID { return []ID{Local, Remote, International} }
