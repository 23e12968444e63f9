package recorder

// Sink kinds accepted by NewSink.
const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
	KindBadger = "badger"
	KindJSONL  = "jsonl"
)

// Config selects and locates the durable mirror of the decision ledger.
type Config struct {
	// Kind is one of memory, sqlite, badger, jsonl. Empty means memory.
	Kind string `yaml:"kind" json:"kind" validate:"omitempty,oneof=memory sqlite badger jsonl"`

	// Path is the database file (sqlite), directory (badger) or log file
	// (jsonl). Required for every kind except memory.
	Path string `yaml:"path" json:"path,omitempty"`

	// SubscriberBuffer is the channel capacity handed to live subscribers.
	SubscriberBuffer int `yaml:"subscriber_buffer" json:"subscriber_buffer,omitempty" validate:"gte=0"`
}
