package recorder

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/draiml/draiml/internal/logging"
)

var (
	badgerSeqKey = []byte("seq/decisions")
	badgerPrefix = []byte("decision/")
)

// BadgerSink mirrors ledger entries into badger under big-endian sequence
// keys, so key order is insertion order.
type BadgerSink struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger logging.Logger
}

// NewBadgerSink opens the badger directory at dir.
func NewBadgerSink(dir string, logger logging.Logger) (*BadgerSink, error) {
	opts := badger.DefaultOptions(dir).WithLogger(logging.BadgerLogger{Logger: logger})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}
	seq, err := db.GetSequence(badgerSeqKey, 64)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("leasing badger sequence: %w", err)
	}
	logger.Info("badger decision sink ready", logging.Field{Key: "dir", Value: dir})
	return &BadgerSink{db: db, seq: seq, logger: logger}, nil
}

func badgerKey(n uint64) []byte {
	k := make([]byte, len(badgerPrefix)+8)
	copy(k, badgerPrefix)
	binary.BigEndian.PutUint64(k[len(badgerPrefix):], n)
	return k
}

func (s *BadgerSink) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	val, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(n), val)
	})
}

func (s *BadgerSink) List(ctx context.Context, limit int) ([]Entry, error) {
	var out []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = badgerPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		// reverse iteration has to start past the last key of the prefix
		seek := append(append([]byte{}, badgerPrefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(badgerPrefix); it.Next() {
			if limit > 0 && len(out) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			var e Entry
			if err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &e)
			}); err != nil {
				return fmt.Errorf("decoding entry: %w", err)
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *BadgerSink) Close() error {
	if err := s.seq.Release(); err != nil {
		s.logger.Warn("releasing badger sequence", logging.Field{Key: "error", Value: err})
	}
	return s.db.Close()
}
