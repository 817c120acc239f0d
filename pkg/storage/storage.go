// Package storage keeps wire-encoded values in a pebble database under
// time-ordered ksuid keys. A stored value is exactly the wire encoding of one
// value with no framing around it.
package storage

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/transmit/pkg/wire"
)

var (
	ErrNotFound      = errors.New("value not found")
	ErrValueTooLarge = errors.New("value too large")
	ErrInvalidID     = errors.New("invalid id")
)

type options struct {
	logger       zerolog.Logger
	registerer   prometheus.Registerer
	maxValueSize int
	sync         bool
}

// Option configures a Store.
type Option func(*options)

// WithLogger sets the logger used for write and delete events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegisterer registers the store metrics with r. Without it the metrics
// are kept but not exported.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.registerer = r }
}

// WithMaxValueSize rejects encodings longer than n bytes. Zero means no limit.
func WithMaxValueSize(n int) Option {
	return func(o *options) { o.maxValueSize = n }
}

// WithSync makes every write wait for the WAL to reach disk.
func WithSync(sync bool) Option {
	return func(o *options) { o.sync = sync }
}

// Store is a pebble-backed value store. It is safe for concurrent use. An
// Update racing a Delete of the same id either lands before it or fails with
// ErrNotFound.
type Store struct {
	mu      sync.Mutex // serializes check-then-write on existing ids
	db      *pebble.DB
	log     zerolog.Logger
	metrics *Metrics
	opts    options
}

// Open opens or creates the store at path.
func Open(path string, opts ...Option) (*Store, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open store at %s", path)
	}

	s := &Store{
		db:      db,
		log:     o.logger.With().Str("component", "storage").Logger(),
		metrics: NewMetrics(o.registerer),
		opts:    o,
	}
	s.log.Debug().Str("path", path).Msg("store opened")
	return s, nil
}

func (s *Store) writeOpts() *pebble.WriteOptions {
	if s.opts.sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

// ParseID parses the text form of a value id.
func ParseID(text string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(text)
	if err != nil {
		return ksuid.Nil, errors.Mark(errors.Wrapf(err, "parse id %q", text), ErrInvalidID)
	}
	return id, nil
}

// Put encodes v and stores it under a new id.
func (s *Store) Put(v wire.Encodable) (ksuid.KSUID, error) {
	data, err := wire.Encode(v)
	if err != nil {
		return ksuid.Nil, err
	}
	return s.PutRaw(data)
}

// PutRaw stores already encoded bytes under a new id.
func (s *Store) PutRaw(data []byte) (ksuid.KSUID, error) {
	start := time.Now()
	id := ksuid.New()
	err := s.set(id, data)
	s.metrics.record("put", err, time.Since(start))
	if err != nil {
		return ksuid.Nil, err
	}

	s.log.Debug().Stringer("id", id).Int("bytes", len(data)).Msg("value stored")
	return id, nil
}

func (s *Store) set(id ksuid.KSUID, data []byte) error {
	if s.opts.maxValueSize > 0 && len(data) > s.opts.maxValueSize {
		return errors.Mark(
			errors.Newf("value of %d bytes exceeds limit of %d", len(data), s.opts.maxValueSize),
			ErrValueTooLarge)
	}
	if err := s.db.Set(id.Bytes(), data, s.writeOpts()); err != nil {
		return errors.Wrap(err, "failed to write value")
	}
	s.metrics.bytesWritten.Add(float64(len(data)))
	return nil
}

// GetRaw returns a copy of the bytes stored under id.
func (s *Store) GetRaw(id ksuid.KSUID) ([]byte, error) {
	start := time.Now()
	data, err := s.get(id)
	s.metrics.record("get", err, time.Since(start))
	return data, err
}

func (s *Store) get(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Mark(errors.Newf("no value with id %s", id), ErrNotFound)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read value")
	}
	defer closer.Close()

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Get reads the value stored under id as a T. The stored bytes must hold
// exactly one T; decode errors are returned unchanged.
func Get[T any, P wire.Decodable[T]](s *Store, id ksuid.KSUID) (T, error) {
	data, err := s.GetRaw(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return wire.DecodeExact[T, P](data)
}

// Update replaces the value stored under an existing id.
func (s *Store) Update(id ksuid.KSUID, v wire.Encodable) error {
	data, err := wire.Encode(v)
	if err != nil {
		return err
	}

	start := time.Now()
	err = s.update(id, data)
	s.metrics.record("update", err, time.Since(start))
	if err == nil {
		s.log.Debug().Stringer("id", id).Int("bytes", len(data)).Msg("value updated")
	}
	return err
}

func (s *Store) update(id ksuid.KSUID, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.get(id); err != nil {
		return err
	}
	return s.set(id, data)
}

// Delete removes the value stored under id.
func (s *Store) Delete(id ksuid.KSUID) error {
	start := time.Now()
	err := s.delete(id)
	s.metrics.record("delete", err, time.Since(start))
	if err == nil {
		s.log.Debug().Stringer("id", id).Msg("value deleted")
	}
	return err
}

func (s *Store) delete(id ksuid.KSUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.get(id); err != nil {
		return err
	}
	if err := s.db.Delete(id.Bytes(), s.writeOpts()); err != nil {
		return errors.Wrap(err, "failed to delete value")
	}
	return nil
}

// List calls fn for every stored value in id order, which is creation order.
// data is only valid during the call. An error from fn stops the walk and is
// returned.
func (s *Store) List(fn func(id ksuid.KSUID, data []byte) error) error {
	start := time.Now()
	err := s.list(fn)
	s.metrics.record("list", err, time.Since(start))
	return err
}

func (s *Store) list(fn func(id ksuid.KSUID, data []byte) error) error {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return errors.Wrap(err, "failed to open iterator")
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key())
		if err != nil {
			return errors.Wrapf(err, "corrupt key %x", iter.Key())
		}
		if err := fn(id, iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
