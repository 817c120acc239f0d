package api

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/transmit/pkg/catalog"
	"github.com/ssargent/transmit/pkg/storage"
	"github.com/ssargent/transmit/pkg/wire"
)

const defaultMaxBodySize = 1 << 20

// Server holds the API server state
type Server struct {
	store    IValueStore
	types    *catalog.Catalog
	config   ServerConfig
	metrics  *Metrics
	log      zerolog.Logger
	gatherer prometheus.Gatherer
}

// NewServer creates a new API server. A nil store disables the value routes.
func NewServer(store IValueStore, types *catalog.Catalog, config ServerConfig, metrics *Metrics, logger zerolog.Logger) *Server {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = defaultMaxBodySize
	}
	return &Server{
		store:   store,
		types:   types,
		config:  config,
		metrics: metrics,
		log:     logger.With().Str("component", "api").Logger(),
	}
}

// statusFor maps an error to its HTTP status. Codec failures are the
// client's data, not a server fault.
func statusFor(err error) int {
	var decErr *wire.DecodeError
	switch {
	case errors.As(err, &decErr),
		errors.Is(err, wire.ErrTrailingBytes),
		errors.Is(err, wire.ErrZeroWidth),
		errors.Is(err, wire.ErrEncode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrUnknownType), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrValueTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.log.Error().Err(err).Msg("request failed")
	}
	sendError(w, err.Error(), status)
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (catalog.Type, bool) {
	t, err := s.types.Lookup(chi.URLParam(r, "type"))
	if err != nil {
		s.fail(w, err)
		return catalog.Type{}, false
	}
	return t, true
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		sendError(w, "Value store is not configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// handleHealth reports that the server is up
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleTypes lists the catalog
func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	types := s.types.Types()
	out := make([]TypeInfo, 0, len(types))
	for _, t := range types {
		out = append(out, TypeInfo{Name: t.Name, Size: t.Size})
	}
	sendSuccess(w, out)
}

// handleEncode parses {"value": ...} as the path type and returns its wire bytes
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req EncodeRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	v, err := t.Parse(req.Value)
	if err != nil {
		s.metrics.RecordCodecOperation("encode", t.Name, 0, false)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	encoded, err := wire.Encode(v)
	if err != nil {
		s.metrics.RecordCodecOperation("encode", t.Name, 0, false)
		s.fail(w, err)
		return
	}

	s.metrics.RecordCodecOperation("encode", t.Name, len(encoded), true)
	sendSuccess(w, EncodeResponse{Type: t.Name, Hex: hex.EncodeToString(encoded), Length: len(encoded)})
}

// handleDecode reads {"hex": ...} as the path type. Decode errors are
// returned with status 422 and the codec's own message.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req DecodeRequest
	if !s.readJSON(w, r, &req) {
		return
	}
	data, err := hex.DecodeString(strings.TrimSpace(req.Hex))
	if err != nil {
		sendError(w, "Invalid hex: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp := DecodeResponse{Type: t.Name}
	if req.All {
		resp.Values, err = t.DecodeAll(data)
		resp.Consumed = len(data)
	} else {
		resp.Value, resp.Consumed, err = t.Decode(data)
		resp.Remaining = hex.EncodeToString(data[resp.Consumed:])
	}
	if err != nil {
		s.metrics.RecordCodecOperation("decode", t.Name, 0, false)
		s.fail(w, err)
		return
	}

	s.metrics.RecordCodecOperation("decode", t.Name, resp.Consumed, true)
	sendSuccess(w, resp)
}

// handlePutValue encodes {"value": ...} as the path type and stores it
func (s *Server) handlePutValue(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req EncodeRequest
	if !s.readJSON(w, r, &req) {
		return
	}

	encoded, err := t.Encode(req.Value)
	if err != nil {
		s.metrics.RecordCodecOperation("encode", t.Name, 0, false)
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		sendError(w, err.Error(), status)
		return
	}
	s.metrics.RecordCodecOperation("encode", t.Name, len(encoded), true)

	id, err := s.store.PutRaw(encoded)
	if err != nil {
		s.fail(w, err)
		return
	}
	sendSuccess(w, StoredValue{ID: id.String(), Type: t.Name, Value: req.Value, Hex: hex.EncodeToString(encoded)})
}

// handleGetValue reads a stored value as the path type. The stored bytes
// must hold exactly one value.
func (s *Server) handleGetValue(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id, err := storage.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}

	data, err := s.store.GetRaw(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	value, err := t.DecodeExact(data)
	if err != nil {
		s.metrics.RecordCodecOperation("decode", t.Name, 0, false)
		s.fail(w, err)
		return
	}

	s.metrics.RecordCodecOperation("decode", t.Name, len(data), true)
	sendSuccess(w, StoredValue{ID: id.String(), Type: t.Name, Value: value, Hex: hex.EncodeToString(data)})
}

// handleDeleteValue removes a stored value
func (s *Server) handleDeleteValue(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id, err := storage.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.store.Delete(id); err != nil {
		s.fail(w, err)
		return
	}
	sendSuccess(w, map[string]string{"message": "Value deleted successfully"})
}

// handleListValues lists stored values as raw bytes, oldest first
func (s *Server) handleListValues(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	values := make([]StoredValue, 0)
	err := s.store.List(func(id ksuid.KSUID, data []byte) error {
		values = append(values, StoredValue{ID: id.String(), Hex: hex.EncodeToString(data)})
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	sendSuccess(w, values)
}
