package api

import (
	"time"

	"github.com/segmentio/ksuid"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TypeInfo describes one catalog entry
type TypeInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// EncodeRequest carries the text form of a value
type EncodeRequest struct {
	Value string `json:"value"`
}

// EncodeResponse carries the wire bytes of a value
type EncodeResponse struct {
	Type   string `json:"type"`
	Hex    string `json:"hex"`
	Length int    `json:"length"`
}

// DecodeRequest carries hex encoded wire bytes
type DecodeRequest struct {
	Hex string `json:"hex"`
	All bool   `json:"all,omitempty"`
}

// DecodeResponse reports the decoded value and how much input it used. With
// All set, Values holds every value in the input and Consumed is the whole
// input.
type DecodeResponse struct {
	Type      string   `json:"type"`
	Value     string   `json:"value,omitempty"`
	Values    []string `json:"values,omitempty"`
	Consumed  int      `json:"consumed"`
	Remaining string   `json:"remaining,omitempty"`
}

// StoredValue is a value kept in the store
type StoredValue struct {
	ID    string `json:"id"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
	Hex   string `json:"hex"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Addr            string
	APIKey          string
	MaxBodySize     int64
	ShutdownTimeout time.Duration
}

// IValueStore defines the store operations the API needs
type IValueStore interface {
	PutRaw(data []byte) (ksuid.KSUID, error)
	GetRaw(id ksuid.KSUID) ([]byte, error)
	Delete(id ksuid.KSUID) error
	List(fn func(id ksuid.KSUID, data []byte) error) error
}
