package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/transmit/pkg/api"
	"github.com/ssargent/transmit/pkg/catalog"
	"github.com/ssargent/transmit/pkg/config"
	"github.com/ssargent/transmit/pkg/di"
)

// execute runs the command tree with a private config file and data dir
func execute(t *testing.T, c *di.Container, dir string, args ...string) (string, error) {
	t.Helper()

	configPath := filepath.Join(dir, "config.yaml")
	if !config.ConfigExists(configPath) {
		cfg := config.DefaultConfig()
		cfg.DataDir = filepath.Join(dir, "data")
		cfg.Security.APIKey = "test-key"
		require.NoError(t, config.SaveConfig(cfg, configPath))
	}

	root := NewRootCmd(c)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", configPath, "--log-level", "disabled"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestTypesCommand(t *testing.T) {
	out, err := execute(t, nil, t.TempDir(), "types")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"NAME", "SIZE"}, strings.Fields(lines[0]))
	assert.Contains(t, out, "guid")
	assert.Regexp(t, `(?m)^probe\s+24$`, out)
	assert.Regexp(t, `(?m)^unit\s+0$`, out)
}

func TestEncodeCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"encode", "u32", "4"}, "04000000\n"},
		{[]string{"encode", "ipv4", "1.2.3.4"}, "01020304\n"},
		{[]string{"encode", "--spaced", "u16", "0x0102"}, "02 01\n"},
		{[]string{"encode", "guid", "01000000-0000-0000-0000-000000000000"}, "00000000000000000000000000000001\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := execute(t, nil, dir, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	_, err := execute(t, nil, dir, "encode", "string", "x")
	assert.True(t, errors.Is(err, catalog.ErrUnknownType))

	_, err = execute(t, nil, dir, "encode", "u8", "256")
	assert.Error(t, err)
}

func TestDecodeCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, nil, dir, "decode", "u32", "04000000")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	out, err = execute(t, nil, dir, "decode", "u16", "01 00 ff")
	require.NoError(t, err)
	assert.Equal(t, "1\nconsumed 2 of 3 bytes, remaining ff\n", out)

	out, err = execute(t, nil, dir, "decode", "--all", "u16", "010002000300")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)

	_, err = execute(t, nil, dir, "decode", "u32", "01")
	require.Error(t, err)
	assert.Equal(t, "wire: 4 bytes of input required to decode uint32, found 1: [1]", err.Error())

	_, err = execute(t, nil, dir, "decode", "u8", "xyz")
	assert.Error(t, err)
}

func TestDemoCommand(t *testing.T) {
	out, err := execute(t, nil, t.TempDir(), "demo", "--seq", "7", "--addr", "10.0.0.1")
	require.NoError(t, err)

	assert.Contains(t, out, ",7,10.0.0.1")
	assert.Contains(t, out, "(24 bytes)")
	assert.Contains(t, out, "070000000a000001")
	assert.Contains(t, out, "consumed 24")
	assert.Contains(t, out, "wire: 4 bytes of input required to decode IPv4, found 3")

	_, err = execute(t, nil, t.TempDir(), "demo", "--addr", "::1")
	assert.Error(t, err)
}

func TestStoreCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, nil, dir, "put", "ipv4", "10.0.0.1")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.Len(t, id, 27)
	assert.DirExists(t, filepath.Join(dir, "data", "values"))

	out, err = execute(t, nil, dir, "get", "ipv4", id)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1\n", out)

	_, err = execute(t, nil, dir, "get", "u16", id)
	assert.Error(t, err)

	out, err = execute(t, nil, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, id+"\t0a000001\n", out)

	out, err = execute(t, nil, dir, "list", "--type", "u32")
	require.NoError(t, err)
	assert.Equal(t, id+"\t16777226\n", out)

	out, err = execute(t, nil, dir, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+id)

	_, err = execute(t, nil, dir, "get", "ipv4", id)
	assert.Error(t, err)

	_, err = execute(t, nil, dir, "delete", "not-an-id")
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "transmit.toml")

	root := NewRootCmd(nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"init", "--config", configPath, "--data-dir", filepath.Join(dir, "data"), "--print-key"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "API key: ")

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Len(t, cfg.Security.APIKey, 64)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)

	root = NewRootCmd(nil)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"init", "--config", configPath})
	assert.Error(t, root.Execute())

	root = NewRootCmd(nil)
	root.SetOut(&out)
	root.SetArgs([]string{"init", "--config", configPath, "--force"})
	assert.NoError(t, root.Execute())
}

func TestConfigErrors(t *testing.T) {
	_, err := execute(t, nil, t.TempDir(), "--log-level", "loud", "types")
	assert.Error(t, err)

	root := NewRootCmd(nil)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "types"})
	assert.Error(t, root.Execute())
}

// fakeStarter records the server configuration instead of listening
type fakeStarter struct {
	config api.ServerConfig
	called bool
}

func (f *fakeStarter) StartServer(ctx context.Context, store api.IValueStore, types *catalog.Catalog, config api.ServerConfig, logger zerolog.Logger) error {
	f.called = true
	f.config = config
	return store.List(func(ksuid.KSUID, []byte) error { return nil })
}

type fakeFactory struct{ starter *fakeStarter }

func (f fakeFactory) CreateServerStarter() api.ServerStarter { return f.starter }

func TestServeCommand(t *testing.T) {
	dir := t.TempDir()
	starter := &fakeStarter{}
	c := di.NewContainer()
	c.SetRegistry(prometheus.NewRegistry())
	c.SetServerFactory(fakeFactory{starter: starter})

	_, err := execute(t, c, dir, "serve", "--port", "9300", "--api-key", "override")
	require.NoError(t, err)
	assert.True(t, starter.called)
	assert.Equal(t, "127.0.0.1:9300", starter.config.Addr)
	assert.Equal(t, "override", starter.config.APIKey)
}

func TestServeCommand_RequiresKey(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(dir, "data")
	require.NoError(t, config.SaveConfig(cfg, filepath.Join(dir, "config.yaml")))

	starter := &fakeStarter{}
	c := di.NewContainer()
	c.SetServerFactory(fakeFactory{starter: starter})

	_, err := execute(t, c, dir, "serve")
	assert.Error(t, err)
	assert.False(t, starter.called)
	_, statErr := os.Stat(filepath.Join(dir, "data"))
	assert.True(t, os.IsNotExist(statErr))
}

// handlerStarter drives the real router in memory instead of listening
type handlerStarter struct {
	inner   *api.DefaultServerStarter
	metrics string
}

func (h *handlerStarter) StartServer(ctx context.Context, store api.IValueStore, types *catalog.Catalog, config api.ServerConfig, logger zerolog.Logger) error {
	router := h.inner.Handler(store, types, config, logger)

	req := httptest.NewRequest("PUT", "/api/v1/values/u8", strings.NewReader(`{"value":"7"}`))
	req.Header.Set("X-API-Key", config.APIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		return errors.Newf("put returned %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	h.metrics = w.Body.String()
	return nil
}

type handlerFactory struct{ starter *handlerStarter }

func (f handlerFactory) CreateServerStarter() api.ServerStarter { return f.starter }

func TestServeCommand_ExportsStoreMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := di.NewContainer()
	c.SetRegistry(reg)

	inner, ok := c.GetServerFactory().CreateServerStarter().(*api.DefaultServerStarter)
	require.True(t, ok)
	starter := &handlerStarter{inner: inner}
	c.SetServerFactory(handlerFactory{starter: starter})

	_, err := execute(t, c, t.TempDir(), "serve")
	require.NoError(t, err)
	assert.Contains(t, starter.metrics, `transmit_store_operations_total{operation="put",status="success"} 1`)
	assert.Contains(t, starter.metrics, "transmit_store_bytes_written_total 1")
}
