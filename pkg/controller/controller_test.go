package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seann-Moser/pca9685/pkg/config"
	"github.com/Seann-Moser/pca9685/pkg/pca9685"
)

type memBus struct {
	mu     sync.Mutex
	regs   [256]byte
	writes int
	closed bool
}

func (b *memBus) ReadReg(addr uint16, reg byte) (byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs[reg], nil
}

func (b *memBus) WriteReg(addr uint16, reg, value byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs[reg] = value
	b.writes++
	return nil
}

func (b *memBus) Close() error {
	b.closed = true
	return nil
}

type fakeOE struct {
	enabled bool
	closed  bool
}

func (o *fakeOE) Enable() error  { o.enabled = true; return nil }
func (o *fakeOE) Disable() error { o.enabled = false; return nil }
func (o *fakeOE) Close() error   { o.enabled = false; o.closed = true; return nil }

func newController(t *testing.T) (*Controller, *memBus, *fakeOE) {
	t.Helper()
	bus := &memBus{}
	dev, err := pca9685.Open(bus, pca9685.WithSleep(func(time.Duration) {}))
	require.NoError(t, err)
	oe := &fakeOE{}
	return New(dev, oe), bus, oe
}

func TestStartApplyClose(t *testing.T) {
	c, bus, oe := newController(t)

	require.NoError(t, c.Start(50))
	assert.True(t, oe.enabled)
	assert.Equal(t, byte(121), bus.regs[pca9685.Prescale])
	assert.Equal(t, byte(pca9685.BitOutDrv), bus.regs[pca9685.Mode2])

	require.NoError(t, c.Apply([]config.ChannelSetting{{Channel: 1, On: 0, Off: 300}}))
	assert.Equal(t, byte(0x2C), bus.regs[0x0C])
	assert.Equal(t, byte(0x01), bus.regs[0x0D])

	require.NoError(t, c.Close())
	assert.True(t, oe.closed)
	assert.True(t, bus.closed)
	assert.Equal(t, byte(0), bus.regs[pca9685.AllLedOffL])

	assert.ErrorIs(t, c.Off(), pca9685.ErrClosed)
}

func TestHandler(t *testing.T) {
	c, bus, _ := newController(t)
	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	post := func(path, body string) int {
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, post("/api/setup", ""))
	assert.Equal(t, http.StatusOK, post("/api/frequency", `{"hz":1000}`))
	assert.Equal(t, byte(5), bus.regs[pca9685.Prescale])

	assert.Equal(t, http.StatusOK, post("/api/channel", `{"channel":2,"on":4095,"off":0}`))
	assert.Equal(t, byte(0x0F), bus.regs[0x0F])

	assert.Equal(t, http.StatusOK, post("/api/all", `{"on":0,"off":4095}`))
	assert.Equal(t, byte(0x0F), bus.regs[pca9685.AllLedOffH])

	writes := bus.writes
	assert.Equal(t, http.StatusBadRequest, post("/api/channel", `{"channel":16}`))
	assert.Equal(t, http.StatusBadRequest, post("/api/frequency", `{"hz":0}`))
	assert.Equal(t, http.StatusBadRequest, post("/api/all", `not json`))
	assert.Equal(t, writes, bus.writes)

	resp, err := http.Get(srv.URL + "/api/get")
	require.NoError(t, err)
	defer resp.Body.Close()
	var st Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, Status{Address: 0x40, Frequency: 1000, Mode1: 0x81}, st)

	resp2, err := http.Get(srv.URL + "/api/off")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp2.StatusCode)
}

func TestHandler_ClosedDevice(t *testing.T) {
	c, _, _ := newController(t)
	require.NoError(t, c.Close())

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/off", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
