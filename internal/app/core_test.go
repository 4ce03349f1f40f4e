package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/weatherlamp/internal/diagnostics"
	"github.com/coreman2200/weatherlamp/internal/lamp"
	"github.com/coreman2200/weatherlamp/internal/led"
	"github.com/coreman2200/weatherlamp/internal/render"
	"github.com/coreman2200/weatherlamp/internal/weather"
	"github.com/coreman2200/weatherlamp/internal/ws"
)

const slots = 8

func newCore(t *testing.T, handler http.HandlerFunc) (*Core, *led.Sim) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := weather.NewClient(srv.URL, time.Second)
	client.Slots = slots

	ctrl := lamp.NewController(lamp.Options{Slots: slots, Brightness: 255}, zerolog.Nop())
	drv := led.NewSim()
	c := New(ctrl, weather.NewScheduler(10*time.Second), client, drv, slots, 50, zerolog.Nop())
	c.Format = weather.FormatSlots4
	return c, drv
}

func slotPayload(c render.Color) []byte {
	raw := make([]byte, slots*4)
	for i := 0; i < slots; i++ {
		raw[i*4] = c.R
		raw[i*4+1] = c.G
		raw[i*4+2] = c.B
	}
	return raw
}

func TestTickFetchesOncePerInterval(t *testing.T) {
	var hits int
	c, _ := newCore(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(slotPayload(render.Color{R: 1}))
	})

	base := time.Unix(1700000000, 0)
	for _, ms := range []int{0, 5000, 10000, 15000} {
		c.RunTick(base.Add(time.Duration(ms) * time.Millisecond))
	}
	assert.Equal(t, 2, hits, "expected fetches at t=0 and t=10s only")
}

func TestTickRendersFetchedSlots(t *testing.T) {
	c, drv := newCore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(slotPayload(render.Color{R: 10, G: 20, B: 30}))
	})

	c.RunTick(time.Unix(1700000000, 0))
	require.Equal(t, 1, drv.Frames())
	for i, got := range drv.Last() {
		assert.Equal(t, render.Color{R: 10, G: 20, B: 30}, got, "slot %d", i)
	}
}

func TestTruncatedPayloadKeepsLastKnownGood(t *testing.T) {
	payload := slotPayload(render.Color{G: 200})
	c, drv := newCore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	})

	base := time.Unix(1700000000, 0)
	c.RunTick(base)
	good := drv.Last()
	require.Equal(t, render.Color{G: 200}, good[0])

	// Next interval serves garbage; the frame must not change.
	payload = payload[:5]
	c.RunTick(base.Add(10 * time.Second))
	assert.Equal(t, good, drv.Last(), "truncated update must be discarded wholesale")
}

type failDriver struct{ writes int }

func (f *failDriver) Write([]render.Color) error { f.writes++; return errors.New("spi gone") }
func (f *failDriver) Close() error               { return nil }

func TestDriverWriteFailureIsReported(t *testing.T) {
	c, _ := newCore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(slotPayload(render.Color{R: 1}))
	})
	fd := &failDriver{}
	c.Drv = fd
	sock := ws.NewState(slots)
	c.Sock = sock

	// The tick must survive the write failure.
	c.RunTick(time.Unix(1700000000, 0))
	assert.Equal(t, 1, fd.writes)

	// The failure lands on /diag; the backlog covers subscribers that
	// connect afterwards.
	srv := httptest.NewServer(http.HandlerFunc(sock.HandleDiagWS))
	defer srv.Close()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got diag.Diagnostic
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, diag.CodeDriverWrite, got.Code)
}

func TestHTTPErrorKeepsRenderingFallback(t *testing.T) {
	c, drv := newCore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c.RunTick(time.Unix(1700000000, 0))
	// Fetch failed: weather mode falls back to palette cycling, and the
	// loop still produced a frame.
	assert.Equal(t, 1, drv.Frames())
	assert.Equal(t, lamp.ModeWeather, c.Ctrl.Mode())
	assert.Equal(t, "palette", c.Ctrl.Generator().Name())
}
