// Package app wires the lamp together and runs the control loop.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/weatherlamp/internal/button"
	diag "github.com/coreman2200/weatherlamp/internal/diagnostics"
	"github.com/coreman2200/weatherlamp/internal/lamp"
	"github.com/coreman2200/weatherlamp/internal/led"
	"github.com/coreman2200/weatherlamp/internal/render"
	"github.com/coreman2200/weatherlamp/internal/weather"
	"github.com/coreman2200/weatherlamp/internal/ws"
)

// Core runs the single-threaded control loop: poll the button, maybe
// fetch, render the active generator into the frame buffer, flush to
// hardware and preview clients. All lamp state is touched only here.
type Core struct {
	Ctrl   *lamp.Controller
	Sched  *weather.Scheduler
	Client *weather.Client
	Format weather.Format

	Deb  *button.Debouncer // nil without a physical button
	Drv  led.Driver
	Sock *ws.State // nil in headless tests

	FPS int

	buf []render.Color
	log zerolog.Logger
}

func New(ctrl *lamp.Controller, sched *weather.Scheduler, client *weather.Client, drv led.Driver, slots, fps int, log zerolog.Logger) *Core {
	if fps <= 0 {
		fps = 50
	}
	return &Core{
		Ctrl:   ctrl,
		Sched:  sched,
		Client: client,
		Drv:    drv,
		FPS:    fps,
		buf:    make([]render.Color, slots),
		log:    log,
	}
}

// RunTick advances the lamp by one frame at now. Every failure inside a
// tick is non-fatal; the loop keeps producing frames from the last
// valid state.
func (c *Core) RunTick(now time.Time) {
	if c.Deb != nil {
		if p := c.Deb.Poll(now); p != button.PressNone {
			c.Ctrl.OnButton(p)
		}
	}

	if c.Sock != nil {
		for {
			select {
			case cmd := <-c.Sock.Commands:
				c.Ctrl.Apply(cmd)
				continue
			default:
			}
			break
		}
	}

	if c.Sched != nil && c.Client != nil && c.Sched.Tick(now) {
		c.fetch()
	}

	c.Ctrl.Generator().Render(c.buf)

	if err := c.Drv.Write(c.buf); err != nil {
		c.log.Warn().Err(err).Msg("driver write failed")
		if c.Sock != nil {
			c.Sock.PushDiag(diag.DriverWriteFailed(err))
		}
	}
	if c.Sock != nil {
		c.Sock.BroadcastFrame(c.buf)
	}
}

// fetch performs one synchronous forecast refresh. It blocks the loop
// for at most the HTTP client timeout, matching the original device's
// behavior of stalling rendering during a fetch.
func (c *Core) fetch() {
	raw, err := c.Client.Fetch(context.Background())
	if err != nil {
		c.log.Warn().Err(err).Msg("forecast fetch failed, keeping last state")
		if c.Sock != nil {
			c.Sock.PushDiag(diag.FetchFailed(err))
		}
		return
	}
	u, err := weather.Decode(raw, c.Client.Slots, c.Format)
	if err != nil {
		if errors.Is(err, weather.ErrTruncated) {
			c.log.Warn().Err(err).Msg("forecast payload truncated, discarding update")
		} else {
			c.log.Warn().Err(err).Msg("forecast decode failed")
		}
		if c.Sock != nil {
			c.Sock.PushDiag(diag.DecodeFailed(err, len(raw)))
		}
		return
	}
	c.Ctrl.ApplyUpdate(u)
}

// Run drives RunTick at the configured frame rate until ctx ends.
func (c *Core) Run(ctx context.Context) {
	dt := time.Second / time.Duration(c.FPS)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()
	c.log.Info().Int("fps", c.FPS).Int("slots", len(c.buf)).Msg("render loop starting")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RunTick(time.Now())
		}
	}
}
