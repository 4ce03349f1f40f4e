package lamp

import (
	"github.com/rs/zerolog"

	"github.com/coreman2200/weatherlamp/internal/button"
	"github.com/coreman2200/weatherlamp/internal/render"
	"github.com/coreman2200/weatherlamp/internal/weather"
)

// Mode selects which generator fills the frame each tick.
type Mode int

const (
	ModeWeather Mode = iota
	ModePalette
	ModeSolid
	ModeEffect
)

func (m Mode) String() string {
	switch m {
	case ModeWeather:
		return "weather"
	case ModePalette:
		return "palette"
	case ModeSolid:
		return "solid"
	default:
		return "effect"
	}
}

// Effect is the sub-variant active in ModeEffect. Both currently resolve
// to the fire simulation; Cylon kept its selector for wire compatibility.
type Effect int

const (
	EffectCylon Effect = iota
	EffectFire
)

// Options tunes the generators owned by the controller.
type Options struct {
	Slots      int
	Brightness uint8
	Motion     uint8 // palette phase advance per frame; 0 freezes
	Cooling    uint8
	Sparking   uint8
	Reverse    bool
	Seed       int64
}

// Controller is the lamp's mode state machine. It owns all mutable lamp
// state (mode, palette, solid color, weather sample, press counter) and
// the generators. Everything runs on the single control-loop goroutine.
type Controller struct {
	mode    Mode
	effect  Effect
	presses int

	haveWeather bool

	paletteEng *render.PaletteEngine
	fire       *render.FireSimulator
	solid      *render.Solid
	direct     *render.Direct

	log zerolog.Logger
}

func NewController(opts Options, log zerolog.Logger) *Controller {
	c := &Controller{
		mode:       ModeWeather,
		paletteEng: render.NewPaletteEngine(PaletteRainbow, opts.Brightness),
		fire:       render.NewFireSimulator(opts.Slots, opts.Brightness, opts.Seed),
		solid:      render.NewSolid(render.Color{}, opts.Brightness),
		direct:     render.NewDirect(opts.Brightness),
		log:        log,
	}
	c.paletteEng.SetMotion(opts.Motion)
	if opts.Cooling > 0 {
		c.fire.SetCooling(opts.Cooling)
	}
	if opts.Sparking > 0 {
		c.fire.SetSparking(opts.Sparking)
	}
	c.fire.SetReverse(opts.Reverse)
	return c
}

func (c *Controller) Mode() Mode { return c.mode }

// Presses returns the monotonic short-press counter. It feeds back into
// fetch request parameters.
func (c *Controller) Presses() int { return c.presses }

// Generator returns the generator for the current mode. Before the
// first successful fetch, weather mode falls back to palette cycling so
// the lamp is never dark.
func (c *Controller) Generator() render.Generator {
	switch c.mode {
	case ModeWeather:
		if !c.haveWeather {
			return c.paletteEng
		}
		return c.direct
	case ModePalette:
		return c.paletteEng
	case ModeSolid:
		return c.solid
	default:
		// Both effect sub-variants resolve to the fire simulation.
		return c.fire
	}
}

// Apply handles one decoded control command. Invalid selectors are
// logged and ignored; the prior mode and state are retained.
func (c *Controller) Apply(cmd Command) {
	switch cmd.Kind {
	case CmdPaletteSelect:
		if int(cmd.Index) >= len(Presets) {
			c.log.Warn().Uint8("index", cmd.Index).Msg("invalid palette selector, ignoring")
			return
		}
		c.paletteEng.SetPalette(Presets[cmd.Index])
		c.mode = ModePalette
		c.log.Info().Uint8("index", cmd.Index).Msg("palette selected")
	case CmdSolidColor:
		c.solid.SetColor(cmd.Color)
		c.mode = ModeSolid
		c.log.Info().
			Uint8("r", cmd.Color.R).Uint8("g", cmd.Color.G).Uint8("b", cmd.Color.B).
			Msg("solid color set")
	case CmdEffectSelect:
		if cmd.Index > 1 {
			c.log.Warn().Uint8("index", cmd.Index).Msg("invalid effect selector, ignoring")
			return
		}
		c.effect = Effect(cmd.Index)
		c.mode = ModeEffect
		c.log.Info().Uint8("index", cmd.Index).Msg("effect selected")
	}
}

// ApplyUpdate folds a decoded fetch result into lamp state. Palette
// stops refresh the gradient in place without a mode transition; slot
// updates feed the direct renderer and mark weather data available.
func (c *Controller) ApplyUpdate(u weather.Update) {
	switch {
	case u.Stops != nil:
		c.paletteEng.SetPalette(*u.Stops)
		c.log.Debug().Msg("palette refreshed from forecast")
	case u.Slots != nil:
		c.direct.SetSample(u.Slots)
		c.haveWeather = true
		c.log.Debug().Int("slots", len(u.Slots)).Msg("weather slots refreshed")
	}
}

// modeCycle is the short-press order.
var modeCycle = []Mode{ModeWeather, ModePalette, ModeSolid, ModeEffect}

// OnButton advances the mode cycle on a short press and returns to
// weather mode (resetting the press counter) on a long press.
func (c *Controller) OnButton(p button.Press) {
	switch p {
	case button.PressShort:
		c.presses++
		for i, m := range modeCycle {
			if m == c.mode {
				c.mode = modeCycle[(i+1)%len(modeCycle)]
				break
			}
		}
		c.log.Info().Stringer("mode", c.mode).Int("presses", c.presses).Msg("short press")
	case button.PressLong:
		c.presses = 0
		c.mode = ModeWeather
		c.log.Info().Msg("long press, counter reset")
	}
}
