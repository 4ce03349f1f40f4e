package lamp

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/weatherlamp/internal/button"
	"github.com/coreman2200/weatherlamp/internal/render"
	"github.com/coreman2200/weatherlamp/internal/weather"
)

func newTestController() *Controller {
	return NewController(Options{Slots: 16, Brightness: 255}, zerolog.Nop())
}

func renderOnce(c *Controller) []render.Color {
	buf := make([]render.Color, 16)
	c.Generator().Render(buf)
	return buf
}

func TestInitialModeFallsBackToPalette(t *testing.T) {
	c := newTestController()
	assert.Equal(t, ModeWeather, c.Mode())
	// No fetch yet: weather mode renders the palette engine.
	assert.Equal(t, "palette", c.Generator().Name())
}

func TestPaletteSelectValid(t *testing.T) {
	c := newTestController()
	c.Apply(Command{Kind: CmdPaletteSelect, Index: 3})
	assert.Equal(t, ModePalette, c.Mode())
	// Index 3 selects the 4th preset (cloud): first stop is pure blue.
	buf := renderOnce(c)
	assert.Equal(t, render.Color{B: 255}, buf[0])
}

func TestPaletteSelectInvalidIgnored(t *testing.T) {
	c := newTestController()
	before := renderOnce(c)
	c.Apply(Command{Kind: CmdPaletteSelect, Index: 7})
	assert.Equal(t, ModeWeather, c.Mode(), "invalid selector must not transition")
	assert.Equal(t, before, renderOnce(c), "invalid selector must not touch the palette")
}

func TestSolidColorCommand(t *testing.T) {
	c := newTestController()
	c.Apply(Command{Kind: CmdSolidColor, Color: render.Color{R: 10, G: 20, B: 30}})
	assert.Equal(t, ModeSolid, c.Mode())
	buf := renderOnce(c)
	for _, got := range buf {
		assert.Equal(t, render.Color{R: 10, G: 20, B: 30}, got)
	}
}

func TestEffectSelect(t *testing.T) {
	c := newTestController()
	c.Apply(Command{Kind: CmdEffectSelect, Index: 1})
	assert.Equal(t, ModeEffect, c.Mode())
	assert.Equal(t, "fire", c.Generator().Name())

	c.Apply(Command{Kind: CmdEffectSelect, Index: 0})
	assert.Equal(t, "fire", c.Generator().Name(), "cylon resolves to the fire simulation")

	c.Apply(Command{Kind: CmdEffectSelect, Index: 2})
	assert.Equal(t, ModeEffect, c.Mode(), "invalid effect selector ignored")
}

func TestWeatherStopsRefreshPaletteInPlace(t *testing.T) {
	c := newTestController()
	var stops render.Palette
	for i := range stops {
		stops[i] = render.Color{G: 200}
	}
	c.ApplyUpdate(weather.Update{Stops: &stops})
	assert.Equal(t, ModeWeather, c.Mode(), "stop refresh must not transition")
	buf := renderOnce(c)
	assert.Equal(t, render.Color{G: 200}, buf[0])
}

func TestWeatherSlotsEnableDirectRendering(t *testing.T) {
	c := newTestController()
	slots := make([]render.Color, 16)
	for i := range slots {
		slots[i] = render.Color{R: uint8(i)}
	}
	c.ApplyUpdate(weather.Update{Slots: slots})
	assert.Equal(t, "weather", c.Generator().Name())
	buf := renderOnce(c)
	for i, got := range buf {
		assert.Equal(t, render.Color{R: uint8(i)}, got, "slot %d", i)
	}
}

func TestShortPressCyclesModes(t *testing.T) {
	c := newTestController()
	want := []Mode{ModePalette, ModeSolid, ModeEffect, ModeWeather, ModePalette}
	for i, m := range want {
		c.OnButton(button.PressShort)
		assert.Equal(t, m, c.Mode(), "press %d", i+1)
	}
	assert.Equal(t, 5, c.Presses())
}

func TestLongPressResetsCounterAndMode(t *testing.T) {
	c := newTestController()
	c.OnButton(button.PressShort)
	c.OnButton(button.PressShort)
	require.Equal(t, 2, c.Presses())

	c.OnButton(button.PressLong)
	assert.Equal(t, 0, c.Presses())
	assert.Equal(t, ModeWeather, c.Mode())
}

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand([]byte{'P', 0, '3'})
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CmdPaletteSelect, Index: 3}, cmd)

	cmd, err = ParseCommand([]byte{'C', 0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, CmdSolidColor, cmd.Kind)
	assert.Equal(t, render.Color{R: 1, G: 2, B: 3}, cmd.Color)

	cmd, err = ParseCommand([]byte{'E', 0, 1})
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: CmdEffectSelect, Index: 1}, cmd)

	_, err = ParseCommand([]byte{'C', 0, 1})
	assert.ErrorIs(t, err, ErrInvalidCommand)
	_, err = ParseCommand([]byte{'X', 0, 0})
	assert.ErrorIs(t, err, ErrInvalidCommand)
	_, err = ParseCommand(nil)
	assert.ErrorIs(t, err, ErrInvalidCommand)
}
