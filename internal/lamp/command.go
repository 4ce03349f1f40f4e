package lamp

import (
	"errors"
	"fmt"

	"github.com/coreman2200/weatherlamp/internal/render"
)

// ErrInvalidCommand reports a malformed or unknown control payload. The
// controller ignores such commands and keeps its current state.
var ErrInvalidCommand = errors.New("invalid command")

// CommandKind tags the decoded control message.
type CommandKind int

const (
	CmdPaletteSelect CommandKind = iota
	CmdSolidColor
	CmdEffectSelect
)

// Command is a control message decoded once at the channel boundary.
// Raw payload bytes never travel further than ParseCommand.
type Command struct {
	Kind  CommandKind
	Index uint8        // palette or effect selector
	Color render.Color // solid color payload
}

// Control payload layout: byte 0 is the command kind, byte 2 the
// selector, bytes 2..4 the RGB triple for solid-color commands. Byte 1
// is reserved. Selector bytes accept both raw values and ASCII digits.
const (
	kindPalette = 'P'
	kindSolid   = 'C'
	kindEffect  = 'E'
)

func selector(b byte) uint8 {
	if b >= '0' && b <= '9' {
		return b - '0'
	}
	return b
}

// ParseCommand decodes a raw control payload into a tagged Command.
func ParseCommand(payload []byte) (Command, error) {
	if len(payload) < 3 {
		return Command{}, fmt.Errorf("%w: %d bytes", ErrInvalidCommand, len(payload))
	}
	switch payload[0] {
	case kindPalette:
		return Command{Kind: CmdPaletteSelect, Index: selector(payload[2])}, nil
	case kindSolid:
		if len(payload) < 5 {
			return Command{}, fmt.Errorf("%w: solid color needs 5 bytes, got %d", ErrInvalidCommand, len(payload))
		}
		return Command{
			Kind:  CmdSolidColor,
			Color: render.Color{R: payload[2], G: payload[3], B: payload[4]},
		}, nil
	case kindEffect:
		return Command{Kind: CmdEffectSelect, Index: selector(payload[2])}, nil
	}
	return Command{}, fmt.Errorf("%w: unknown kind 0x%02x", ErrInvalidCommand, payload[0])
}
