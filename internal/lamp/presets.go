package lamp

import "github.com/coreman2200/weatherlamp/internal/render"

// The seven built-in preset palettes, selectable by index over the
// control channel. Stop values mirror the classic FastLED presets so a
// lamp without network data looks the same as the original hardware.

func rgb(v uint32) render.Color {
	return render.Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

func pal(vals [16]uint32) render.Palette {
	var p render.Palette
	for i, v := range vals {
		p[i] = rgb(v)
	}
	return p
}

var (
	PaletteRainbow = pal([16]uint32{
		0xFF0000, 0xD52A00, 0xAB5500, 0xAB7F00,
		0xABAB00, 0x56D500, 0x00FF00, 0x00D52A,
		0x00AB55, 0x0056AA, 0x0000FF, 0x2A00D5,
		0x5500AB, 0x7F0081, 0xAB0055, 0xD5002B,
	})

	PaletteRainbowStripe = pal([16]uint32{
		0xFF0000, 0x000000, 0xAB5500, 0x000000,
		0xABAB00, 0x000000, 0x00FF00, 0x000000,
		0x00AB55, 0x000000, 0x0000FF, 0x000000,
		0x5500AB, 0x000000, 0xAB0055, 0x000000,
	})

	PaletteOcean = pal([16]uint32{
		0x191970, 0x00008B, 0x191970, 0x000080,
		0x00008B, 0x0000CD, 0x2E8B57, 0x008080,
		0x5F9EA0, 0x0000FF, 0x008B8B, 0x6495ED,
		0x7FFFD4, 0x2E8B57, 0x00FFFF, 0x87CEFA,
	})

	PaletteCloud = pal([16]uint32{
		0x0000FF, 0x00008B, 0x00008B, 0x00008B,
		0x00008B, 0x00008B, 0x00008B, 0x00008B,
		0x0000FF, 0x00008B, 0x87CEEB, 0x87CEEB,
		0xADD8E6, 0xFFFFFF, 0xADD8E6, 0x87CEEB,
	})

	PaletteLava = pal([16]uint32{
		0x000000, 0x800000, 0x000000, 0x800000,
		0x8B0000, 0x800000, 0x8B0000, 0x8B0000,
		0x8B0000, 0x8B0000, 0xFF0000, 0xFFA500,
		0xFFFFFF, 0xFFA500, 0xFF0000, 0x8B0000,
	})

	PaletteForest = pal([16]uint32{
		0x006400, 0x006400, 0x556B2F, 0x006400,
		0x008000, 0x228B22, 0x6B8E23, 0x008000,
		0x2E8B57, 0x66CDAA, 0x32CD32, 0x9ACD32,
		0x90EE90, 0x7CFC00, 0x66CDAA, 0x228B22,
	})

	PaletteParty = pal([16]uint32{
		0x5500AB, 0x84007C, 0xB5004B, 0xE5001B,
		0xE81700, 0xB84700, 0xAB7700, 0xABAB00,
		0xAB5500, 0xDD2200, 0xF2000E, 0xC2003E,
		0x8F0071, 0x5F00A1, 0x2F00D0, 0x0007F9,
	})
)

// Presets lists the built-in palettes in selector order 0..6.
var Presets = []render.Palette{
	PaletteRainbow,
	PaletteRainbowStripe,
	PaletteOcean,
	PaletteCloud,
	PaletteLava,
	PaletteForest,
	PaletteParty,
}
