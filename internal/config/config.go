package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the provisioning-owned lamp configuration, persisted as
// JSON. The key names are fixed by the provisioning UI; do not rename.
type Settings struct {
	HTTPURL   string `json:"http_url"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Interval  int    `json:"interval"` // minutes between fetches
	Slots     int    `json:"slots"`
	ColorMap  string `json:"color_map"`
	Extra     string `json:"extra"`
}

// DefaultSettings mirrors the compiled-in defaults used when no valid
// settings file exists yet.
func DefaultSettings() Settings {
	return Settings{
		HTTPURL:   "http://localhost:8000/weatherlamp.bin",
		Latitude:  "60.172",
		Longitude: "24.945",
		Interval:  10,
		Slots:     16,
		ColorMap:  "yr",
	}
}

// LoadSettings reads the JSON settings file. Callers fall back to
// DefaultSettings on error; a broken file must never stop the lamp.
func LoadSettings(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}
	s.clamp()
	return s, nil
}

// SaveSettings writes the settings back; called when the provisioning
// UI reports a save request.
func SaveSettings(path string, s Settings) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (s *Settings) clamp() {
	if s.Slots < 1 {
		s.Slots = 1
	}
	if s.Slots > 255 {
		s.Slots = 255
	}
	if s.Interval < 1 {
		s.Interval = 1
	}
}

// Hardware is the runtime/hardware configuration, a YAML file next to
// the binary like the rest of our devices use.
type Hardware struct {
	Driver     string `yaml:"driver"` // "spi" | "sim"
	SPIPort    string `yaml:"spi_port"`
	ButtonPin  string `yaml:"button_pin"`
	Brightness uint8  `yaml:"brightness"`
	FPS        int    `yaml:"fps"`

	Motion   uint8 `yaml:"motion"` // palette phase advance per frame
	Cooling  uint8 `yaml:"cooling"`
	Sparking uint8 `yaml:"sparking"`
	Reverse  bool  `yaml:"reverse"`

	Format         string `yaml:"format"`           // "palette" | "slots"
	FetchTimeoutMS int    `yaml:"fetch_timeout_ms"` // HTTP client timeout
	Addr           string `yaml:"addr"`             // websocket/control listen address
}

func DefaultHardware() *Hardware {
	return &Hardware{
		Driver:         "sim",
		Brightness:     150,
		FPS:            50,
		Format:         "palette",
		FetchTimeoutMS: 5000,
		Addr:           ":8080",
	}
}

func LoadHardware(path string) (*Hardware, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultHardware()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.FPS <= 0 {
		c.FPS = 50
	}
	return c, nil
}

func SaveHardware(path string, c *Hardware) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
