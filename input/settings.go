// Copyright (c) 2026, Scenic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/scenic-ui/scenic/scene"
)

// Settings holds the tunable input behavior options, loadable from a TOML
// file for deployment-specific overrides.
type Settings struct {
	// BatchEvents batches raw platform events for flushing at a
	// controlled time instead of dispatching on arrival.
	BatchEvents bool `toml:"batch-events"`

	// ClickSuppressionMillis is the window after a pointer up during
	// which an assistive-technology click is dropped as a duplicate.
	ClickSuppressionMillis int `toml:"click-suppression-millis"`

	// Debug enables development-time invariant panics across scenic.
	Debug bool `toml:"debug"`
}

// DefaultSettings returns the stock settings: batching on, an 80ms click
// suppression window, debug checks off.
func DefaultSettings() *Settings {
	return &Settings{
		BatchEvents:            true,
		ClickSuppressionMillis: 80,
	}
}

// OpenSettings reads settings from the TOML file at the given path,
// starting from [DefaultSettings] so absent keys keep their defaults.
func OpenSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("input: reading settings: %w", err)
	}
	if err := toml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("input: parsing settings %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes settings as TOML to the given path.
func SaveSettings(path string, s *Settings) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("input: encoding settings: %w", err)
	}
	if err := os.WriteFile(path, b, 0666); err != nil {
		return fmt.Errorf("input: writing settings: %w", err)
	}
	return nil
}

// ApplySettings applies the given settings to this dispatcher and to the
// scenic-wide debug flag.
func (d *Dispatcher) ApplySettings(s *Settings) {
	if s == nil {
		return
	}
	d.BatchEnabled = s.BatchEvents
	d.clickSuppression = time.Duration(s.ClickSuppressionMillis) * time.Millisecond
	scene.Debug = s.Debug
}
