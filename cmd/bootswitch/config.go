package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/wallera-computer/bootswitch/crc24"
	"github.com/wallera-computer/bootswitch/header"
)

// bankConfig describes the flash layout and CRC parameters of a deployment.
// The defaults match the firmware's built-in map: an 8 MB bank split into
// two slots, each keeping its header in its last eight bytes.
type bankConfig struct {
	BankSize int64   `toml:"bank_size"`
	BankBase uint32  `toml:"bank_base"`
	Slots    []int64 `toml:"slots"`
	CRCPoly  uint32  `toml:"crc_poly"`
}

func defaultBankConfig() bankConfig {
	return bankConfig{
		BankSize: 0x800000,
		BankBase: 0x60000000,
		Slots:    []int64{0x400000 - header.Size, 0x800000 - header.Size},
		CRCPoly:  crc24.Default.Poly,
	}
}

// loadBankConfig reads a TOML layout file, keeping defaults for anything
// the file does not mention. An empty path returns the defaults untouched.
func loadBankConfig(path string) (bankConfig, error) {
	cfg := defaultBankConfig()

	if path == "" {
		return cfg, nil
	}

	var raw bankConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return bankConfig{}, fmt.Errorf("load bank config: %w", err)
	}

	if meta.IsDefined("bank_size") {
		cfg.BankSize = raw.BankSize
	}

	if meta.IsDefined("bank_base") {
		cfg.BankBase = raw.BankBase
	}

	if meta.IsDefined("slots") {
		cfg.Slots = raw.Slots
	}

	if meta.IsDefined("crc_poly") {
		cfg.CRCPoly = raw.CRCPoly
	}

	if err := cfg.validate(); err != nil {
		return bankConfig{}, err
	}

	return cfg, nil
}

func (c bankConfig) validate() error {
	if c.BankSize <= 0 {
		return fmt.Errorf("bank_size must be positive, got %d", c.BankSize)
	}

	if len(c.Slots) == 0 {
		return fmt.Errorf("at least one slot is required")
	}

	for i, slot := range c.Slots {
		if slot < 0 || slot+header.Size > c.BankSize {
			return fmt.Errorf("slot %d header at %#x does not fit a %#x byte bank", i, slot, c.BankSize)
		}
	}

	if c.CRCPoly == 0 || c.CRCPoly > 0xffffff {
		return fmt.Errorf("crc_poly %#x is not a 24-bit polynomial", c.CRCPoly)
	}

	return nil
}

func (c bankConfig) crc() crc24.Params {
	return crc24.Params{Poly: c.CRCPoly}
}
