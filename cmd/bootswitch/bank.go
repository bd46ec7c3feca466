package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcinbor85/gohex"

	"github.com/wallera-computer/bootswitch/flash"
)

// loadBank returns a simulated flash holding the bank file's content, or a
// freshly erased bank when path is empty.
func loadBank(path string, cfg bankConfig) (*flash.Sim, error) {
	if path == "" {
		return flash.NewSim(int(cfg.BankSize)), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if int64(len(b)) != cfg.BankSize {
		return nil, fmt.Errorf("bank file is %d bytes, layout says %d", len(b), cfg.BankSize)
	}

	return flash.Load(b), nil
}

// saveBank writes the bank back out, as Intel HEX when the file name says
// so and raw bytes otherwise.
func saveBank(path string, sim *flash.Sim, cfg bankConfig) error {
	if !strings.HasSuffix(path, ".hex") {
		return os.WriteFile(path, sim.Bytes(), 0o644)
	}

	mem := gohex.NewMemory()
	mem.AddBinary(cfg.BankBase, sim.Bytes())

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return mem.DumpIntelHex(f, 16)
}
