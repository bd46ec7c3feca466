package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wallera-computer/bootswitch/flash"
	"github.com/wallera-computer/bootswitch/header"
)

func packMain(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] IMAGE\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	cfgPath := fs.String("config", "", "bank layout TOML file")
	bankPath := fs.String("bank", "", "existing bank file to add to, fresh erased bank if empty")
	slot := fs.Int("slot", 0, "slot index to place the image in")
	version := fs.Uint("version", 0, "image version, 0-255")
	out := fs.String("o", "bank.bin", "output bank file, .bin or .hex")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := loadBankConfig(*cfgPath)
	if err != nil {
		return err
	}

	if *slot < 0 || *slot >= len(cfg.Slots) {
		return fmt.Errorf("slot %d out of range, layout has %d slots", *slot, len(cfg.Slots))
	}

	if *version > 0xff {
		return fmt.Errorf("version %d does not fit 8 bits", *version)
	}

	body, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	sim, err := loadBank(*bankPath, cfg)
	if err != nil {
		return err
	}

	hdrAddr := cfg.Slots[*slot]
	start := hdrAddr - int64(len(body))
	if start < 0 {
		return fmt.Errorf("image of %d bytes does not fit below slot header at %#x", len(body), hdrAddr)
	}

	if err := erased(sim, start, int64(len(body))+header.Size); err != nil {
		return fmt.Errorf("slot %d: %w", *slot, err)
	}

	hdr, err := header.New(uint8(*version), uint32(len(body)), cfg.crc().Checksum(body))
	if err != nil {
		return err
	}

	if err := sim.ClearBits(start, body); err != nil {
		return err
	}
	raw := hdr.Marshal()
	if err := sim.ClearBits(hdrAddr, raw[:]); err != nil {
		return err
	}

	if err := saveBank(*out, sim, cfg); err != nil {
		return err
	}

	fmt.Printf("slot %d: image %d bytes, version %d, checksum %#06x, entry %#x\n",
		*slot, len(body), hdr.Version, hdr.Checksum, start)

	return nil
}

// erased verifies that the target range still holds the erased pattern.
// Programming works by clearing bits, so packing over leftovers would
// silently corrupt the image.
func erased(sim *flash.Sim, off, n int64) error {
	buf := make([]byte, n)
	if _, err := sim.ReadAt(buf, off); err != nil {
		return err
	}
	for i, b := range buf {
		if b != 0xff {
			return fmt.Errorf("flash not erased at %#x", off+int64(i))
		}
	}
	return nil
}
