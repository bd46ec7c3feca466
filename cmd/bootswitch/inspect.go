package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wallera-computer/bootswitch/switcher"
)

func inspectMain(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] BANK\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	cfgPath := fs.String("config", "", "bank layout TOML file")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := loadBankConfig(*cfgPath)
	if err != nil {
		return err
	}

	sim, err := loadBank(fs.Arg(0), cfg)
	if err != nil {
		return err
	}

	for i, addr := range cfg.Slots {
		img, err := switcher.Open(sim, addr)
		if err != nil {
			fmt.Printf("slot %d @ %#x: %v\n", i, addr, err)
			continue
		}

		h := img.Header()
		fmt.Printf("slot %d @ %#x:\n", i, addr)
		fmt.Printf("  version   %d\n", h.Version)
		fmt.Printf("  length    %d\n", h.Length)
		fmt.Printf("  checksum  %#06x\n", h.Checksum)
		fmt.Printf("  entry     %#x\n", img.Start())
		fmt.Printf("  validated %v\n", h.Validated())
		fmt.Printf("  invalid   %v\n", h.Invalid())
		fmt.Printf("  succeeded %v\n", h.Succeeded())
		fmt.Printf("  failed    %v\n", h.Failed())
		fmt.Printf("  attempts  %d\n", h.AttemptsLeft())
	}

	return nil
}
