package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wallera-computer/bootswitch/log"
	"github.com/wallera-computer/bootswitch/switcher"
)

func chooseMain(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] BANK\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	cfgPath := fs.String("config", "", "bank layout TOML file")
	writeBack := fs.String("w", "", "write the annotated bank back to this file")
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

	l := log.Development().Sugar()

	sw := switcher.New(
		switcher.WithVerifier(cfg.crc()),
		switcher.WithLogger(l),
	)

	candidates := make([]*switcher.Image, 0, len(cfg.Slots))
	slotOf := map[*switcher.Image]int{}

	for i, addr := range cfg.Slots {
		img, err := switcher.Open(sim, addr)
		if err != nil {
			l.Errorw("cannot open slot", "slot", i, "addr", addr, "error", err)
			continue
		}
		candidates = append(candidates, img)
		slotOf[img] = i
	}

	chosen := sw.Select(candidates...)

	// Selection may have latched verdicts into the simulated bank;
	// persist them if asked, chosen or not.
	if *writeBack != "" {
		if err := saveBank(*writeBack, sim, cfg); err != nil {
			return err
		}
	}

	if chosen == nil {
		return fmt.Errorf("no bootable image in bank")
	}

	h := chosen.Header()
	fmt.Printf("would boot slot %d: version %d, entry %#x, attempts left %d\n",
		slotOf[chosen], h.Version, chosen.Start(), h.AttemptsLeft())

	return nil
}
