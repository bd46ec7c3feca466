//go:build tamago

package main

import (
	"runtime"

	"github.com/f-secure-foundry/tamago/soc/imx6"

	"github.com/wallera-computer/bootswitch/flash"
	"github.com/wallera-computer/bootswitch/switcher"
)

// Flash map for the image bank. The QSPI window is execute-in-place on the
// i.MX6, so the jump target is simply the image's mapped address. Each slot
// keeps its header in its last eight bytes with the image body growing down
// from it. Adjust per board.
const (
	bankBase = 0x60000000
	bankSize = 0x800000

	slotAHeader = 0x400000 - 8
	slotBHeader = 0x800000 - 8
)

var (
	// Build is a string which contains build user, host and date.
	Build string

	// Revision contains the git revision (last hash and/or tag).
	Revision string
)

func init() {
	l := logger()

	l.Infow("bootswitch started", "GOOS", runtime.GOOS, "GOARCH", runtime.GOARCH, "GOVERSION", runtime.Version(), "revision", Revision, "build", Build)

	if !imx6.Native {
		l.Fatal("running bootswitch on emulated hardware is not supported")
	}

	if err := imx6.SetARMFreq(imx6.FreqLow); err != nil {
		l.Warnf("WARNING: error setting ARM frequency: %v", err)
	}
}

func main() {
	l := logger()

	mem := flash.NewMapped(bankBase, bankSize)

	sw := switcher.New(
		switcher.WithLogger(l),
		switcher.WithJump(jumpTo),
	)

	var candidates []*switcher.Image

	for _, addr := range []int64{slotAHeader, slotBHeader} {
		img, err := switcher.Open(mem, addr)
		if err != nil {
			l.Errorw("cannot open image slot", "addr", addr, "error", err)
			continue
		}

		candidates = append(candidates, img)
	}

	if err := sw.Boot(sw.Select(candidates...)); err != nil {
		l.Errorw("boot failed", "error", err)
	}

	// Nothing bootable. There is no recovery path at this stage, so park
	// the core until someone reflashes the bank.
	halt()
}

// jumpTo adapts the switcher's flash-relative entry offset to an absolute
// address in the execute-in-place window.
func jumpTo(entry int64) {
	jump(uint32(bankBase) + uint32(entry))
}

func halt() {
	for {
		wfi()
	}
}
