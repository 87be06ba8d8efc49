//go:build arm64

package arm64

import (
	"testing"

	"noxiom/internal/dtbfixture"
)

func TestParseEmptyBlobFails(t *testing.T) {
	got, ok := Parse(nil)
	if ok {
		t.Fatalf("Parse(nil) ok = true, want false")
	}
	if got != (Result{}) {
		t.Fatalf("Parse(nil) result = %+v, want zero value", got)
	}
}

func TestParseBadMagicFails(t *testing.T) {
	blob := make([]byte, 64)
	got, ok := Parse(blob)
	if ok {
		t.Fatalf("Parse(bad magic) ok = true, want false")
	}
	if got != (Result{}) {
		t.Fatalf("Parse(bad magic) result = %+v, want zero value", got)
	}
}

func TestParseFullTreeOneOfEach(t *testing.T) {
	var b dtbfixture.Builder
	b.Begin("")
	b.PropU32("#address-cells", 1)
	b.PropU32("#size-cells", 1)

	b.Begin("memory@40000000")
	b.PropReg(1, 1, [][2]uint64{{0, 0x40000000}}) // 1 GiB
	b.End()

	b.Begin("cpus")
	b.Begin("cpu@0")
	b.PropCompatible("arm,cortex-a72")
	b.End()
	b.Begin("cpu@1")
	b.PropCompatible("arm,cortex-a72")
	b.End()
	b.End() // cpus

	b.Begin("soc")
	b.Begin("serial@9000000")
	b.PropCompatible("arm,pl011", "arm,primecell")
	b.PropReg(1, 1, [][2]uint64{{0x9000000, 0x1000}})
	b.End()

	b.Begin("intc@8000000")
	b.PropCompatible("arm,gic-400")
	b.PropReg(1, 1, [][2]uint64{
		{0x8000000, 0x10000}, // distributor
		{0x8010000, 0x10000}, // cpu interface
	})
	b.End()
	b.End() // soc
	b.End() // root

	blob := b.MustBytes()
	got, ok := Parse(blob)
	if !ok {
		t.Fatalf("Parse() ok = false, want true")
	}

	want := Result{
		RAMBase:     0,
		RAMSize:     0x40000000,
		CPUCores:    2,
		UARTBase:    0x9000000,
		UARTCompat:  "arm,pl011",
		GICDistBase: 0x8000000,
		GICCPUBase:  0x8010000,
	}
	if got != want {
		t.Fatalf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseMatchesIPBlockStringsOnly(t *testing.T) {
	var b dtbfixture.Builder
	b.Begin("")
	b.PropCompatible("raspberrypi,4-model-b", "brcm,bcm2711")
	b.Begin("soc")
	b.Begin("uart@fe201000")
	// No recognized compatible string here; board model name above must
	// never be treated as an IP-block match.
	b.PropCompatible("brcm,bcm2835-mini-uart")
	b.PropReg(1, 1, [][2]uint64{{0xfe201000, 0x40}})
	b.End()
	b.End()
	b.End()

	blob := b.MustBytes()
	got, ok := Parse(blob)
	if !ok {
		t.Fatalf("Parse() ok = false, want true")
	}
	if got.UARTBase != 0 {
		t.Errorf("UARTBase = 0x%X, want 0 (board-name compatible must not match)", got.UARTBase)
	}
	if got.GICDistBase != 0 {
		t.Errorf("GICDistBase = 0x%X, want 0", got.GICDistBase)
	}
}

func TestParseRecognizedUARTUnderUnrecognizedBoard(t *testing.T) {
	var b dtbfixture.Builder
	b.Begin("")
	b.PropCompatible("raspberrypi,4-model-b", "brcm,bcm2711")
	b.Begin("soc")
	b.Begin("serial@fe201000")
	b.PropCompatible("brcm,bcm2835-aux-uart")
	b.PropReg(1, 1, [][2]uint64{{0xfe201000, 0x40}})
	b.End()
	b.End()
	b.End()

	blob := b.MustBytes()
	got, ok := Parse(blob)
	if !ok {
		t.Fatalf("Parse() ok = false, want true")
	}
	if got.UARTBase != 0xfe201000 {
		t.Errorf("UARTBase = 0x%X, want 0xfe201000", got.UARTBase)
	}
	if got.UARTCompat != "brcm,bcm2835-aux-uart" {
		t.Errorf("UARTCompat = %q, want brcm,bcm2835-aux-uart", got.UARTCompat)
	}
}
