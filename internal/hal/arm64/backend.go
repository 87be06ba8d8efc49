//go:build arm64

// Package arm64 satisfies the hal.Backend contract for the 64-bit ARM
// board target: firmware-to-kernel handoff (entry_arm64.s/vectors_arm64.s),
// a PL011 UART doubling as both Serial and Display, a GICv2 interrupt
// controller, and MIDR_EL1/DTB-based hardware detection.
package arm64

import "noxiom/internal/hal"

// CPUInit unmasks IRQs at the CPU; VBAR_EL1 is already installed by
// kernelEntry before any Go code runs; this is the arm64 counterpart of
// the x86_64 back-end's GDT/IDT install, minus the part entry_arm64.s
// already did.
type CPUInit struct{}

var _ hal.CPU = CPUInit{}

func (CPUInit) Init() {
	enableIRQs()
}

// NewBackend wires the arm64 HAL implementations into a hal.Backend.
// cmd/noxiom selects this at build time via the arm64 build tag.
//
// Detect must run before Intc is used: it populates sharedGIC.DistBase/
// CPUBase (and sharedUART.Base) from the DTB captured at entry. Serial
// does not wait for it: PL011.Init looks the UART up in the DTB itself
// while Base is still zero. A DTB that fails to parse leaves those bases
// at zero, and every zero-based output or controller call is a no-op.
func NewBackend() hal.Backend {
	return hal.Backend{
		Serial:  &sharedUART,
		Display: &UARTDisplay{uart: &sharedUART},
		Input:   &sharedUART,
		Intc:    &sharedGIC,
		CPU:     CPUInit{},
		Detect:  detectAndWire,
		Halt:    Halt,
	}
}

// detectAndWire runs Detect and then threads the DTB-discovered MMIO
// bases into the package-level back-ends, mirroring how x86_64's
// PIC/keyboard are pre-wired to fixed ports instead of discovered ones.
func detectAndWire(d *hal.Descriptor) {
	Detect(d)
	sharedUART.Base = dtbResult.UARTBase
	sharedGIC.DistBase = dtbResult.GICDistBase
	sharedGIC.CPUBase = dtbResult.GICCPUBase
}

// Halt disables IRQs and spins on WFI forever; it never returns.
func Halt() {
	disableIRQs()
	for {
		wfi()
	}
}
