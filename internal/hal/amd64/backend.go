//go:build amd64

// Package amd64 satisfies the hal.Backend contract for the legacy PC
// platform: real-mode-to-long-mode boot handoff (boot/x86_64), VGA text
// mode, 16550 serial, PS/2 keyboard, the 8259 PIC, and CPUID/CMOS-based
// hardware detection.
package amd64

import "noxiom/internal/hal"

// CPUTables installs the GDT and IDT, then brings interrupts up as the
// last step of doing so.
type CPUTables struct{}

var _ hal.CPU = CPUTables{}

func (CPUTables) Init() {
	gdtInit()
	idtInit()
	enableInterrupts()
}

// NewBackend wires the x86_64 HAL implementations into a hal.Backend.
// cmd/noxiom selects this at build time via the amd64 build tag.
func NewBackend() hal.Backend {
	return hal.Backend{
		Serial:  Serial16550{},
		Display: &VGA{},
		Input:   &sharedKeyboard,
		Intc:    sharedPIC,
		CPU:     CPUTables{},
		Detect:  Detect,
		Halt:    Halt,
	}
}

// Halt masks interrupts and spins on HLT forever; it never returns.
func Halt() {
	disableInterrupts()
	for {
		hlt()
	}
}
