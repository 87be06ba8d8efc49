// Package kernel holds the arch-neutral control flow: the fixed boot
// sequence, the process-wide hardware descriptor, and the banner. Nothing
// here imports fmt, errors, or any package that allocates through the Go
// runtime — this code runs before there is one to allocate through.
package kernel

import (
	"noxiom/internal/hal"
	"noxiom/internal/shell"
)

// descriptor is the process-wide hardware descriptor: written once by
// Run (via Backend.Detect and hal.Score), read-only thereafter. No lock
// is needed: every write happens before interrupts are enabled, so
// there is no concurrent reader.
var descriptor hal.Descriptor

// Descriptor returns the last-detected hardware descriptor. Valid only
// after Run has reached the point of calling Detect; used by tests (the
// banner reads the descriptor directly).
func Descriptor() hal.Descriptor { return descriptor }

const bannerVersion = "Noxiom 0.1.0"

// Run executes the fixed boot sequence: init serial, detect hardware,
// score tier, init CPU tables, init the interrupt controller, init
// display, init input, print the banner, run the shell. If the shell
// ever returns, Halt is called and Run does not return either.
func Run(b hal.Backend) {
	b.Serial.Init()
	b.Serial.Print("Noxiom booting...\r\n")

	b.Detect(&descriptor)
	descriptor.Tier = hal.Score(descriptor)

	b.CPU.Init()
	b.Intc.Init()
	b.Display.Init()
	b.Input.Init()

	printBanner(b.Display, descriptor)

	shell.Run(b.Display, b.Input, shellEnv{b: b})

	b.Halt()
}

// shellEnv adapts a hal.Backend into the small environment the shell
// needs for its "halt" command and its "version" text, without handing
// the shell the whole Backend (it only ever touches Display/Input
// directly, per the HAL contract).
type shellEnv struct{ b hal.Backend }

func (e shellEnv) Halt()          { e.b.Halt() }
func (e shellEnv) Clear()         { e.b.Display.Clear() }
func (e shellEnv) Version() string { return bannerVersion }

func printBanner(d hal.Display, desc hal.Descriptor) {
	d.Print("CPU: ")
	printBytes(d, desc.Model())
	d.Print("  Tier: ")
	d.Print(desc.Tier.String())
	d.Print("\r\n")
	d.Print(bannerVersion)
	d.Print("\r\n")
}

// printBytes writes b one byte at a time, the same discipline the UART
// back-ends use for their own output, so callers never need to turn a
// descriptor's fixed-array fields into a string first.
func printBytes(d hal.Display, b []byte) {
	for _, c := range b {
		d.Putchar(c)
	}
}
