//go:build arm64

package arm64

import "noxiom/internal/hal"

// UARTDisplay is the AArch64 Display back-end: there is no framebuffer,
// so the UART doubles as the display. Newline/backspace/tab geometry is
// whatever the attached terminal does with those bytes; Clear emits an
// ANSI clear-and-home sequence, and SetColor is a no-op since there is
// no color plane to set — the loss of color on this back-end is
// intentional, not a bug.
type UARTDisplay struct {
	uart *PL011
}

var _ hal.Display = (*UARTDisplay)(nil)

func (d *UARTDisplay) Init() { d.uart.Init() }

func (d *UARTDisplay) Clear() {
	d.uart.Print("\033[2J\033[H")
}

func (d *UARTDisplay) Putchar(c byte) { d.uart.Putchar(c) }

func (d *UARTDisplay) Print(s string) { d.uart.Print(s) }

func (d *UARTDisplay) SetColor(hal.ColorAttr) {
	// No color plane on a UART; silently ignored.
}
