package hal

// ColorAttr packs a VGA-convention attribute byte: foreground in the low
// nibble, background in the high nibble. Back-ends without color (the
// AArch64 UART-as-display) silently ignore SetColor.
type ColorAttr uint8

// NewColorAttr packs a foreground/background nibble pair.
func NewColorAttr(fg, bg uint8) ColorAttr {
	return ColorAttr((fg & 0x0F) | (bg&0x0F)<<4)
}

// Foreground returns the low nibble.
func (c ColorAttr) Foreground() uint8 { return uint8(c) & 0x0F }

// Background returns the high nibble.
func (c ColorAttr) Background() uint8 { return uint8(c>>4) & 0x0F }

// Serial is the earliest HAL surface: callable before any other operation,
// so early-boot diagnostics survive a display or input init failure.
type Serial interface {
	Init()
	// Putchar blocks until the byte is accepted by the hardware FIFO.
	Putchar(c byte)
	Print(s string)
}

// Display is the HAL's screen surface. Implementations must honor
// newline/carriage-return/backspace/tab geometry and scroll the last row
// on overflow; SetColor is a no-op where there is no color plane.
type Display interface {
	Init()
	Clear()
	Putchar(c byte)
	Print(s string)
	SetColor(attr ColorAttr)
}

// Input is the HAL's keyboard surface. Getchar blocks until a
// line-oriented character (printable byte, '\n', or backspace) is
// available; shift-level composition is a back-end concern.
type Input interface {
	Init()
	Getchar() byte
}

// IntController is the HAL's interrupt-routing surface. Init brings the
// controller up; the portable kernel then unmasks only what it handles.
// The GICv2 back-end masks every source in Init; the 8259 back-end
// restores the mask that was in place before it remapped the PICs.
// SendEOI must be safe against a double call on the same irq.
type IntController interface {
	Init()
	Unmask(irq uint8)
	Mask(irq uint8)
	SendEOI(irq uint8)
}

// CPU installs descriptor tables / exception vectors so CPU traps route
// to the handler table. Must run before interrupts are enabled.
type CPU interface {
	Init()
}

// Backend is a struct of interfaces populated at build time: the
// portable kernel links against exactly one Backend per image (amd64 or
// arm64), chosen by Go build tags rather than runtime dispatch, since
// the choice is static per image.
type Backend struct {
	Serial Serial
	Display Display
	Input   Input
	Intc    IntController
	CPU     CPU

	// Detect fills d from the underlying hardware. It never fails;
	// unknown fields are left zero for Score to fall back on.
	Detect func(d *Descriptor)

	// Halt masks interrupts and enters an unrecoverable low-power wait.
	// It never returns.
	Halt func()
}
