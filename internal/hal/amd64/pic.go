//go:build amd64

package amd64

import "noxiom/internal/hal"

const (
	pic1Cmd  uint16 = 0x20
	pic1Data uint16 = 0x21
	pic2Cmd  uint16 = 0xA0
	pic2Data uint16 = 0xA1

	icw1Init  uint8 = 0x11 // ICW4 needed, cascade mode, edge triggered
	icw4_8086 uint8 = 0x01

	pic1VectorOffset uint8 = 0x20 // IRQ0 -> vector 32
	pic2VectorOffset uint8 = 0x28 // IRQ8 -> vector 40
)

// PIC8259 drives the legacy master/slave 8259 pair, remapped so hardware
// IRQs occupy vectors 32-47 and never collide with CPU exceptions 0-31.
type PIC8259 struct{}

var sharedPIC PIC8259

var _ hal.IntController = PIC8259{}

func (PIC8259) Init() {
	maskedM := inb(pic1Data)
	maskedS := inb(pic2Data)

	outb(pic1Cmd, icw1Init)
	ioWait()
	outb(pic2Cmd, icw1Init)
	ioWait()

	outb(pic1Data, pic1VectorOffset)
	ioWait()
	outb(pic2Data, pic2VectorOffset)
	ioWait()

	outb(pic1Data, 1<<2) // tell master: slave is cascaded on IRQ2
	ioWait()
	outb(pic2Data, 2) // tell slave its cascade identity
	ioWait()

	outb(pic1Data, icw4_8086)
	ioWait()
	outb(pic2Data, icw4_8086)
	ioWait()

	// Restore whatever mask the BIOS had in place before remapping; the
	// portable kernel unmasks only the lines it handles from there.
	outb(pic1Data, maskedM)
	outb(pic2Data, maskedS)
}

func picPort(irq uint8) (port uint16, bit uint8) {
	if irq < 8 {
		return pic1Data, irq
	}
	return pic2Data, irq - 8
}

func (PIC8259) Unmask(irq uint8) {
	port, bit := picPort(irq)
	outb(port, inb(port)&^(1<<bit))
}

func (PIC8259) Mask(irq uint8) {
	port, bit := picPort(irq)
	outb(port, inb(port)|(1<<bit))
}

// SendEOI is safe against a double call on the same IRQ: writing 0x20 to
// an already-serviced PIC is a documented no-op on real 8259 hardware.
func (PIC8259) SendEOI(irq uint8) {
	if irq >= 8 {
		outb(pic2Cmd, 0x20)
	}
	outb(pic1Cmd, 0x20)
}
