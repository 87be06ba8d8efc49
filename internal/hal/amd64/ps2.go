//go:build amd64

package amd64

import (
	"noxiom/internal/hal"
	"noxiom/internal/ring"
)

const ps2DataPort uint16 = 0x60

const (
	scLShiftMake = 0x2A
	scRShiftMake = 0x36
	scLShiftBreak = 0xAA
	scRShiftBreak = 0xB6
)

// set1 and set1Shifted translate scancode set 1 make codes (0x00-0x39) to
// ASCII. Unmapped entries are 0 and silently dropped.
var set1 = [0x3A]byte{
	0x01: 0, 0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5',
	0x07: '6', 0x08: '7', 0x09: '8', 0x0A: '9', 0x0B: '0', 0x0C: '-',
	0x0D: '=', 0x0E: '\b', 0x0F: '\t',
	0x10: 'q', 0x11: 'w', 0x12: 'e', 0x13: 'r', 0x14: 't', 0x15: 'y',
	0x16: 'u', 0x17: 'i', 0x18: 'o', 0x19: 'p', 0x1A: '[', 0x1B: ']',
	0x1C: '\n',
	0x1E: 'a', 0x1F: 's', 0x20: 'd', 0x21: 'f', 0x22: 'g', 0x23: 'h',
	0x24: 'j', 0x25: 'k', 0x26: 'l', 0x27: ';', 0x28: '\'', 0x29: '`',
	0x2B: '\\',
	0x2C: 'z', 0x2D: 'x', 0x2E: 'c', 0x2F: 'v', 0x30: 'b', 0x31: 'n',
	0x32: 'm', 0x33: ',', 0x34: '.', 0x35: '/',
	0x39: ' ',
}

var set1Shifted = [0x3A]byte{
	0x02: '!', 0x03: '@', 0x04: '#', 0x05: '$', 0x06: '%',
	0x07: '^', 0x08: '&', 0x09: '*', 0x0A: '(', 0x0B: ')',
	0x0C: '_', 0x0D: '+', 0x0E: '\b', 0x0F: '\t',
	0x10: 'Q', 0x11: 'W', 0x12: 'E', 0x13: 'R', 0x14: 'T', 0x15: 'Y',
	0x16: 'U', 0x17: 'I', 0x18: 'O', 0x19: 'P', 0x1A: '{', 0x1B: '}',
	0x1C: '\n',
	0x1E: 'A', 0x1F: 'S', 0x20: 'D', 0x21: 'F', 0x22: 'G', 0x23: 'H',
	0x24: 'J', 0x25: 'K', 0x26: 'L', 0x27: ':', 0x28: '"', 0x29: '~',
	0x2B: '|',
	0x2C: 'Z', 0x2D: 'X', 0x2E: 'C', 0x2F: 'V', 0x30: 'B', 0x31: 'N',
	0x32: 'M', 0x33: '<', 0x34: '>', 0x35: '?',
	0x39: ' ',
}

// PS2Keyboard is the Input HAL back-end: IRQ1 is the sole producer into
// the ring, input_getchar (Getchar) the sole consumer, race-free
// because nothing else ever touches the ring concurrently.
type PS2Keyboard struct {
	shiftHeld bool
	buf       ring.Buffer
}

var sharedKeyboard PS2Keyboard

var _ hal.Input = (*PS2Keyboard)(nil)

func (k *PS2Keyboard) Init() {
	k.shiftHeld = false
	SetIRQHandler(1, k.irqHandler)
	sharedPIC.Unmask(1)
}

// irqHandler runs at IRQ1: read the scancode, track shift state, ignore
// releases (high bit set) other than the shift-release codes, and
// enqueue a translated byte. It is the ring's sole producer.
//
//go:nosplit
func (k *PS2Keyboard) irqHandler(irq uint8) {
	sc := inb(ps2DataPort)
	switch sc {
	case scLShiftMake, scRShiftMake:
		k.shiftHeld = true
		return
	case scLShiftBreak, scRShiftBreak:
		k.shiftHeld = false
		return
	}
	if sc&0x80 != 0 {
		return // key release, not otherwise interesting
	}
	if int(sc) >= len(set1) {
		return
	}
	var c byte
	if k.shiftHeld {
		c = set1Shifted[sc]
	} else {
		c = set1[sc]
	}
	if c != 0 {
		k.buf.Push(c)
	}
}

// Getchar blocks, via halt-until-interrupt, until IRQ1 has produced a
// byte. It is the ring's sole consumer.
func (k *PS2Keyboard) Getchar() byte {
	for {
		if c, ok := k.buf.Pop(); ok {
			return c
		}
		hlt()
	}
}
