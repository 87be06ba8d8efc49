//go:build amd64

package amd64

import (
	"unsafe"

	"noxiom/internal/hal"
)

const (
	vgaBase  uintptr = 0xB8000
	vgaCols          = 80
	vgaRows          = 25
)

// ColorAttrRedOnBlack is used for the exception banner: the exception
// name prints in red.
const ColorAttrRedOnBlack = 0x04

var vgaColor uint8 = 0x07 // light grey on black, the BIOS text-mode default

type vgaCell struct {
	char byte
	attr byte
}

func vgaFramebuffer() *[vgaRows * vgaCols]vgaCell {
	return (*[vgaRows * vgaCols]vgaCell)(unsafe.Pointer(vgaBase))
}

// VGA is the x86_64 Display back-end: an 80x25 text-mode framebuffer with
// a hardware cursor kept in sync via the CRT controller's index/data
// ports (0x3D4/0x3D5).
type VGA struct {
	col, row int
}

var _ hal.Display = (*VGA)(nil)

func (v *VGA) Init() {
	v.col, v.row = 0, 0
	v.Clear()
}

func (v *VGA) Clear() {
	fb := vgaFramebuffer()
	for i := range fb {
		fb[i] = vgaCell{char: ' ', attr: vgaColor}
	}
	v.col, v.row = 0, 0
	v.updateCursor()
}

func (v *VGA) SetColor(attr hal.ColorAttr) {
	vgaColor = uint8(attr)
}

func (v *VGA) Putchar(c byte) {
	switch c {
	case '\n':
		v.col = 0
		v.row++
	case '\r':
		v.col = 0
	case '\b':
		if v.col > 0 {
			v.col--
			fb := vgaFramebuffer()
			fb[v.row*vgaCols+v.col] = vgaCell{char: ' ', attr: vgaColor}
		}
	case '\t':
		v.col = (v.col + 8) &^ 7
		if v.col >= vgaCols {
			v.col = 0
			v.row++
		}
	default:
		fb := vgaFramebuffer()
		fb[v.row*vgaCols+v.col] = vgaCell{char: c, attr: vgaColor}
		v.col++
		if v.col >= vgaCols {
			v.col = 0
			v.row++
		}
	}
	if v.row >= vgaRows {
		v.scroll()
		v.row = vgaRows - 1
	}
	v.updateCursor()
}

func (v *VGA) Print(s string) {
	for i := 0; i < len(s); i++ {
		v.Putchar(s[i])
	}
}

// scroll copies rows 1..24 to 0..23 and clears the last row with the
// current attribute.
func (v *VGA) scroll() {
	fb := vgaFramebuffer()
	copy(fb[0:(vgaRows-1)*vgaCols], fb[vgaCols:vgaRows*vgaCols])
	for i := (vgaRows - 1) * vgaCols; i < vgaRows*vgaCols; i++ {
		fb[i] = vgaCell{char: ' ', attr: vgaColor}
	}
}

func (v *VGA) updateCursor() {
	pos := uint16(v.row*vgaCols + v.col)
	vgaCursorPort(0x0E, byte(pos>>8))
	vgaCursorPort(0x0F, byte(pos))
}

// vgaRawPrint/vgaSetColor back the exception path, which must not depend
// on a live *VGA receiver (an exception may fire before display_init).
var rawCursor struct{ col, row int }

func vgaSetColor(attr uint8) { vgaColor = attr }

func vgaRawPrint(s string) {
	fb := vgaFramebuffer()
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\n':
			rawCursor.col = 0
			rawCursor.row++
		case '\r':
			rawCursor.col = 0
		default:
			fb[rawCursor.row*vgaCols+rawCursor.col] = vgaCell{char: c, attr: vgaColor}
			rawCursor.col++
			if rawCursor.col >= vgaCols {
				rawCursor.col = 0
				rawCursor.row++
			}
		}
		if rawCursor.row >= vgaRows {
			rawCursor.row = vgaRows - 1
		}
	}
}
