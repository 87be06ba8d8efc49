//go:build arm64

package arm64

import "noxiom/internal/hal"

// GICv2 distributor/CPU-interface register offsets from their respective
// MMIO bases, both discovered from the DTB.
const (
	gicdCTLR       = 0x000
	gicdISENABLERn = 0x100
	gicdICENABLERn = 0x180
	gicdIPRIORITYn = 0x400
	gicdITARGETSn  = 0x800

	giccCTLR = 0x00
	giccPMR  = 0x04
	giccIAR  = 0x0C
	giccEOIR = 0x10

	spuriousIRQ = 1023
)

// GICv2 is the IntController back-end. DistBase/CPUBase come from the
// DTB parse; Init enables the distributor and CPU interface with every
// source line masked and targeted at CPU0.
type GICv2 struct {
	DistBase, CPUBase uintptr
}

var sharedGIC GICv2

var _ hal.IntController = &sharedGIC

func (g *GICv2) Init() {
	if g.DistBase == 0 || g.CPUBase == 0 {
		return
	}
	mmioWrite(g.DistBase+gicdCTLR, 0)
	mmioWrite(g.CPUBase+giccCTLR, 0)
	dsb()

	for i := uintptr(0); i < 256; i += 4 {
		mmioWrite(g.DistBase+gicdIPRIORITYn+i, 0xA0A0A0A0)
	}
	for i := uintptr(0); i < 256; i += 4 {
		mmioWrite(g.DistBase+gicdITARGETSn+i, 0x01010101) // target CPU0
	}
	for i := uintptr(0); i < 32; i += 4 {
		mmioWrite(g.DistBase+gicdICENABLERn+i, 0xFFFFFFFF) // clear-enable everything
	}
	dsb()

	mmioWrite(g.CPUBase+giccPMR, 0xFF) // accept all priorities
	dsb()
	mmioWrite(g.DistBase+gicdCTLR, 1)
	mmioWrite(g.CPUBase+giccCTLR, 1)
	dsb()
}

func (g *GICv2) Unmask(irq uint8) {
	if g.DistBase == 0 {
		return
	}
	reg := g.DistBase + gicdISENABLERn + uintptr(irq/32)*4
	mmioWrite(reg, 1<<(irq%32))
	dsb()
}

func (g *GICv2) Mask(irq uint8) {
	if g.DistBase == 0 {
		return
	}
	reg := g.DistBase + gicdICENABLERn + uintptr(irq/32)*4
	mmioWrite(reg, 1<<(irq%32))
	dsb()
}

// ack reads IAR masked to 10 bits; 1023 signals spurious and must be
// ignored by callers.
func (g *GICv2) ack() uint32 {
	return mmioRead(g.CPUBase+giccIAR) & 0x3FF
}

// SendEOI writes the source back to EOIR; safe against a double call
// because writing an already-deactivated ID is a documented GICv2 no-op.
func (g *GICv2) SendEOI(irq uint8) {
	if g.CPUBase == 0 {
		return
	}
	mmioWrite(g.CPUBase+giccEOIR, uint32(irq))
	dsb()
}
