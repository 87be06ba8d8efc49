//go:build arm64

package arm64

import "noxiom/internal/hal"

// dtbResult is cached from the single ParseFromPointer call Detect makes;
// detectAndWire reads it back to wire UART/GIC bases without reparsing.
var dtbResult Result
var dtbOK bool

// Detect fills d: MIDR_EL1 resolves the model string, and the DTB
// captured at entry resolves core count, RAM size, and the UART/GIC
// MMIO bases. A missing or malformed DTB leaves every DTB-derived field
// at zero — unlike the x86_64 back-end's CMOS reading, there is no
// sane floor to apply here: a board genuinely can report 64 MiB, and
// bumping that up would misclassify its tier.
func Detect(d *hal.Descriptor) {
	d.Arch = hal.ArchARM64
	d.SetModel(DetectModel())

	dtbResult, dtbOK = ParseFromPointer(dtbPointer)
	if !dtbOK {
		return
	}

	d.CPUCores = dtbResult.CPUCores
	d.RAMBytes = dtbResult.RAMSize
	d.SetCompat(dtbResult.UARTCompat)
	d.UARTBase = dtbResult.UARTBase
	d.IntcBase = dtbResult.GICCPUBase
	d.IntcDistBase = dtbResult.GICDistBase
}
