//go:build amd64

package amd64

import "unsafe"

// Three-entry flat GDT: null, kernel code, kernel data. Selectors match
// the gdtKernelCS/gdtKernelDS constants idt.go uses for interrupt gates.
type gdtEntry struct {
	limitLow   uint16
	baseLow    uint16
	baseMid    uint8
	access     uint8
	granFlags  uint8
	baseHigh   uint8
}

const (
	accessCode = 0x9A // present, ring 0, code, executable, readable
	accessData = 0x92 // present, ring 0, data, writable
	gran64     = 0xAF // flags in high nibble: 4K granularity, long mode (L bit); limit bits 19:16 = 0xF in low nibble
)

var gdt = [3]gdtEntry{
	{}, // null descriptor
	{limitLow: 0xFFFF, access: accessCode, granFlags: gran64},
	{limitLow: 0xFFFF, access: accessData, granFlags: gran64},
}

var gdtPtr dtPointer

// gdtInit loads the flat GDT and reloads the data-segment registers
// (DS/ES/FS/GS/SS) from it; CS is not reloaded. It is idempotent; calling
// it more than once simply re-points those registers again.
func gdtInit() {
	gdtPtr.limit = uint16(unsafe.Sizeof(gdt)) - 1
	gdtPtr.base = uint64(uintptr(unsafe.Pointer(&gdt[0])))
	lgdt(uintptr(unsafe.Pointer(&gdtPtr)))
	reloadSegments()
}
