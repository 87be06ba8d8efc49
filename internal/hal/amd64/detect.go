//go:build amd64

package amd64

import "noxiom/internal/hal"

// CMOS registers for extended RAM size, read through ports 0x70/0x71.
const (
	cmosAddrPort uint16 = 0x70
	cmosDataPort uint16 = 0x71

	cmosExtLowKB0  = 0x30 // extended KiB below 16 MiB, low byte
	cmosExtLowKB1  = 0x31 // high byte
	cmosExt64KB0   = 0x34 // extended 64-KiB units above 16 MiB, low byte
	cmosExt64KB1   = 0x35 // high byte

	ramFloor = 128 * 1024 * 1024 // never underestimate modern hardware
)

func cmosRead(reg uint8) uint8 {
	outb(cmosAddrPort, reg)
	ioWait()
	return inb(cmosDataPort)
}

// Detect fills d: CPUID leaf 0x0B (subleaf 1) preferred for core count,
// falling back to leaf 1 EBX[23:16]; brand string from leaves
// 0x80000002-4; RAM estimated from CMOS, floored at 128 MiB.
func Detect(d *hal.Descriptor) {
	d.Arch = hal.ArchX86_64
	d.CPUCores = detectCoreCount()
	d.RAMBytes = detectRAMBytes()
	d.SetModel(detectBrandString())
}

func detectCoreCount() uint32 {
	maxLeaf, _, _, _ := cpuid(0, 0)
	if maxLeaf >= 0x0B {
		_, ebx, _, _ := cpuid(0x0B, 1)
		if n := ebx & 0xFFFF; n > 0 {
			return n
		}
	}
	if maxLeaf >= 1 {
		_, ebx, _, _ := cpuid(1, 0)
		if n := (ebx >> 16) & 0xFF; n > 0 {
			return n
		}
	}
	return 0
}

func detectBrandString() string {
	maxExt, _, _, _ := cpuid(0x80000000, 0)
	if maxExt < 0x80000004 {
		return ""
	}
	var raw [48]byte
	for i, leaf := range []uint32{0x80000002, 0x80000003, 0x80000004} {
		eax, ebx, ecx, edx := cpuid(leaf, 0)
		putLE32(raw[i*16+0:], eax)
		putLE32(raw[i*16+4:], ebx)
		putLE32(raw[i*16+8:], ecx)
		putLE32(raw[i*16+12:], edx)
	}
	start, end := 0, len(raw)
	for start < end && raw[start] == ' ' {
		start++
	}
	for end > start && raw[end-1] == 0 {
		end--
	}
	return string(raw[start:end])
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func detectRAMBytes() uint64 {
	low := uint32(cmosRead(cmosExtLowKB0)) | uint32(cmosRead(cmosExtLowKB1))<<8
	high := uint32(cmosRead(cmosExt64KB0)) | uint32(cmosRead(cmosExt64KB1))<<8

	bytes := uint64(low)*1024 + uint64(high)*64*1024
	if bytes < ramFloor {
		bytes = ramFloor
	}
	return bytes
}
