//go:build amd64

package amd64

// Link to the hand-written primitives in entry_amd64.s, the way the
// teacher links mmio_write/mmio_read/dsb/delay/bzero from lib.s — every
// privileged instruction (port I/O, CPUID, table loads, halt) is a tiny
// assembly leaf, never inlined Go.

//go:linkname outb outb
//go:nosplit
func outb(port uint16, val uint8)

//go:linkname inb inb
//go:nosplit
func inb(port uint16) uint8

//go:linkname ioWait ioWait
//go:nosplit
func ioWait()

//go:linkname cpuid cpuid
//go:nosplit
func cpuid(leaf, subleaf uint32) (eax, ebx, ecx, edx uint32)

//go:linkname lgdt lgdt
//go:nosplit
func lgdt(ptr uintptr)

//go:linkname lidt lidt
//go:nosplit
func lidt(ptr uintptr)

//go:linkname reloadSegments reloadSegments
//go:nosplit
func reloadSegments()

//go:linkname enableInterrupts enableInterrupts
//go:nosplit
func enableInterrupts()

//go:linkname disableInterrupts disableInterrupts
//go:nosplit
func disableInterrupts()

//go:linkname hlt hlt
//go:nosplit
func hlt()

//go:linkname vgaCursorPort vgaCursorPort
//go:nosplit
func vgaCursorPort(index uint8, value uint8)
