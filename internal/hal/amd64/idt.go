//go:build amd64

package amd64

import "unsafe"

// InterruptFrame is the register snapshot pushed by the common ISR stub:
// general-purpose registers in the fixed order the assembly PUSHQ chain
// produces, then int_no/err_code, then the CPU's own hardware frame. The
// layout is part of the ABI between isrCommonStub and dispatchInterrupt
// and must stay byte-for-byte in sync with the PUSHQ order in
// entry_amd64.s.
type InterruptFrame struct {
	R15, R14, R13, R12, R11, R10, R9, R8 uint64
	BP, DI, SI, DX, CX, BX, AX           uint64
	IntNo, ErrCode                       uint64
	RIP, CS, RFlags, RSP, SS             uint64
}

// isrTable holds the addresses of the 48 per-vector stubs, built by
// isr_stubs_amd64.s's DATA directives.
var isrTable [48]uintptr

const (
	idtEntries   = 256
	gdtKernelCS  = 0x08
	gdtKernelDS  = 0x10
	idtGateIntr  = 0x8E // present, ring 0, 64-bit interrupt gate
	irqBase      = 32
)

// idtGate is one 64-bit-mode IDT descriptor (16 bytes).
type idtGate struct {
	offsetLow  uint16
	selector   uint16
	ist        uint8
	typeAttr   uint8
	offsetMid  uint16
	offsetHigh uint32
	reserved   uint32
}

var idt [idtEntries]idtGate

type dtPointer struct {
	limit uint16
	base  uint64
}

var idtPtr dtPointer

func setGate(vec int, handler uintptr) {
	idt[vec] = idtGate{
		offsetLow:  uint16(handler),
		selector:   gdtKernelCS,
		ist:        0,
		typeAttr:   idtGateIntr,
		offsetMid:  uint16(handler >> 16),
		offsetHigh: uint32(handler >> 32),
	}
}

// exceptionHandlers and irqHandlers are the handler tables
// dispatchInterrupt consults: vectors 0-31 are CPU exceptions, 32-47 are
// remapped hardware IRQs. SetIRQHandler fills irqHandlers; a nil
// exceptionHandlers entry falls back to defaultExceptionHandler.
var (
	exceptionHandlers [32]func(*InterruptFrame)
	irqHandlers       [16]func(uint8)
)

func defaultExceptionHandler(f *InterruptFrame) {
	vgaPrintException(uint8(f.IntNo))
	disableInterrupts()
	for {
		hlt()
	}
}

// SetIRQHandler installs the device handler for a hardware IRQ line
// (0-15). It must be called before Unmask for that line.
func SetIRQHandler(irq uint8, h func(uint8)) {
	irqHandlers[irq] = h
}

// dispatchInterrupt is called from isrCommonStub with a pointer into the
// still-live interrupt stack frame. Exceptions print and halt; IRQs
// dispatch to the registered device handler and then signal EOI.
//
//go:nosplit
func dispatchInterrupt(f *InterruptFrame) {
	if f.IntNo < irqBase {
		h := exceptionHandlers[f.IntNo]
		if h == nil {
			h = defaultExceptionHandler
		}
		h(f)
		return
	}
	irq := uint8(f.IntNo - irqBase)
	if h := irqHandlers[irq]; h != nil {
		h(irq)
	}
	sharedPIC.SendEOI(irq)
}

// idtInit installs a 256-entry IDT with gates for vectors 0-47 pointing
// at the per-vector stubs, then loads it via LIDT.
func idtInit() {
	for v := 0; v < idtEntries; v++ {
		if v < len(isrTable) {
			setGate(v, isrTable[v])
		}
	}
	idtPtr.limit = uint16(unsafe.Sizeof(idt)) - 1
	idtPtr.base = uint64(uintptr(unsafe.Pointer(&idt[0])))
	lidt(uintptr(unsafe.Pointer(&idtPtr)))
}
