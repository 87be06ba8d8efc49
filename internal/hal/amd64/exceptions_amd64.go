//go:build amd64

package amd64

// exceptionNames covers CPU vectors 0-31; the exception name prints
// before the machine halts.
var exceptionNames = [32]string{
	"Divide Error", "Debug", "NMI", "Breakpoint",
	"Overflow", "BOUND Range Exceeded", "Invalid Opcode", "Device Not Available",
	"Double Fault", "Coprocessor Segment Overrun", "Invalid TSS", "Segment Not Present",
	"Stack Fault", "General Protection Fault", "Page Fault", "Reserved",
	"x87 Floating Point", "Alignment Check", "Machine Check", "SIMD Floating Point",
	"Virtualization", "Control Protection", "Reserved", "Reserved",
	"Reserved", "Reserved", "Reserved", "Reserved",
	"Hypervisor Injection", "VMM Communication", "Security", "Reserved",
}

// vgaPrintException prints the exception name in red directly to the VGA
// framebuffer, bypassing the Display interface: an exception may fire
// before display_init has run, and the message must survive regardless
// of boot stage.
func vgaPrintException(vector uint8) {
	name := "Unknown Exception"
	if int(vector) < len(exceptionNames) {
		name = exceptionNames[vector]
	}
	savedColor := vgaColor
	vgaSetColor(ColorAttrRedOnBlack)
	vgaRawPrint("\r\nEXCEPTION: ")
	vgaRawPrint(name)
	vgaRawPrint(" -- system halted\r\n")
	vgaColor = savedColor
}
