package imgvalidate

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"
)

// DisassembleKernel decodes up to maxInsns 64-bit x86 instructions
// starting at the kernel image's first byte, for tooling that wants to
// confirm the linker actually produced what entry_amd64.s expects
// (typically a stack-pointer load followed by a near call) without
// booting it in an emulator.
func DisassembleKernel(img []byte, maxInsns int) ([]string, error) {
	report, err := Validate(img)
	if err != nil {
		return nil, fmt.Errorf("imgvalidate: cannot disassemble an invalid image: %w", err)
	}

	kernelOff := kernelLBA * sectorSize
	kernelEnd := kernelOff + report.KernelSectors*sectorSize
	code := img[kernelOff:kernelEnd]

	var lines []string
	pos := 0
	for i := 0; i < maxInsns && pos < len(code); i++ {
		inst, err := x86asm.Decode(code[pos:], 64)
		if err != nil {
			return lines, fmt.Errorf("imgvalidate: decode failed at kernel offset %d: %w", pos, err)
		}
		lines = append(lines, fmt.Sprintf("%04x: %s", pos, x86asm.GNUSyntax(inst, uint64(pos), nil)))
		pos += inst.Len
	}
	return lines, nil
}
