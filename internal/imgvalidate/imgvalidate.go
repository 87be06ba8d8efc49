// Package imgvalidate checks a built x86_64 boot image against the
// on-disk layout stage1/stage2 expect: a signed MBR in sector 0, an
// 8 KiB stage-2 in sectors 1-16, and the kernel image from sector 17
// onward. It is hosted-only tooling, run against a built disk image,
// never linked into the kernel itself.
package imgvalidate

import (
	"encoding/binary"
	"fmt"
)

const (
	sectorSize = 512

	mbrSectors   = 1
	stage2Sectors = 16
	kernelLBA    = mbrSectors + stage2Sectors

	bootSignatureOffset = 510
	bootSignature       = 0xAA55
)

// Report summarizes a validated image's layout.
type Report struct {
	TotalSectors  int
	KernelSectors int
}

// Validate checks img against the boot chain's on-disk assumptions
// (spec: "Sector 0: stage-1 (MBR) ... Sectors 1-16: stage-2 ... Sectors
// 17+: kernel raw binary"). It never mutates img.
func Validate(img []byte) (Report, error) {
	if len(img) < kernelLBA*sectorSize {
		return Report{}, fmt.Errorf("imgvalidate: image too short (%d bytes, need at least %d for MBR+stage2)",
			len(img), kernelLBA*sectorSize)
	}
	if len(img)%sectorSize != 0 {
		return Report{}, fmt.Errorf("imgvalidate: image size %d is not a multiple of sector size %d",
			len(img), sectorSize)
	}

	sig := binary.LittleEndian.Uint16(img[bootSignatureOffset : bootSignatureOffset+2])
	if sig != bootSignature {
		return Report{}, fmt.Errorf("imgvalidate: bad boot signature 0x%04X at offset %d (expected 0x%04X)",
			sig, bootSignatureOffset, bootSignature)
	}

	totalSectors := len(img) / sectorSize
	kernelSectors := totalSectors - kernelLBA
	if kernelSectors <= 0 {
		return Report{}, fmt.Errorf("imgvalidate: no sectors left for the kernel image after MBR+stage2")
	}

	return Report{
		TotalSectors:  totalSectors,
		KernelSectors: kernelSectors,
	}, nil
}
