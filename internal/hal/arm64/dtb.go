//go:build arm64

package arm64

import "unsafe"

// DTB (Flattened Device Tree) parser. Operates on a plain []byte so it is
// fully testable without real hardware (see dtb_test.go, fed by
// internal/dtbfixture); ParseFromPointer wraps it for the real boot path,
// which only has a physical address.
//
// Design rule: matches are against IP-block compatible strings only,
// never board names, so the same binary works on any SoC built from
// the same blocks.

const (
	fdtMagic = 0xd00dfeed

	fdtBeginNode = 1
	fdtEndNode   = 2
	fdtProp      = 3
	fdtNop       = 4
	fdtEnd       = 9

	defaultAddressCells = 1
	defaultSizeCells    = 1

	maxDepth = 16
)

var uartCompatList = []string{"arm,pl011", "brcm,bcm2835-aux-uart"}
var gicCompatList = []string{"arm,cortex-a15-gic", "arm,gic-400", "arm,gic-v3"}

// Result is the subset of DTB-discovered facts the rest of the HAL needs.
// Zero value means "nothing found," which is exactly what a missing or
// malformed DTB produces.
type Result struct {
	RAMBase, RAMSize      uint64
	CPUCores              uint32
	UARTBase              uintptr
	UARTCompat            string
	GICDistBase, GICCPUBase uintptr
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// cstring reads a NUL-terminated string starting at offset off in b.
func cstring(b []byte, off uint32) string {
	if int(off) >= len(b) {
		return ""
	}
	end := off
	for int(end) < len(b) && b[end] != 0 {
		end++
	}
	return string(b[off:end])
}

// compatContains reports whether the NUL-separated "compatible" value
// lists target among its entries.
func compatContains(value []byte, target string) bool {
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == 0 {
			if string(value[start:i]) == target {
				return true
			}
			start = i + 1
		}
	}
	return false
}

type nodeState struct {
	name          string
	addressCells  uint32
	sizeCells     uint32
	compatible    []byte
	reg           []byte
	hasCompatible bool
	hasReg        bool
}

// Parse walks blob's structure block and returns the discovered facts.
// It never fails destructively: a bad magic, truncated header, or
// malformed token stream just returns a zeroed Result and false.
func Parse(blob []byte) (Result, bool) {
	var result Result
	if len(blob) < 40 {
		return result, false
	}
	if be32(blob[0:4]) != fdtMagic {
		return result, false
	}
	offStruct := be32(blob[8:12])
	offStrings := be32(blob[12:16])
	if int(offStruct) >= len(blob) || int(offStrings) > len(blob) {
		return result, false
	}
	structBlock := blob[offStruct:]
	stringsBlock := blob[offStrings:]

	var stack [maxDepth]nodeState
	depth := 0
	stack[0] = nodeState{addressCells: defaultAddressCells, sizeCells: defaultSizeCells}

	cpuCount := uint32(0)
	inCPUs := false
	sawUART := false
	sawGIC := false

	p := 0
	for p+4 <= len(structBlock) {
		tag := be32(structBlock[p:])
		p += 4
		switch tag {
		case fdtNop:
			// no-op, nothing to do

		case fdtBeginNode:
			nameEnd := p
			for nameEnd < len(structBlock) && structBlock[nameEnd] != 0 {
				nameEnd++
			}
			name := string(structBlock[p:nameEnd])
			p = nameEnd + 1
			p = align4(p)

			if depth+1 >= maxDepth {
				return Result{}, false
			}
			depth++
			parent := stack[depth-1]
			stack[depth] = nodeState{
				name:         name,
				addressCells: parent.addressCells,
				sizeCells:    parent.sizeCells,
			}
			if name == "cpus" {
				inCPUs = true
			}

		case fdtEndNode:
			cur := stack[depth]
			commitNode(&result, cur, depth, inCPUs, &cpuCount, &sawUART, &sawGIC)
			if cur.name == "cpus" {
				inCPUs = false
			}
			depth--
			if depth < 0 {
				return Result{}, false
			}

		case fdtProp:
			if p+8 > len(structBlock) {
				return Result{}, false
			}
			plen := be32(structBlock[p:])
			nameOff := be32(structBlock[p+4:])
			p += 8
			if p+int(plen) > len(structBlock) {
				return Result{}, false
			}
			value := structBlock[p : p+int(plen)]
			p += int(plen)
			p = align4(p)

			name := cstring(stringsBlock, nameOff)
			switch name {
			case "compatible":
				stack[depth].compatible = value
				stack[depth].hasCompatible = true
			case "reg":
				stack[depth].reg = value
				stack[depth].hasReg = true
			case "#address-cells":
				if depth == 1 && len(value) >= 4 {
					stack[depth].addressCells = be32(value)
				}
			case "#size-cells":
				if depth == 1 && len(value) >= 4 {
					stack[depth].sizeCells = be32(value)
				}
			}

		case fdtEnd:
			return result, true

		default:
			return Result{}, false
		}
	}
	return Result{}, false // ran off the end without an FDT_END token
}

func align4(p int) int { return (p + 3) &^ 3 }

// commitNode folds one closed node's accumulated state into result,
// following the data model's "on END_NODE, accumulated state is
// committed to the result."
func commitNode(result *Result, n nodeState, depth int, inCPUs bool, cpuCount *uint32, sawUART, sawGIC *bool) {
	switch {
	case n.name == "memory" || hasPrefix(n.name, "memory@"):
		if n.hasReg {
			addr, size, ok := firstRegion(n.reg, n.addressCells, n.sizeCells)
			if ok {
				result.RAMBase = addr
				result.RAMSize = size
			}
		}

	case inCPUs && hasPrefix(n.name, "cpu@"):
		*cpuCount++
		result.CPUCores = *cpuCount

	case n.hasCompatible && !*sawUART && matchesAny(n.compatible, uartCompatList):
		if n.hasReg {
			addr, _, ok := firstRegion(n.reg, n.addressCells, n.sizeCells)
			if ok {
				result.UARTBase = uintptr(addr)
				result.UARTCompat = firstCompat(n.compatible)
				*sawUART = true
			}
		}

	case n.hasCompatible && !*sawGIC && matchesAny(n.compatible, gicCompatList):
		if n.hasReg {
			distAddr, _, ok := firstRegion(n.reg, n.addressCells, n.sizeCells)
			if ok {
				result.GICDistBase = uintptr(distAddr)
				step := int(n.addressCells+n.sizeCells) * 4
				if step < len(n.reg) {
					cpuAddr, _, ok2 := firstRegion(n.reg[step:], n.addressCells, n.sizeCells)
					if ok2 {
						result.GICCPUBase = uintptr(cpuAddr)
					}
				}
				*sawGIC = true
			}
		}
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func matchesAny(value []byte, candidates []string) bool {
	for _, c := range candidates {
		if compatContains(value, c) {
			return true
		}
	}
	return false
}

func firstCompat(value []byte) string {
	for i := 0; i < len(value); i++ {
		if value[i] == 0 {
			return string(value[:i])
		}
	}
	return string(value)
}

// ParseFromPointer reads the totalsize field out of a DTB at a physical
// address, builds a slice view over exactly that many bytes, and parses
// it. addr == 0 (no DTB pointer captured at entry) is treated the same
// as a bad blob: zeroed result, ok == false.
func ParseFromPointer(addr uintptr) (Result, bool) {
	if addr == 0 {
		return Result{}, false
	}
	header := (*[16]byte)(unsafe.Pointer(addr))
	if be32(header[0:4]) != fdtMagic {
		return Result{}, false
	}
	totalSize := be32(header[4:8])
	if totalSize < 16 {
		return Result{}, false
	}
	blob := unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(totalSize))
	return Parse(blob)
}

// firstRegion reads one (address, size) pair from the front of reg,
// sized by addressCells/sizeCells 32-bit words each.
func firstRegion(reg []byte, addressCells, sizeCells uint32) (addr, size uint64, ok bool) {
	need := int(addressCells+sizeCells) * 4
	if len(reg) < need {
		return 0, 0, false
	}
	off := 0
	for i := uint32(0); i < addressCells; i++ {
		addr = addr<<32 | uint64(be32(reg[off:]))
		off += 4
	}
	for i := uint32(0); i < sizeCells; i++ {
		size = size<<32 | uint64(be32(reg[off:]))
		off += 4
	}
	return addr, size, true
}
