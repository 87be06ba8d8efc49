// Package dtbfixture builds synthetic Flattened Device Tree blobs for
// tests. It is hosted-only tooling: the freestanding DTB parser in
// internal/hal/arm64 never imports it, it only consumes the []byte it
// produces.
package dtbfixture

import (
	"encoding/binary"
	"fmt"
)

const (
	fdtMagic = 0xd00dfeed

	tagBeginNode = 1
	tagEndNode   = 2
	tagProp      = 3
	tagEnd       = 9
)

// Builder assembles a structure block, a strings block, and the
// boilerplate header around them. Zero value is ready to use.
type Builder struct {
	structBlock []byte
	stringsBlock []byte
	stringOffs  map[string]uint32
	depth       int
	err         error
}

// Begin opens a node named name under whatever node is currently open.
func (b *Builder) Begin(name string) *Builder {
	if b.err != nil {
		return b
	}
	b.putU32(tagBeginNode)
	b.structBlock = append(b.structBlock, name...)
	b.structBlock = append(b.structBlock, 0)
	b.align4()
	b.depth++
	return b
}

// End closes the most recently opened node.
func (b *Builder) End() *Builder {
	if b.err != nil {
		return b
	}
	if b.depth == 0 {
		b.err = fmt.Errorf("dtbfixture: End called with no open node")
		return b
	}
	b.putU32(tagEndNode)
	b.depth--
	return b
}

// Prop appends a property with the given name and raw big-endian value
// to the currently open node.
func (b *Builder) Prop(name string, value []byte) *Builder {
	if b.err != nil {
		return b
	}
	if b.depth == 0 {
		b.err = fmt.Errorf("dtbfixture: Prop %q called outside any node", name)
		return b
	}
	b.putU32(tagProp)
	b.putU32(uint32(len(value)))
	b.putU32(b.internString(name))
	b.structBlock = append(b.structBlock, value...)
	b.align4()
	return b
}

// PropU32 appends a property whose value is a single big-endian u32.
func (b *Builder) PropU32(name string, v uint32) *Builder {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return b.Prop(name, buf[:])
}

// PropReg appends a "reg" property built from pairs of (address, size)
// regions, each encoded with the given cell widths (in 32-bit words).
func (b *Builder) PropReg(addressCells, sizeCells uint32, regions [][2]uint64) *Builder {
	var value []byte
	for _, r := range regions {
		value = append(value, beCells(r[0], addressCells)...)
		value = append(value, beCells(r[1], sizeCells)...)
	}
	return b.Prop("reg", value)
}

// PropString appends a property whose value is a single NUL-terminated
// string (not a compatible-style list).
func (b *Builder) PropString(name, value string) *Builder {
	return b.Prop(name, append([]byte(value), 0))
}

// PropCompatible appends a "compatible" property from a list of IP-block
// strings, NUL-separated per the devicetree convention.
func (b *Builder) PropCompatible(values ...string) *Builder {
	var value []byte
	for _, v := range values {
		value = append(value, v...)
		value = append(value, 0)
	}
	return b.Prop("compatible", value)
}

// Bytes finishes the tree (closing any still-open nodes) and returns the
// assembled DTB image, or an error if the builder was misused.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	for b.depth > 0 {
		b.End()
	}
	if b.err != nil {
		return nil, b.err
	}
	b.putU32(tagEnd)

	const headerWords = 10
	offStruct := uint32(headerWords * 4)
	offStrings := offStruct + uint32(len(b.structBlock))
	totalSize := offStrings + uint32(len(b.stringsBlock))

	out := make([]byte, 0, totalSize)
	var hdr [headerWords * 4]byte
	binary.BigEndian.PutUint32(hdr[0:], fdtMagic)
	binary.BigEndian.PutUint32(hdr[4:], totalSize)
	binary.BigEndian.PutUint32(hdr[8:], offStruct)
	binary.BigEndian.PutUint32(hdr[12:], offStrings)
	out = append(out, hdr[:]...)
	out = append(out, b.structBlock...)
	out = append(out, b.stringsBlock...)
	return out, nil
}

// MustBytes is Bytes for callers (tests) that want to fail loudly on
// builder misuse rather than check an error.
func (b *Builder) MustBytes() []byte {
	out, err := b.Bytes()
	if err != nil {
		panic(err)
	}
	return out
}

func (b *Builder) putU32(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.structBlock = append(b.structBlock, buf[:]...)
}

func (b *Builder) align4() {
	for len(b.structBlock)%4 != 0 {
		b.structBlock = append(b.structBlock, 0)
	}
}

func (b *Builder) internString(s string) uint32 {
	if b.stringOffs == nil {
		b.stringOffs = make(map[string]uint32)
	}
	if off, ok := b.stringOffs[s]; ok {
		return off
	}
	off := uint32(len(b.stringsBlock))
	b.stringsBlock = append(b.stringsBlock, s...)
	b.stringsBlock = append(b.stringsBlock, 0)
	b.stringOffs[s] = off
	return off
}

func beCells(v uint64, cells uint32) []byte {
	out := make([]byte, cells*4)
	for i := int(cells) - 1; i >= 0; i-- {
		binary.BigEndian.PutUint32(out[i*4:], uint32(v))
		v >>= 32
	}
	return out
}
