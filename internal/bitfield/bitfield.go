// Package bitfield packs and unpacks struct fields tagged `bitfield:"n"`
// into a single integer. It is hosted-only tooling: nothing freestanding
// imports it, since reflection needs a live Go runtime. Its tests check it
// against bytes Noxiom defines by hand (gdt.go's accessCode, idt.go's
// idtGateIntr, the VGA attribute byte, the ESR_EL1 EC field); no other
// package in the module imports it.
package bitfield

import (
	"fmt"
	"reflect"
)

// Config bounds how many bits the packed representation may use.
type Config struct {
	// NumBits is the maximum allowed width of the packed value. Zero
	// means no limit beyond the fields' own declared widths.
	NumBits uint
}

// Pack packs the bitfield-tagged fields of x, in field declaration
// order starting at bit 0, into a uint64.
func Pack(x interface{}, c *Config) (uint64, error) {
	if c == nil {
		c = &Config{}
	}
	v := reflect.ValueOf(x)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return 0, fmt.Errorf("bitfield: Pack expected struct, got %v", v.Kind())
	}

	var packed uint64
	var offset uint
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		bits, ok, err := fieldWidth(t.Field(i))
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		value, err := fieldBits(v.Field(i))
		if err != nil {
			return 0, fmt.Errorf("bitfield: field %s: %w", t.Field(i).Name, err)
		}
		if max := uint64(1)<<bits - 1; value > max {
			return 0, fmt.Errorf("bitfield: field %s value %d exceeds %d bits", t.Field(i).Name, value, bits)
		}
		packed |= value << offset
		offset += bits
	}
	if c.NumBits > 0 && offset > c.NumBits {
		return 0, fmt.Errorf("bitfield: packed width %d exceeds NumBits %d", offset, c.NumBits)
	}
	return packed, nil
}

// Unpack is Pack's inverse: it reads bitfield-tagged fields out of
// packed, in the same field order Pack used, and writes them into the
// struct dst points to.
func Unpack(dst interface{}, packed uint64) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bitfield: Unpack expected a pointer to struct")
	}
	v = v.Elem()
	t := v.Type()

	var offset uint
	for i := 0; i < v.NumField(); i++ {
		bits, ok, err := fieldWidth(t.Field(i))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		mask := uint64(1)<<bits - 1
		value := (packed >> offset) & mask
		if err := setFieldBits(v.Field(i), value); err != nil {
			return fmt.Errorf("bitfield: field %s: %w", t.Field(i).Name, err)
		}
		offset += bits
	}
	return nil
}

func fieldWidth(f reflect.StructField) (bits uint, ok bool, err error) {
	tag := f.Tag.Get("bitfield")
	if tag == "" {
		return 0, false, nil
	}
	var n uint
	if _, scanErr := fmt.Sscanf(tag, "%d", &n); scanErr != nil {
		return 0, false, fmt.Errorf("bitfield: invalid tag %q on field %s", tag, f.Name)
	}
	if n == 0 {
		return 0, false, nil
	}
	return n, true, nil
}

func fieldBits(v reflect.Value) (uint64, error) {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	default:
		return 0, fmt.Errorf("unsupported field type %v", v.Kind())
	}
}

func setFieldBits(v reflect.Value, bits uint64) error {
	switch v.Kind() {
	case reflect.Bool:
		v.SetBool(bits != 0)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(bits)
	default:
		return fmt.Errorf("unsupported field type %v", v.Kind())
	}
	return nil
}
