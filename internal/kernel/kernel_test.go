package kernel

import (
	"strings"
	"testing"

	"noxiom/internal/hal"
)

// initOrder records the order in which Run calls the fakes' Init methods
// and Detect.
var initOrder []string

type fakeSerial struct{ inited bool }

func (f *fakeSerial) Init()           { f.inited = true; initOrder = append(initOrder, "serial") }
func (f *fakeSerial) Putchar(c byte)  {}
func (f *fakeSerial) Print(s string)  {}

type fakeDisplay struct {
	inited bool
	out    string
}

func (f *fakeDisplay) Init()              { f.inited = true; initOrder = append(initOrder, "display") }
func (f *fakeDisplay) Clear()             {}
func (f *fakeDisplay) Putchar(c byte)     { f.out += string(c) }
func (f *fakeDisplay) Print(s string)     { f.out += s }
func (f *fakeDisplay) SetColor(hal.ColorAttr) {}

type fakeInput struct{ inited bool }

func (f *fakeInput) Init()       { f.inited = true; initOrder = append(initOrder, "input") }
func (f *fakeInput) Getchar() byte {
	panic("halt should have stopped Run before Getchar is reached")
}

type fakeIntc struct{ inited bool }

func (f *fakeIntc) Init()            { f.inited = true; initOrder = append(initOrder, "intc") }
func (f *fakeIntc) Unmask(irq uint8) {}
func (f *fakeIntc) Mask(irq uint8)   {}
func (f *fakeIntc) SendEOI(irq uint8) {}

type fakeCPU struct{ inited bool }

func (f *fakeCPU) Init() { f.inited = true; initOrder = append(initOrder, "cpu") }

// TestRunBootSequenceOrder checks Run's fixed boot order (serial, detect,
// CPU, interrupt controller, display, input), then lets the shell read
// "halt\n", using a Halt that panics instead of looping forever (Run
// never returns on real hardware).
func TestRunBootSequenceOrder(t *testing.T) {
	initOrder = nil
	serial := &fakeSerial{}
	display := &fakeDisplay{}
	input := &fakeInput{}
	intc := &fakeIntc{}
	cpu := &fakeCPU{}

	halted := false
	backend := hal.Backend{
		Serial:  serial,
		Display: display,
		Input:   &panicOnGetcharAfterHalt{fakeInput: input},
		Intc:    intc,
		CPU:     cpu,
		Detect: func(d *hal.Descriptor) {
			initOrder = append(initOrder, "detect")
			d.Arch = hal.ArchX86_64
			d.CPUCores = 4
			d.RAMBytes = 4 << 30
			d.SetModel("Test CPU")
		},
		Halt: func() { halted = true; panic("halt") },
	}

	func() {
		defer func() { recover() }()
		Run(backend)
	}()

	if !serial.inited || !cpu.inited || !intc.inited || !display.inited || !input.inited {
		t.Fatalf("not every back-end was initialized: serial=%v cpu=%v intc=%v display=%v input=%v",
			serial.inited, cpu.inited, intc.inited, display.inited, input.inited)
	}
	if !halted {
		t.Fatal("Halt was never called")
	}
	wantOrder := []string{"serial", "detect", "cpu", "intc", "display", "input"}
	if strings.Join(initOrder, ",") != strings.Join(wantOrder, ",") {
		t.Errorf("boot order = %v, want %v", initOrder, wantOrder)
	}

	desc := Descriptor()
	if desc.Tier != hal.TierHigh {
		t.Errorf("Descriptor().Tier = %v, want HIGH for 4 cores / 4GiB", desc.Tier)
	}
	if string(desc.Model()) != "Test CPU" {
		t.Errorf("Descriptor().Model() = %q, want %q", desc.Model(), "Test CPU")
	}
}

// panicOnGetcharAfterHalt immediately triggers the shell's halt path by
// typing "halt\n" once, then panics if Getchar is ever called again.
type panicOnGetcharAfterHalt struct {
	*fakeInput
	script []byte
	pos    int
}

func (p *panicOnGetcharAfterHalt) Getchar() byte {
	if p.script == nil {
		p.script = []byte("halt\n")
	}
	if p.pos < len(p.script) {
		c := p.script[p.pos]
		p.pos++
		return c
	}
	panic("Getchar called after halt")
}
