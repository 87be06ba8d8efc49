// Command noxiom is the freestanding kernel image. Its real entry point
// is architecture-specific assembly (kernelEntry in entry_amd64.s, reached
// from boot/x86_64's stage2, or kernelEntry in internal/hal/arm64's
// entry_arm64.s, reached from the AArch64 firmware) that sets a stack
// and calls entryTrampoline before Go runtime init completes; func
// main below exists only so Go's build tooling has a package main to
// link — the real entry is called directly by assembly, never by main.
package main

func main() {
	entryTrampoline()
	for {
	}
}

// entryTrampoline is called from assembly with a live stack and nothing
// else set up. It runs the portable boot sequence and never returns.
func entryTrampoline() {
	run()
}
