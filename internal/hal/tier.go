package hal

// Tiering thresholds, fixed by spec. Cases are evaluated in order; first
// match wins. Score has no side effects and never returns ArchUnknown-style
// "don't know" for the tier itself — unknown inputs collapse to Fallback.
const (
	highMinCores = 4
	highMinRAM   = 2 * 1024 * 1024 * 1024 // 2 GiB
	midMinCores  = 2
	midMinRAM    = 512 * 1024 * 1024 // 512 MiB
	lowMinRAM    = 128 * 1024 * 1024 // 128 MiB
)

// Score computes Tier from the already-filled fields of d. It is a pure
// function of cores and RAM: Score(d) == Score(d) for any repeated call
// against an unchanged descriptor, and it never allocates.
func Score(d Descriptor) Tier {
	if d.CPUCores == 0 || d.RAMBytes == 0 {
		return TierFallback
	}
	switch {
	case d.CPUCores >= highMinCores && d.RAMBytes >= highMinRAM:
		return TierHigh
	case d.CPUCores >= midMinCores && d.RAMBytes >= midMinRAM:
		return TierMid
	case d.RAMBytes >= lowMinRAM:
		return TierLow
	default:
		return TierFallback
	}
}
