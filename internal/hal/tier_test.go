package hal

import "testing"

func TestScoreBoundaries(t *testing.T) {
	const gib = 1024 * 1024 * 1024
	const mib = 1024 * 1024

	tests := []struct {
		name  string
		cores uint32
		ram   uint64
		want  Tier
	}{
		{"zero cores falls back", 0, 8 * gib, TierFallback},
		{"zero ram falls back", 8, 0, TierFallback},
		{"both zero falls back", 0, 0, TierFallback},
		{"high exact boundary", 4, 2 * gib, TierHigh},
		{"high plenty", 8, 8 * gib, TierHigh},
		{"just under high ram falls to mid", 4, 2*gib - 1, TierMid},
		{"just under high cores falls to mid", 3, 2 * gib, TierMid},
		{"mid exact boundary", 2, 512 * mib, TierMid},
		{"just under mid ram falls to low", 2, 512*mib - 1, TierLow},
		{"just under mid cores falls to low", 1, 512 * mib, TierLow},
		{"low exact boundary", 1, 128 * mib, TierLow},
		{"just under low falls back", 1, 128*mib - 1, TierFallback},
		{"single core tiny ram falls back", 1, mib, TierFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Descriptor{CPUCores: tt.cores, RAMBytes: tt.ram}
			if got := Score(d); got != tt.want {
				t.Errorf("Score(cores=%d, ram=%d) = %v, want %v", tt.cores, tt.ram, got, tt.want)
			}
		})
	}
}

func TestScorePure(t *testing.T) {
	d := Descriptor{CPUCores: 4, RAMBytes: 4 * 1024 * 1024 * 1024}
	a := Score(d)
	b := Score(d)
	if a != b {
		t.Errorf("Score is not pure: %v != %v", a, b)
	}
}

func TestScoreNeverUnknown(t *testing.T) {
	for cores := uint32(0); cores < 8; cores++ {
		for _, ram := range []uint64{0, 1, 128 * 1024 * 1024, 4 * 1024 * 1024 * 1024} {
			tier := Score(Descriptor{CPUCores: cores, RAMBytes: ram})
			if tier > TierHigh {
				t.Fatalf("Score returned out-of-range tier %v", tier)
			}
		}
	}
}

func TestScoreMonotone(t *testing.T) {
	// If A dominates B componentwise, tier_A must be >= tier_B.
	const gib = 1024 * 1024 * 1024
	cases := []Descriptor{
		{CPUCores: 0, RAMBytes: 0},
		{CPUCores: 1, RAMBytes: 128 * 1024 * 1024},
		{CPUCores: 2, RAMBytes: 512 * 1024 * 1024},
		{CPUCores: 4, RAMBytes: 2 * gib},
		{CPUCores: 8, RAMBytes: 8 * gib},
	}
	for i, a := range cases {
		for j, b := range cases {
			if a.CPUCores >= b.CPUCores && a.RAMBytes >= b.RAMBytes {
				if Score(a) < Score(b) {
					t.Errorf("monotonicity violated: case %d (%v)=%v dominates case %d (%v)=%v",
						i, a, Score(a), j, b, Score(b))
				}
			}
		}
	}
}
