//go:build arm64

package main

import (
	"noxiom/internal/hal/arm64"
	"noxiom/internal/kernel"
)

func run() {
	kernel.Run(arm64.NewBackend())
}
