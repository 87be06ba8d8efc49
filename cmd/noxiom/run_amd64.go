//go:build amd64

package main

import (
	"noxiom/internal/hal/amd64"
	"noxiom/internal/kernel"
)

func run() {
	kernel.Run(amd64.NewBackend())
}
