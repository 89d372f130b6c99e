//go:build !unix

package main

import (
	"context"

	"stepface.dev/gui"
)

func watchOverlay(ctx context.Context, host *gui.Host) {}
