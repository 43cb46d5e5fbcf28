// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/qworld/internal/adapters/cas"
	_ "go.trai.ch/qworld/internal/adapters/config"
	_ "go.trai.ch/qworld/internal/adapters/fs"
	_ "go.trai.ch/qworld/internal/adapters/logger"
	_ "go.trai.ch/qworld/internal/adapters/metrics"
	_ "go.trai.ch/qworld/internal/adapters/shell"
	_ "go.trai.ch/qworld/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/qworld/internal/app"
)
