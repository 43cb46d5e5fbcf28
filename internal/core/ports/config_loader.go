package ports

import "go.trai.ch/qworld/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers qworld.yaml from cwd, or reads explicitPath when it is not
	// empty, and returns the validated configuration.
	Load(cwd, explicitPath string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to find the directory containing qworld.yaml.
	DiscoverRoot(cwd string) (string, error)
}
