package ports

import "go.trai.ch/strata/internal/core/domain"

// StageLoader reads stage descriptions.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type StageLoader interface {
	// Load reads the stage file at path.
	Load(path string) (*domain.StageDescription, error)
}
