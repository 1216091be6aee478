package frontend

import (
	"strata/internal/provider"
)

// EngineName is the registry key of this engine.
const EngineName = "strata"

// Engine creates strata programs.
type Engine struct{}

func (Engine) NewProgram(lib *provider.Library) (provider.EngineProgram, error) {
	return New(lib), nil
}

func init() {
	provider.Register(EngineName, func() (provider.Engine, error) {
		return Engine{}, nil
	})
}
