package platform

import (
	"github.com/aretw0/bindery/pkg/core"
)

// New builds a ready-to-use corpus Service.
// The URI argument is adapter-specific (e.g., file path for 'fs').
//
//	svc, err := bindery.New("./docs", bindery.WithVersioning(false))
func New(uri string, opts ...Option) (*core.Service, error) {
	// 1. Initialize environment (Path, Git, Directories)
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	// Parse options again for service-level settings.
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	service := core.NewService(repo)
	if size, ok := o.config["event_buffer"].(int); ok {
		service.SetEventBuffer(size)
	}

	return service, nil
}
