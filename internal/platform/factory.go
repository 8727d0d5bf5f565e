package platform

import (
	"github.com/aretw0/notes/pkg/core"
)

// New wires the store file at path into a ready-to-use Service.
//
//	svc, err := notes.New("./notes.json", notes.WithReadOnly(true))
func New(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}

	// We also need to parse options here to get the logger for wiring
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(repo, o.logger), nil
}
