package http

import (
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archdesign/internal/projects/store"
)

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	store *store.Store
	log   *zap.Logger
}

func New(s *store.Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: s, log: log}
}
