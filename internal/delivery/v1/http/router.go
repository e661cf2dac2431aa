package http

import (
	_ "github.com/DRSN-tech/match-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/match-backend/internal/usecase"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(matchUC usecase.MatchUC, profileUC usecase.ProfileUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		matchHandler := NewMatchHandler(matchUC, r.logger)
		profileHandler := NewProfileHandler(profileUC, r.logger)
		registerMatchRoutes(v1, matchHandler, profileHandler)
	})
}

func registerMatchRoutes(router chi.Router, matchHandler *MatchHandler, profileHandler *ProfileHandler) {
	router.Route("/seekers", func(sk chi.Router) {
		sk.Put("/{id}", profileHandler.saveSeekerProfile)
		sk.Get("/{id}/positions", matchHandler.rankPositions)
	})

	router.Route("/positions", func(ps chi.Router) {
		ps.Put("/{id}", profileHandler.savePositionProfile)
		ps.Get("/{id}/candidates", matchHandler.rankCandidates)
	})
}
