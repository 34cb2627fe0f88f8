package server

import (
	"github.com/go-chi/chi/v5"

	"github.com/aristath/goal-planner/internal/modules/portfolio"
	"github.com/aristath/goal-planner/internal/modules/risk"
	"github.com/aristath/goal-planner/internal/modules/simulation"
)

// setupAPIRoutes wires the portfolio, simulation and risk modules into the
// router. Simulation service construction validates the assumption set; a
// failure here is a fatal configuration error surfaced at startup.
func (s *Server) setupAPIRoutes() error {
	assumptions := simulation.Default()

	simulationService, err := simulation.NewService(assumptions, s.cfg.TrialCount, s.log)
	if err != nil {
		return err
	}

	var history *simulation.HistoryRepository
	if s.db != nil {
		history = simulation.NewHistoryRepository(s.db.Conn(), s.log)
	}

	simulationHandler := simulation.NewHandler(simulationService, history, s.log)
	portfolioHandler := portfolio.NewHandler(s.log)
	riskHandler := risk.NewHandler(risk.NewService(assumptions, s.log), s.log)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/asset-classes", portfolioHandler.HandleGetAssetClasses)
			r.Post("/new", portfolioHandler.HandleNewPortfolio)
			r.Post("/add", portfolioHandler.HandleAdd)
			r.Post("/add-with-allocation", portfolioHandler.HandleAddWithAllocation)
			r.Post("/add-asset-class", portfolioHandler.HandleAddAssetClass)
			r.Post("/summary", portfolioHandler.HandleSummary)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Post("/simulate", simulationHandler.HandleSimulate)
			r.Get("/runs", simulationHandler.HandleListRuns)
			r.Get("/runs/{id}", simulationHandler.HandleGetRun)
		})

		r.Route("/risk", func(r chi.Router) {
			r.Post("/assess", riskHandler.HandleAssess)
		})
	})

	return nil
}
