package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/Spok95/fuelstation/internal/domain/stock"
	"github.com/Spok95/fuelstation/internal/service"
)

// Scheduler раз в сутки пишет в лог сводку по проблемным остаткам.
// Статусы считаются на чтении; job ничего не мутирует.
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	log  *slog.Logger
}

func New(svc *service.Service, log *slog.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), svc: svc, log: log}
}

func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.scanStock)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) scanStock() {
	states, err := s.svc.ListStock(context.Background())
	if err != nil {
		s.log.Error("stock scan failed", "err", err)
		return
	}

	var low, critical int
	for _, st := range states {
		switch st.Status {
		case stock.StatusLow:
			low++
			s.log.Warn("stock low", "item", st.Item.Name, "qty", st.Item.QuantityOnHand)
		case stock.StatusCritical:
			critical++
			s.log.Warn("stock critical", "item", st.Item.Name, "qty", st.Item.QuantityOnHand)
		}
	}
	s.log.Info("daily stock scan complete", "items", len(states), "low", low, "critical", critical)
}
