// Package bootstrap arma las dependencias compartidas por los binarios a partir de la configuración.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain/analysis"
	domaininv "github.com/jhoicas/restaurant-analytics/internal/domain/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/memory"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/messaging"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/tabular"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/telegram"
	"github.com/jhoicas/restaurant-analytics/pkg/config"
	"github.com/jhoicas/restaurant-analytics/pkg/logger"
)

// Backend repositorios del backend elegido (postgres o memoria).
type Backend struct {
	TxRunner     inventory.TxRunner
	Items        repository.InventoryItemRepository
	Transactions repository.TransactionRepository
	Categories   repository.CategoryRepository
	Users        repository.UserRepository
	Datasets     repository.DatasetRepository
	close        func()
}

// Close libera las conexiones del backend.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// OpenBackend abre el backend configurado. En postgres aplica migraciones si DB_MIGRATE;
// en memoria carga el dataset analítico desde DATA_DIR (si falla, arranca vacío).
func OpenBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		store := memory.NewStore()
		ds, err := tabular.LoadDir(cfg.Storage.DataDir)
		if err != nil {
			log.Warn().Err(err).Str("dir", cfg.Storage.DataDir).Msg("dataset no cargado; se inicia vacío")
		}
		return &Backend{
			TxRunner:     store,
			Items:        store.InventoryItems(),
			Transactions: store.Transactions(),
			Categories:   store.Categories(),
			Users:        store.Users(),
			Datasets:     memory.NewDatasetStore(ds),
		}, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.Migrate {
			if err := postgres.Migrate(pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
		}
		return &Backend{
			TxRunner:     postgres.NewTxRunner(pool),
			Items:        postgres.NewInventoryItemRepository(pool),
			Transactions: postgres.NewTransactionRepository(pool),
			Categories:   postgres.NewCategoryRepository(pool),
			Users:        postgres.NewUserRepository(pool),
			Datasets:     postgres.NewDatasetRepository(pool),
			close:        pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("backend desconocido: %q", cfg.Storage.Backend)
}

// Policy umbrales de análisis desde la configuración.
func Policy(p config.PolicyConfig) analysis.Policy {
	return analysis.Policy{
		LeakageHighPct:      decimal.NewFromFloat(p.LeakageHighPct),
		LeakageWarningPct:   decimal.NewFromFloat(p.LeakageWarningPct),
		VarianceOverPct:     decimal.NewFromFloat(p.VarianceOverPct),
		VarianceUnderPct:    decimal.NewFromFloat(p.VarianceUnderPct),
		PriceAlertPct:       decimal.NewFromFloat(p.PriceAlertPct),
		PriceRisePct:        decimal.NewFromFloat(p.PriceRisePct),
		PriceDropPct:        decimal.NewFromFloat(p.PriceDropPct),
		TopPriceItems:       p.TopPriceItems,
		TopConsumptionItems: p.TopConsumptionItems,
	}
}

// Rules reglas de stock desde la configuración.
func Rules(p config.PolicyConfig) domaininv.Rules {
	r := domaininv.DefaultRules()
	if p.LowStockFraction > 0 {
		r.LowStockFraction = decimal.NewFromFloat(p.LowStockFraction)
	}
	if p.IssueTolerance >= 0 {
		r.IssueTolerance = decimal.NewFromFloat(p.IssueTolerance)
	}
	return r
}

// Notifier bot de Telegram si hay credenciales; si no, las alertas se descartan.
func Notifier(cfg config.TelegramConfig, log *logger.Logger) ports.Notifier {
	if !cfg.Enabled() {
		log.Info().Msg("telegram sin configurar: alertas desactivadas")
		return ports.NopNotifier{}
	}
	n, err := telegram.NewNotifier(cfg.BotToken, cfg.ChatID)
	if err != nil {
		log.Warn().Err(err).Msg("telegram no disponible: alertas desactivadas")
		return ports.NopNotifier{}
	}
	return n
}

// Publisher publicador Kafka si hay brokers. close siempre es invocable.
func Publisher(cfg config.KafkaConfig, log *logger.Logger) (pub ports.EventPublisher, closeFn func()) {
	if len(cfg.Brokers) == 0 {
		return ports.NopPublisher{}, func() {}
	}
	p := messaging.NewKafkaPublisher(cfg.Brokers, cfg.Topic)
	log.Info().Strs("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("publicando transacciones en kafka")
	return p, func() {
		if err := p.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar productor kafka")
		}
	}
}

// SeedUsers convierte los usuarios configurados al DTO del alta.
func SeedUsers(users []config.SeedUser) []dto.CreateUserRequest {
	out := make([]dto.CreateUserRequest, 0, len(users))
	for _, u := range users {
		out = append(out, dto.CreateUserRequest{Username: u.Username, Password: u.Password, Role: u.Role})
	}
	return out
}
