package app

import (
	"context"
	slotAPI "digit_slot/internal/api/slot"
	walletClient "digit_slot/internal/client/wallet"
	"digit_slot/internal/config"
	"digit_slot/internal/config/env"
	"digit_slot/internal/middleware"
	"digit_slot/internal/repository"
	"digit_slot/internal/repository/bet_repo"
	"digit_slot/internal/repository/rtp_state_repo"
	"digit_slot/internal/repository/wallet_repo"
	"digit_slot/internal/service"
	"digit_slot/internal/service/outcome"
	"digit_slot/internal/service/slot"
	"digit_slot/internal/service/wallet"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panjf2000/ants/v2"
)

const gameConfigPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Wallet bits
	walletCfg  config.WalletConfig
	walletRepo repository.WalletRepository
	betRepo    repository.BetRepository
	walletServ service.WalletService
	betHistory service.BetHistoryService

	// Background pool
	pool *ants.Pool

	// Slot bits
	slotCfg      config.SlotConfig
	roundCfg     config.RoundConfig
	jackpotCfg   config.JackpotConfig
	rtpStateRepo repository.RTPStateRepository
	engine       *outcome.Engine
	slotServ     service.SlotService
	slotHand     *slotAPI.Handler

	// Auth
	jwtCfg config.JWTConfig

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		err = repository.Migrate(ctx, dbc)
		if err != nil {
			panic("failed to migrate db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) WalletCfg() config.WalletConfig {
	if sp.walletCfg == nil {
		cfg, err := env.NewWalletConfig()
		if err != nil {
			panic("failed to get wallet config: " + err.Error())
		}
		sp.walletCfg = cfg
	}
	return sp.walletCfg
}

func (sp *ServiceProvider) WalletRepository(ctx context.Context) repository.WalletRepository {
	if sp.walletRepo == nil {
		sp.walletRepo = wallet_repo.NewWalletRepository(sp.DBClient(ctx))
	}
	return sp.walletRepo
}

func (sp *ServiceProvider) BetRepository(ctx context.Context) repository.BetRepository {
	if sp.betRepo == nil {
		sp.betRepo = bet_repo.NewBetRepository(sp.DBClient(ctx))
	}
	return sp.betRepo
}

// WalletService Локальный кошелек в Postgres или удаленный по REST, по WALLET_MODE
func (sp *ServiceProvider) WalletService(ctx context.Context) service.WalletService {
	if sp.walletServ == nil {
		cfg := sp.WalletCfg()
		switch cfg.Mode() {
		case config.WalletModeRemote:
			sp.walletServ = walletClient.NewClient(cfg.BaseURL(), cfg.Timeout())
		default:
			local := wallet.NewWalletService(sp.WalletRepository(ctx), sp.BetRepository(ctx), sp.TXManager(ctx), cfg.InitialBalance())
			sp.walletServ = local
			sp.betHistory = local
		}
	}
	return sp.walletServ
}

// BetHistory Журнал ставок, nil для удаленного кошелька
func (sp *ServiceProvider) BetHistory(ctx context.Context) service.BetHistoryService {
	sp.WalletService(ctx)
	return sp.betHistory
}

func (sp *ServiceProvider) Pool() *ants.Pool {
	if sp.pool == nil {
		pool, err := ants.NewPool(sp.WalletCfg().ReportPoolSize())
		if err != nil {
			panic("failed to create worker pool: " + err.Error())
		}
		sp.pool = pool
	}
	return sp.pool
}

func (sp *ServiceProvider) SlotCfg() config.SlotConfig {
	if sp.slotCfg == nil {
		cfg, err := env.NewSlotConfigFromYAML(gameConfigPath)
		if err != nil {
			panic("failed to get slot config: " + err.Error())
		}
		sp.slotCfg = cfg
	}
	return sp.slotCfg
}

func (sp *ServiceProvider) RoundCfg() config.RoundConfig {
	if sp.roundCfg == nil {
		cfg, err := env.NewRoundConfigFromYAML(gameConfigPath)
		if err != nil {
			panic("failed to get round config: " + err.Error())
		}
		sp.roundCfg = cfg
	}
	return sp.roundCfg
}

func (sp *ServiceProvider) JackpotCfg() config.JackpotConfig {
	if sp.jackpotCfg == nil {
		cfg, err := env.NewJackpotConfigFromYAML(gameConfigPath)
		if err != nil {
			panic("failed to get jackpot config: " + err.Error())
		}
		sp.jackpotCfg = cfg
	}
	return sp.jackpotCfg
}

func (sp *ServiceProvider) RTPStateRepository() repository.RTPStateRepository {
	if sp.rtpStateRepo == nil {
		cfg := sp.SlotCfg()
		sp.rtpStateRepo = rtp_state_repo.NewRTPStateRepository(cfg.RTPTarget(), cfg.RTPWindow(), cfg.RTPWindowSize())
	}
	return sp.rtpStateRepo
}

func (sp *ServiceProvider) Engine() *outcome.Engine {
	if sp.engine == nil {
		sp.engine = outcome.NewEngine(outcome.RulesFromConfig(sp.SlotCfg()), outcome.DefaultRNG(), sp.RTPStateRepository())
	}
	return sp.engine
}

func (sp *ServiceProvider) SlotService(ctx context.Context) service.SlotService {
	if sp.slotServ == nil {
		jackpot, err := slot.NewJackpot(sp.JackpotCfg())
		if err != nil {
			panic("failed to create jackpot: " + err.Error())
		}

		sp.slotServ = slot.NewSlotService(slot.Deps{
			Engine:      sp.Engine(),
			Wallet:      sp.WalletService(ctx),
			Runner:      sp.Pool(),
			SlotConfig:  sp.SlotCfg(),
			RoundConfig: sp.RoundCfg(),
			Jackpot:     jackpot,
		})
	}
	return sp.slotServ
}

func (sp *ServiceProvider) SlotHandler(ctx context.Context) *slotAPI.Handler {
	if sp.slotHand == nil {
		sp.slotHand = slotAPI.NewHandler(slotAPI.HandlerDeps{
			Serv:    sp.SlotService(ctx),
			History: sp.BetHistory(ctx),
		})
	}
	return sp.slotHand
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Slot endpoints
		slotHandler := sp.SlotHandler(ctx)
		r.Route("/slot", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))
			rr.Post("/join", slotHandler.Join)
			rr.Post("/leave", slotHandler.Leave)
			rr.Get("/state", slotHandler.State)
			rr.Post("/pick", slotHandler.Pick)
			rr.Post("/bet", slotHandler.Bet)
			rr.Get("/events", slotHandler.Events)
			rr.Get("/stats", slotHandler.Stats)
			if slotHandler.HasHistory() {
				rr.Get("/bets", slotHandler.Bets)
			}
		})

		sp.router = r
	}

	return sp.router
}

// Close Останавливает столы и освобождает ресурсы
func (sp *ServiceProvider) Close() {
	if sp.slotServ != nil {
		sp.slotServ.Close()
	}
	if sp.pool != nil {
		sp.pool.Release()
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
