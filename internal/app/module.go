package app

import (
	"context"

	"github.com/matheus3301/wppsim/internal/api"
	"github.com/matheus3301/wppsim/internal/bus"
	"github.com/matheus3301/wppsim/internal/config"
	"github.com/matheus3301/wppsim/internal/conversation"
	"github.com/matheus3301/wppsim/internal/delivery"
	"github.com/matheus3301/wppsim/internal/lock"
	"github.com/matheus3301/wppsim/internal/logging"
	"github.com/matheus3301/wppsim/internal/persist"
	"github.com/matheus3301/wppsim/internal/seed"
	"github.com/matheus3301/wppsim/internal/session"
	"github.com/matheus3301/wppsim/internal/status"
	"github.com/matheus3301/wppsim/internal/store"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Params holds the resolved session configuration passed to the fx module.
type Params struct {
	SessionName string
	Owner       string         // program holding the session lock
	Console     bool           // also log warnings to stderr
	Dir         string         // optional override for testing; empty = use default
	Config      *config.Config // optional; nil = load from the config file
}

func (p Params) layout() session.Layout {
	if p.Dir != "" {
		return session.Layout{Dir: p.Dir}
	}
	return session.For(p.SessionName)
}

// Module returns the fx module for one session, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("wppsim",
		fx.Supply(p),
		fx.Provide(
			provideLayout,
			provideConfig,
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideStore,
			provideSeed,
			provideAdapter,
			provideConversationStore,
			provideMirror,
			provideEngine,
			provideChatService,
			provideMessageService,
		),
		fx.Invoke(registerLifecycle),
	)
}

// Options returns Module together with an fx event logger writing to the
// session log, so fx never prints to the terminal.
func Options(p Params) fx.Option {
	return fx.Options(
		Module(p),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: logger.Named("fx")}
			l.UseLogLevel(zap.DebugLevel)
			return l
		}),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	if p.Config != nil {
		return p.Config.WithDefaults(), nil
	}
	return config.LoadOrDefault(session.ConfigPath())
}

func provideLayout(p Params) (session.Layout, error) {
	l := p.layout()
	return l, l.Ensure()
}

func provideLogger(p Params, l session.Layout, cfg *config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Path:    l.LogPath(),
		Session: p.SessionName,
		Level:   cfg.LogLevel,
		Console: p.Console,
	})
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, layout session.Layout, logger *zap.Logger) (*lock.Lock, error) {
	logger.Info("acquiring session lock", zap.String("dir", layout.Dir))
	l, err := lock.Acquire(layout.Dir, p.Owner)
	if err != nil {
		return nil, err
	}
	logger.Info("session lock acquired", zap.String("path", l.Path()))
	return l, nil
}

// provideStore depends on the lock so the database is only opened by its
// holder. fx runs no stop hooks when construction fails, so a failure here
// releases the lock itself.
func provideStore(layout session.Layout, lk *lock.Lock, logger *zap.Logger) (db *store.DB, err error) {
	defer func() {
		if err != nil {
			if rerr := lk.Release(); rerr != nil {
				logger.Warn("error releasing lock", zap.Error(rerr))
			}
		}
	}()

	db, err = store.Open(layout.StateDB())
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed() {
		logger.Info("migrations applied", zap.Uint("from", result.From), zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", db.Path()), zap.Uint("schema", result.Version))
	return db, nil
}

func provideSeed() (seed.Dataset, error) {
	return seed.Load()
}

func provideAdapter(db *store.DB, logger *zap.Logger) *persist.Adapter {
	return persist.NewAdapter(db, logger.Named("persist"))
}

func provideConversationStore(adapter *persist.Adapter, ds seed.Dataset, m *status.Machine, b *bus.Bus, logger *zap.Logger) (*conversation.Store, error) {
	if err := m.Transition(status.Restoring); err != nil {
		return nil, err
	}
	fromSeed := false
	initial := adapter.Restore(func() conversation.State {
		fromSeed = true
		return ds.State()
	})
	logger.Info("conversation state restored",
		zap.Bool("from_seed", fromSeed),
		zap.Int("chats", len(initial.Chats)),
		zap.String("active_chat", initial.ActiveChatID))
	return conversation.NewStore(initial, b), nil
}

func provideMirror(adapter *persist.Adapter, st *conversation.Store, b *bus.Bus, logger *zap.Logger) *persist.Mirror {
	return persist.NewMirror(adapter, st, b, logger.Named("persist"))
}

func provideEngine(st *conversation.Store, cfg *config.Config, logger *zap.Logger) *delivery.Engine {
	replyMin, replyMax := cfg.Simulation.ReplyWindow()
	return delivery.NewEngine(st, delivery.Options{
		DeliveredAfter: cfg.Simulation.DeliveredAfter(),
		ReadAfter:      cfg.Simulation.ReadAfter(),
		ReplyMin:       replyMin,
		ReplyMax:       replyMax,
	}, logger.Named("delivery"))
}

func provideChatService(st *conversation.Store, b *bus.Bus, ds seed.Dataset, logger *zap.Logger) *api.ChatService {
	return api.NewChatService(st, b, ds.Me, ds.Contacts, logger)
}

func provideMessageService(st *conversation.Store, engine *delivery.Engine, logger *zap.Logger) *api.MessageService {
	return api.NewMessageService(st, engine, logger)
}

func registerLifecycle(lc fx.Lifecycle, machine *status.Machine, mirror *persist.Mirror, engine *delivery.Engine, db *store.DB, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Mirror state changes into the snapshot store.
			mirror.Start(context.Background())
			if err := machine.Transition(status.Ready); err != nil {
				return err
			}
			logger.Info("session ready")
			return nil
		},
		OnStop: func(_ context.Context) error {
			_ = machine.Transition(status.Stopping)

			// No dispatch may happen after the final flush.
			engine.Shutdown()
			mirror.Stop()

			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			_ = machine.Transition(status.Stopped)
			logger.Info("session stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
