package app

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"pewpager/internal/config"
	"pewpager/internal/runtime/supervisor"
	"pewpager/pkg/pager"
	logx "pewpager/pkg/logx"
)

type App struct {
	cfgPath string

	cfgm *config.ConfigManager
	sup  *supervisor.Supervisor

	log  logx.Logger
	logs *logx.Service

	// defaults holds the paginator settings of the current config.
	defaults atomic.Pointer[defaults]

	discord  *discordRunner
	telegram *telegramRunner
}

// defaults is the part of the config every command reads when it builds
// a paginator.
type defaults struct {
	opts pager.Options
	demo config.DemoConfig
}

func NewApp(cfgPath string) (*App, error) {
	cfgm := config.NewConfigManager(cfgPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, err
	}

	logSvc, log := logx.NewService(cfg.Logging.Logx())

	a := &App{
		cfgPath: cfgPath,
		cfgm:    cfgm,
		log:     log.With(logx.Component("app")),
		logs:    logSvc,
	}
	if err := a.applyDefaults(cfg); err != nil {
		return nil, err
	}

	if cfg.Discord.Enabled {
		a.discord, err = newDiscordRunner(cfg.Discord, a.pagerFor, log.With(logx.Component("discord")))
		if err != nil {
			return nil, err
		}
	}
	if cfg.Telegram.Enabled {
		a.telegram, err = newTelegramRunner(cfg.Telegram, a.pagerFor, log.With(logx.Component("telegram")))
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Done is closed when the app supervisor context is canceled (fatal error or Stop()).
func (a *App) Done() <-chan struct{} {
	if a.sup == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return a.sup.Context().Done()
}

// Err returns the first fatal error observed by the supervisor (if any).
func (a *App) Err() error {
	if a.sup == nil {
		return nil
	}
	return a.sup.Err()
}

func (a *App) Start(ctx context.Context) error {
	a.sup = supervisor.New(ctx, supervisor.WithLogger(a.log), supervisor.WithCancelOnError(true))

	a.cfgm.SetLogger(a.log.With(logx.Component("config")))

	if a.discord != nil {
		if err := a.discord.Start(a.sup.Context()); err != nil {
			return err
		}
	}
	if a.telegram != nil {
		if err := a.telegram.Start(a.sup.Context()); err != nil {
			return err
		}
	}

	a.sup.GoRestart("config.watch", a.cfgm.Watch, supervisor.WithRestartBackoff(time.Second, 30*time.Second))

	// hot reload config fan-out
	sub := a.cfgm.Subscribe(8)
	a.sup.Go0("config.reload", func(c context.Context) {
		defer a.cfgm.Unsubscribe(sub)
		lastApplied := a.cfgm.Get()
		for {
			select {
			case <-c.Done():
				return
			case newCfg, ok := <-sub:
				if !ok {
					return
				}
				// Coalesce bursts: keep only the latest config in the channel.
				for drained := false; !drained; {
					select {
					case newer := <-sub:
						if newer != nil {
							newCfg = newer
						}
					default:
						drained = true
					}
				}
				a.applyConfig(lastApplied, newCfg)
				lastApplied = newCfg
			}
		}
	})

	a.log.Info("started",
		logx.Bool("discord", a.discord != nil),
		logx.Bool("telegram", a.telegram != nil),
		logx.String("config", a.cfgPath),
	)
	return nil
}

// applyConfig pushes a committed config into the running components.
// Tokens and platform toggles only take effect after a restart.
func (a *App) applyConfig(old, cfg *config.Config) {
	sections, fields := config.SummarizeConfigChange(old, cfg)
	if len(sections) == 0 {
		a.log.Debug("config reload received, but no effective changes detected")
		return
	}
	a.log.Debug("config change summary", append([]logx.Field{logx.String("changed", strings.Join(sections, ","))}, fields...)...)

	if config.RestartRequired(old, cfg) {
		a.log.Warn("platform config changed; restart required for changes to take effect")
	}

	if a.logs != nil {
		a.logs.Apply(cfg.Logging.Logx())
	}
	if err := a.applyDefaults(cfg); err != nil {
		a.log.Warn("invalid pager config; keeping previous", logx.Err(err))
	}
	if a.discord != nil {
		a.discord.Apply(cfg.Discord)
	}
	if a.telegram != nil {
		a.telegram.SetClickRate(cfg.Telegram.ClickRate, cfg.Telegram.ClickBurst)
	}
}

func (a *App) applyDefaults(cfg *config.Config) error {
	opts, err := cfg.Pager.Options()
	if err != nil {
		return err
	}
	a.defaults.Store(&defaults{opts: opts, demo: cfg.Pager.Demo})
	return nil
}

// pagerFor builds the demo paginator for one command invocation.
func (a *App) pagerFor(h pager.Handle, args []string, log logx.Logger) (*pager.Paginator, error) {
	d := a.defaults.Load()
	req, err := parseDemoArgs(args)
	if err != nil {
		return nil, err
	}
	return newDemoPager(h, d.opts, d.demo, req, log)
}

func (a *App) Stop(ctx context.Context) error {
	a.log.Info("stopping")

	var errs []error
	if a.telegram != nil {
		if err := a.telegram.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.discord != nil {
		if err := a.discord.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.sup != nil {
		if err := a.sup.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.logs != nil {
		_ = a.logs.Close()
	}
	return errors.Join(errs...)
}
