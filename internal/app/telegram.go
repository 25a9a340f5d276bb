package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"pewpager/internal/config"
	pagertelegram "pewpager/pkg/pager/telegram"
	logx "pewpager/pkg/logx"
)

type telegramRunner struct {
	log      logx.Logger
	bot      *tele.Bot
	disp     *pagertelegram.Dispatcher
	newPager pagerFactory

	runMu   sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	runWG   sync.WaitGroup
	running bool
}

func newTelegramRunner(cfg config.TelegramConfig, newPager pagerFactory, log logx.Logger) (*telegramRunner, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  strings.TrimSpace(cfg.Token),
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeoutOrDefault()},
		OnError: func(err error, c tele.Context) {
			log.Warn("update handler failed", logx.Err(err))
		},
	})
	if err != nil {
		return nil, err
	}
	r := &telegramRunner{log: log, bot: b, newPager: newPager}
	r.disp = pagertelegram.NewDispatcher(b,
		pagertelegram.WithLogger(log),
		pagertelegram.WithClickRate(cfg.ClickRate, cfg.ClickBurst),
	)
	b.Handle("/"+pagesCommand, r.onPages)
	return r, nil
}

// SetClickRate forwards a reloaded throttle to the dispatcher.
func (r *telegramRunner) SetClickRate(perSec float64, burst int) {
	r.disp.SetClickRate(perSec, burst)
}

func (r *telegramRunner) onPages(c tele.Context) error {
	r.runMu.Lock()
	base := r.ctx
	r.runMu.Unlock()
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithTimeout(base, commandTimeout)
	defer cancel()

	log := r.log.With(logx.String("cmd", pagesCommand), logx.Int64("chat", c.Chat().ID))
	p, err := r.newPager(pagertelegram.FromContext(r.disp, c), c.Args(), log)
	if err != nil {
		return c.Reply(err.Error())
	}
	if _, err := p.Reply(ctx); err != nil {
		log.Warn("pages command failed", logx.Err(err))
	}
	return nil
}

func (r *telegramRunner) Start(ctx context.Context) error {
	r.runMu.Lock()
	if r.running {
		r.runMu.Unlock()
		return nil
	}
	r.running = true
	rctx, cancel := context.WithCancel(ctx)
	r.ctx, r.cancel = rctx, cancel
	r.runWG.Add(1)
	r.runMu.Unlock()

	if err := r.bot.SetCommands([]tele.Command{{Text: pagesCommand, Description: "Browse a paginated demo list"}}); err != nil {
		r.log.Warn("menu command update failed", logx.Err(err))
	}

	go func() {
		defer r.runWG.Done()
		// Ensure we stop telebot when context is cancelled.
		go func() {
			<-rctx.Done()
			r.bot.Stop()
		}()
		r.log.Info("polling started")
		r.bot.Start() // blocks until Stop() called
	}()
	return nil
}

func (r *telegramRunner) Stop(ctx context.Context) error {
	// Best-effort graceful stop. Never block shutdown for too long on Telegram long-poll.
	r.runMu.Lock()
	cancel := r.cancel
	r.cancel = nil
	wasRunning := r.running
	r.running = false
	r.runMu.Unlock()

	r.log.Info("stopping", logx.Int("active_paginators", r.disp.Active()))
	if !wasRunning {
		r.log.Debug("telegram stop called but not running")
		return nil
	}
	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		r.runWG.Wait()
		close(done)
	}()

	// Grace window: keep shutdown snappy even if getUpdates long-poll is still waiting.
	grace := 2 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if rem := time.Until(dl); rem > 0 && rem < grace {
			grace = rem
		}
	}
	t := time.NewTimer(grace)
	defer t.Stop()

	select {
	case <-done:
		r.log.Info("polling stopped")
		return nil
	case <-ctx.Done():
		r.log.Warn("telegram stop cancelled", logx.Err(ctx.Err()))
		return ctx.Err()
	case <-t.C:
		r.log.Warn("telegram stop grace elapsed; continuing shutdown")
		return nil
	}
}
