package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pewpager/internal/app"
	logx "pewpager/pkg/logx"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config (json or yaml)")
	flag.Parse()

	boot := logx.NewConsole("info").With(logx.Component("main"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.NewApp(cfgPath)
	if err != nil {
		boot.Error("load app", logx.Err(err), logx.String("config", cfgPath))
		os.Exit(1)
	}

	if err := a.Start(ctx); err != nil {
		boot.Error("start", logx.Err(err))
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-a.Done():
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := a.Stop(stopCtx); err != nil {
		boot.Warn("stop", logx.Err(err))
	}
	if err := a.Err(); err != nil {
		boot.Error("exit", logx.Err(err))
		os.Exit(1)
	}
}
