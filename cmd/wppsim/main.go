package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matheus3301/wppsim/internal/api"
	"github.com/matheus3301/wppsim/internal/app"
	"github.com/matheus3301/wppsim/internal/delivery"
	"github.com/matheus3301/wppsim/internal/lock"
	"github.com/matheus3301/wppsim/internal/session"
	"github.com/matheus3301/wppsim/internal/status"
	"github.com/matheus3301/wppsim/internal/tui"
	"github.com/matheus3301/wppsim/internal/tui/model"
	"go.uber.org/fx"
)

func main() {
	sessionFlag := flag.String("session", "", "session name (overrides config default)")
	flag.Parse()

	sessionName := session.Resolve(*sessionFlag)
	if err := session.ValidateName(sessionName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(sessionName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(sessionName string) error {
	var (
		chats    *api.ChatService
		messages *api.MessageService
		machine  *status.Machine
		engine   *delivery.Engine
	)
	fxApp := fx.New(
		app.Options(app.Params{SessionName: sessionName, Owner: "wppsim"}),
		fx.Populate(&chats, &messages, &machine, &engine),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		var held *lock.LockHeldError
		if errors.As(err, &held) {
			return held
		}
		return fmt.Errorf("start session %q: %w", sessionName, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	vm := model.NewViewModel(sessionName, chats, messages, machine, engine)
	runErr := tui.NewApp(vm).Run(ctx)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStop()
	if err := fxApp.Stop(stopCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("stop session: %w", err))
	}
	return runErr
}
