// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notedesk/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogSignalReceived  = "shutdown signal received"
	LogContextCanceled = "shutdown triggered by context cancellation"
	LogHookFailed      = "shutdown hook failed"
	LogTimeoutExceeded = "shutdown timeout exceeded"
)

// Hook - функция, выполняемая при завершении приложения.
type Hook func(context.Context) error

// Wait блокирует выполнение до получения SIGINT/SIGTERM или отмены ctx,
// затем параллельно выполняет все хуки в рамках timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, LogContextCanceled)
	}

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, LogHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, LogTimeoutExceeded, zap.Duration("timeout", timeout))
	}
}
