package cmdflow

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "cmdflow",
		Level:           level,
		ReportTimestamp: true,
	})
}

type loggingMiddleware struct{}

func (m *loggingMiddleware) Invoke(ctx context.Context, c *CommandContext, next CommandDelegate) error {
	start := time.Now()
	c.Logger.Debug("executing", "input", c.RawArgs)

	err := next(ctx, c)

	elapsed := time.Since(start)
	switch {
	case err != nil:
		c.Logger.Error("execution aborted", "input", c.RawArgs, "duration", elapsed, "err", err)
	case c.Result != nil && !c.Result.Success():
		c.Logger.Info("execution failed", "input", c.RawArgs, "result", c.Result.Kind(), "reason", c.Result.Reason(), "duration", elapsed)
	case c.Result != nil:
		c.Logger.Debug("executed", "command", c.Command, "result", c.Result.Kind(), "duration", elapsed)
	}

	return err
}
