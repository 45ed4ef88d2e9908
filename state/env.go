// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mdbc/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by build subcommand
	Overwrite bool
	KeepTemp  bool

	start         time.Time
	restoreStdLog func()
	closeLog      func() error
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// SetLogger installs logger together with function releasing its resources.
func (e *LocalEnv) SetLogger(log *zap.Logger, closer func() error) {
	e.Log, e.closeLog = log, closer
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

// RestoreStdLog undoes standard log redirection and releases logger
// resources. Logger must not be used after that.
func (e *LocalEnv) RestoreStdLog() error {
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
	if e.closeLog != nil {
		closer := e.closeLog
		e.closeLog = nil
		return closer()
	}
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	return nil
}
