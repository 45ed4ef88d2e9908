package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLoggingPrepare_FileLog(t *testing.T) {
	dir := t.TempDir()
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: filepath.Join(dir, "build.log"), Mode: "overwrite"},
	}
	defer debug.SetCrashOutput(nil, debug.CrashOptions{})

	log, closer, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	log.Debug("Walking sources", zap.String("lang", "en"))
	log.Info("Writing markdown file")
	if err := closer(); err != nil {
		t.Fatalf("closer() error: %v", err)
	}

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("unable to read log: %v", err)
	}
	for _, want := range []string{"Walking sources", "Writing markdown file", `"lang": "en"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log does not contain %q:\n%s", want, data)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "mdbc-panic.log")); err != nil {
		t.Errorf("panic log was not created: %v", err)
	}
}

func TestLoggingPrepare_Append(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "build.log")
	if err := os.WriteFile(dst, []byte("previous run\n"), 0644); err != nil {
		t.Fatal(err)
	}
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: dst, Mode: "append"},
	}
	defer debug.SetCrashOutput(nil, debug.CrashOptions{})

	log, closer, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	log.Debug("not written")
	log.Info("current run")
	if err := closer(); err != nil {
		t.Fatalf("closer() error: %v", err)
	}

	data, _ := os.ReadFile(dst)
	s := string(data)
	if !strings.HasPrefix(s, "previous run\n") || !strings.Contains(s, "current run") {
		t.Errorf("unexpected log content:\n%s", s)
	}
	if strings.Contains(s, "not written") {
		t.Error("debug message written at normal level")
	}
}

func TestLoggingPrepare_NoFile(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none"},
	}
	log, closer, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	log.Info("discarded")
	if err := closer(); err != nil {
		t.Errorf("closer() error: %v", err)
	}
}

func TestConsoleEncoder_DropsVerboseErrors(t *testing.T) {
	enc := newEncoder(zap.NewDevelopmentEncoderConfig())
	err := errors.Join(errors.New("first"), errors.New("second"))

	buf, e := enc.EncodeEntry(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "build failed"}, []zapcore.Field{zap.Error(err)})
	if e != nil {
		t.Fatalf("EncodeEntry() error: %v", e)
	}
	defer buf.Free()
	if strings.Contains(buf.String(), "errorVerbose") {
		t.Errorf("verbose error was not dropped: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "first") {
		t.Errorf("error message is missing: %s", buf.String())
	}
}
