package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kvisle/taskbridge/shared/config"
)

var (
	// Version is the version of the CLI
	Version = "unknown"

	// GitCommit is the commit that the CLI was built from
	GitCommit = "unknown"

	// BuildDate is the date the CLI was built
	BuildDate = "unknown"
)

type globalOptions struct {
	LogLevel LogLevel
	APIURL   string
}

func NewRootCmd() *cobra.Command {
	options := globalOptions{}
	cmd := &cobra.Command{
		Use:   "taskbridge",
		Short: "Taskbridge: track tasks through your automation workflow.",
		Long:  figure.NewColorFigure("taskbridge", "standard", "blue", true).String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			options.LogLevel = resolveLogLevel(cmd, &options)
			slog.SetDefault(slog.New(slog.NewJSONHandler(setupLogSink(cmd.Context(), cmd.OutOrStdout()), &slog.HandlerOptions{
				Level: options.LogLevel.SlogLevel(),
			})))

			cmd.SetContext(context.WithValue(cmd.Context(), ContextKeyAPIURL, resolveAPIURL(cmd, &options)))
			return nil
		},
	}

	cmd.PersistentFlags().Var(&options.LogLevel, "log-level", "set the log level")
	cmd.PersistentFlags().StringVar(&options.APIURL, "api-url", "", "base URL of the taskbridge API (overrides TASKBRIDGE_API_URL)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewTaskCmd())
	cmd.AddCommand(NewMessageCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewHealthCmd())

	return cmd
}

func Execute() {
	sentryEnabled := false
	if dsn := os.Getenv("TASKBRIDGE_SENTRY_DSN"); dsn != "" {
		err := sentry.Init(sentry.ClientOptions{Dsn: dsn})
		if err != nil {
			fmt.Printf("failed to initialize sentry: %s\n", err)
		} else {
			sentryEnabled = true
		}
	}

	defer func() {
		if r := recover(); r != nil {
			if sentryEnabled {
				sentry.CurrentHub().Recover(r)
				sentry.Flush(2 * time.Second)
			}
			fmt.Fprintf(os.Stderr, "Panic occurred: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if sentryEnabled {
			sentry.CaptureException(err)
			sentry.Flush(2 * time.Second)
		}
		os.Exit(1)
	}

	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}

func resolveAPIURL(cmd *cobra.Command, options *globalOptions) string {
	if cmd.Flags().Changed("api-url") {
		return options.APIURL
	}

	if envValue := os.Getenv("TASKBRIDGE_API_URL"); envValue != "" {
		return envValue
	}

	return config.DefaultAPIURL
}

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func (e *LogLevel) String() string {
	if e == nil {
		return ""
	}
	return string(*e)
}

func (e *LogLevel) Set(v string) error {
	for _, level := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError} {
		if v == string(level) {
			*e = level
			return nil
		}
	}
	return errors.New(`must be one of "debug", "info", "warn", or "error"`)
}

func (e *LogLevel) Type() string {
	return "log-level"
}

func (e *LogLevel) SlogLevel() slog.Level {
	switch *e {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	}

	return slog.LevelInfo
}

func resolveLogLevel(cmd *cobra.Command, options *globalOptions) LogLevel {
	if cmd.Flags().Changed("log-level") {
		return options.LogLevel
	}

	switch os.Getenv("TASKBRIDGE_LOG_LEVEL") {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn":
		return LogLevelWarn
	case "error":
		return LogLevelError
	}
	return LogLevelInfo
}

func setupLogSink(ctx context.Context, stdout io.Writer) io.Writer {
	if disable, ok := ctx.Value(ContextKeyDisableFileLogs).(bool); ok && disable {
		return stdout
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return stdout
	}

	fileLogger := &lumberjack.Logger{
		Filename:   filepath.Join(homeDir, ".taskbridge", "logs", "taskbridge.json"),
		MaxSize:    50,
		MaxAge:     7,
		MaxBackups: 3,
		Compress:   true,
	}
	return io.MultiWriter(stdout, fileLogger)
}
