package log

import (
	"time"

	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const sentryFlushTimeout = 2 * time.Second

// SentrySettings represents the configuration required to bootstrap Sentry.
type SentrySettings struct {
	DSN         string
	Environment string
	Release     string
}

// InitSentry forwards error-level logrus entries to Sentry. The hook is the only path events take,
// so callers report failures by logging them. An empty DSN disables Sentry and returns a no-op flush.
func InitSentry(logger *logrus.Logger, settings SentrySettings) (func(), error) {
	if settings.DSN == "" {
		return func() {}, nil
	}
	if logger == nil {
		return nil, eris.New("logger is required to report to sentry")
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              settings.DSN,
		Environment:      settings.Environment,
		Release:          settings.Release,
		AttachStacktrace: true,
		EnableLogs:       true,
	})
	if err != nil {
		return nil, eris.Wrap(err, "error initializing sentry client")
	}

	hook := sentrylogrus.NewLogHookFromClient([]logrus.Level{
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}, client)
	logger.AddHook(hook)

	flush := func() {
		client.Flush(sentryFlushTimeout)
	}

	return flush, nil
}
