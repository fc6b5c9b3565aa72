package ifsc_integration_logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"github.com/tdewolff/minify/v2"
	minifyJSON "github.com/tdewolff/minify/v2/json"
	iiConfig "github.com/voxtmault/ifsc-integration/config"
	iiInterfaces "github.com/voxtmault/ifsc-integration/interfaces"
	iiModels "github.com/voxtmault/ifsc-integration/models"
	iiUtil "github.com/voxtmault/ifsc-integration/utils"
)

const (
	maxLoggedBody = 2048
	logBufferSize = 64
)

// NewSlog builds the application logger. Debug mode always logs at debug level.
func NewSlog(cfg *iiConfig.InternalConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	level := parseLevel(cfg.Level)
	if strings.Contains(strings.ToLower(cfg.Mode), "debug") {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EgressLogger receives egress logs on a channel and writes them from a single worker goroutine,
// keeping the lookup path free of log formatting work.
type EgressLogger struct {
	logChan chan *iiModels.EgressLog
	out     *slog.Logger
	logVal  *validator.Validate
	minify  *minify.M

	cancelFunc context.CancelFunc
	done       chan struct{}
	logMutex   sync.Mutex
	closed     bool
	dropped    atomic.Uint64
}

var _ iiInterfaces.EgressLogger = &EgressLogger{}

func InitLogger(out *slog.Logger) *EgressLogger {
	if out == nil {
		out = slog.Default()
	}

	m := minify.New()
	m.AddFunc("application/json", minifyJSON.Minify)

	ctx, cancel := context.WithCancel(context.Background())
	l := &EgressLogger{
		logChan:    make(chan *iiModels.EgressLog, logBufferSize),
		out:        out,
		logVal:     iiUtil.GetValidator(),
		minify:     m,
		cancelFunc: cancel,
		done:       make(chan struct{}),
	}

	// start the log worker
	go l.LogWorker(ctx)

	return l
}

// CloseLogger drains pending logs and stops the worker.
func (l *EgressLogger) CloseLogger() {
	l.logMutex.Lock()
	if l.closed {
		l.logMutex.Unlock()
		return
	}
	l.closed = true
	close(l.logChan)
	l.logMutex.Unlock()

	<-l.done
	l.cancelFunc()
}

func (l *EgressLogger) LogRequest(log *iiModels.EgressLog) {
	l.logMutex.Lock()
	defer l.logMutex.Unlock()

	if l.closed {
		slog.Debug("egress logger is closed, dropping log")
		return
	}

	// Never block the lookup on log output, a full buffer drops the entry.
	select {
	case l.logChan <- log:
	default:
		l.dropped.Add(1)
		slog.Debug("egress log buffer is full, dropping log")
	}
}

// Dropped returns how many logs were discarded because the buffer was full.
func (l *EgressLogger) Dropped() uint64 {
	return l.dropped.Load()
}

func (l *EgressLogger) LogWorker(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			slog.Debug("logger worker is stopped")
			return
		case log, ok := <-l.logChan:
			if !ok {
				return
			}
			if log == nil {
				slog.Warn("nil log received, skipping")
				continue
			}

			if log.EndAt.IsZero() {
				// Meaning that http request were never sent, skipping
				slog.Debug("end time is nill / zero, no http request is sent. skipping...")
				continue
			}

			if err := l.writeEgress(ctx, log); err != nil {
				slog.Error("failed to log egress", "reason", err)
			}
		}
	}
}

func (l *EgressLogger) writeEgress(ctx context.Context, log *iiModels.EgressLog) error {
	// Validate the obj before passing it to the core function
	if err := l.logVal.StructCtx(ctx, log); err != nil {
		return eris.Wrap(err, "invalid egress log")
	}

	log.Latency = log.EndAt.Sub(log.BeginAt).String()

	l.out.LogAttrs(ctx, slog.LevelInfo, "ifsc egress",
		slog.String("id", log.ID),
		slog.String("method", log.HTTPMethod),
		slog.String("uri", log.URI),
		slog.String("code", log.Code),
		slog.Int("response_code", log.ResponseCode),
		slog.String("latency", log.Latency),
		slog.String("outcome", log.Outcome),
		slog.String("response_body", l.compactBody(log.ResponseBody)),
	)

	return nil
}

// compactBody minifies JSON bodies and truncates anything longer than maxLoggedBody.
func (l *EgressLogger) compactBody(body string) string {
	if body == "" {
		return body
	}

	if out, err := l.minify.String("application/json", body); err == nil {
		body = out
	}

	if len(body) > maxLoggedBody {
		body = body[:maxLoggedBody] + "..."
	}

	return body
}
