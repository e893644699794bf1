// Package observability owns the process-wide telemetry: Uptrace traces and
// logs, Pyroscope continuous profiling and the loopback pprof listener.
package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"runtime"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/config"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
	crerr "github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/uptrace/uptrace-go/uptrace"
)

const (
	mutexProfileFraction = 5
	blockProfileRateNs   = int(10 * time.Millisecond)
)

type stopper struct {
	name string
	stop func(context.Context) error
}

// Stack is the set of telemetry components started for one process. Shutdown
// stops them in reverse start order.
type Stack struct {
	logger    *logging.Logger
	stoppers  []stopper
	debugAddr string
}

// Start brings up every component the config enables. A component that fails
// to start tears down the ones before it.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger}

	s.startUptrace(cfg)
	for _, start := range []func(config.Config) error{s.startPyroscope, s.startPprof} {
		if err := start(cfg); err != nil {
			_ = s.Shutdown(context.Background())
			return nil, err
		}
	}
	return s, nil
}

// Components lists the started components in start order.
func (s *Stack) Components() []string {
	names := make([]string, 0, len(s.stoppers))
	for _, st := range s.stoppers {
		names = append(names, st.name)
	}
	return names
}

// DebugAddr is the bound pprof address, empty when pprof is off.
func (s *Stack) DebugAddr() string {
	return s.debugAddr
}

func (s *Stack) Shutdown(ctx context.Context) error {
	var combined error
	for i := len(s.stoppers) - 1; i >= 0; i-- {
		st := s.stoppers[i]
		if err := st.stop(ctx); err != nil {
			combined = crerr.CombineErrors(combined, crerr.Wrapf(err, "stop %s", st.name))
			continue
		}
		s.logger.Info("telemetry component stopped", "component", st.name)
	}
	s.stoppers = nil
	return combined
}

func (s *Stack) startUptrace(cfg config.Config) {
	logging.SetMirror(nil)
	switch {
	case !cfg.UptraceEnabled:
		s.logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		s.logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	if cfg.UptraceLogsEnabled {
		logging.SetMirror(newUptraceLogMirror(cfg.ServiceVersion))
	}

	s.stoppers = append(s.stoppers, stopper{name: "uptrace", stop: func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}})
	s.logger.Info("uptrace enabled", "logs_enabled", cfg.UptraceLogsEnabled)
}

func (s *Stack) startPyroscope(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		s.logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil
	}

	// Mutex and block profiles stay empty unless the runtime samples them.
	runtime.SetMutexProfileFraction(mutexProfileFraction)
	runtime.SetBlockProfileRate(blockProfileRateNs)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockDuration,
		},
	})
	if err != nil {
		return crerr.Wrap(err, "start pyroscope")
	}

	s.stoppers = append(s.stoppers, stopper{name: "pyroscope", stop: func(context.Context) error {
		runtime.SetMutexProfileFraction(0)
		runtime.SetBlockProfileRate(0)
		return profiler.Stop()
	}})
	s.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

// startPprof binds before returning so a taken port fails startup instead of
// being logged from a goroutine.
func (s *Stack) startPprof(cfg config.Config) error {
	if !cfg.PprofEnabled {
		s.logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return crerr.Wrapf(err, "listen pprof on %s", cfg.PprofAddr)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("pprof server failed", "error", err)
		}
	}()

	s.debugAddr = ln.Addr().String()
	s.stoppers = append(s.stoppers, stopper{name: "pprof", stop: srv.Shutdown})
	s.logger.Info("pprof server listening", "addr", s.debugAddr)
	return nil
}
