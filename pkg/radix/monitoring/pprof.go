package monitoring

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/CVDpl/go-radix-trie/internal/common"
)

// StartPprofServer starts an HTTP server with pprof handlers bound to the provided address.
// Example address values: ":6060" or "127.0.0.1:6060".
// The listener is bound before returning, so a bad address fails here.
func StartPprofServer(addr string, logger common.Logger) (*http.Server, error) {
	logger = common.OrNull(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Addr:    ln.Addr().String(),
		Handler: mux,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server error", "error", err.Error(), "addr", srv.Addr)
		}
	}()
	logger.Info("pprof listening", "addr", srv.Addr)

	return srv, nil
}

// StopPprofServer gracefully shuts down the provided pprof HTTP server.
func StopPprofServer(ctx context.Context, srv *http.Server) error {
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
