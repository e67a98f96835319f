// Package monitor provides the ambient observability surface: periodic
// CPU/memory sampling logged at debug level, the single-process
// analogue of framework/game/monitor.go's Monitor.Report loop (which
// reported to etcd; there is no registry here, so the log is the
// report target), plus an optional statsviz debug endpoint mirroring
// how the teacher's service binaries mount it behind their metrics
// port.
package monitor

import (
	"context"
	"net/http"
	"time"

	"github.com/arl/statsviz"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"mahjongcore/internal/mjlog"
)

// Report samples system-wide CPU and memory usage every interval until
// ctx is canceled, matching Monitor.Report's ticker/select loop.
func Report(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pct, err := cpu.Percent(0, false)
			if err != nil {
				mjlog.Debug("monitor: cpu sample failed", "err", err)
				continue
			}
			vm, err := mem.VirtualMemory()
			if err != nil {
				mjlog.Debug("monitor: mem sample failed", "err", err)
				continue
			}
			cpuPct := 0.0
			if len(pct) > 0 {
				cpuPct = pct[0]
			}
			mjlog.Debug("load sample", "cpu_pct", cpuPct, "mem_used_pct", vm.UsedPercent)
		}
	}
}

// ServeDebug mounts a statsviz goroutine/heap dashboard on addr and
// blocks until ctx is canceled. A blank addr disables the endpoint
// entirely; it is an optional ops aid, not part of the game protocol.
func ServeDebug(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return err
	}
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	mjlog.Info("debug metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
