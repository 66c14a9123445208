package pprof

import (
	"net/http"
	_ "net/http/pprof"
	"runtime"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Load addr为空时不开启pprof
func Load(addr string) {
	if addr == "" {
		return
	}
	runtime.SetMutexProfileFraction(1)
	runtime.SetBlockProfileRate(1)

	go func() {
		hlog.Infof("pprof listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			hlog.Errorf("pprof server stopped: %v", err)
		}
	}()
}
