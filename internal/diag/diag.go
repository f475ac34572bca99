// Package diag holds optional debugging aids: a live runtime stats page and
// object graph dumps of the machine.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

const (
	DefaultStatsAddr = "localhost:12600"
	statsPath        = "/debug/statsview"
)

// LaunchStats starts the statsview server in the background.
func LaunchStats(logger *log.Logger, addr string) {
	if addr == "" {
		addr = DefaultStatsAddr
	}
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()
	logger.Info("Stats server started", log.String("url", fmt.Sprintf("http://%s%s", addr, statsPath)))
}

// Dump writes a Graphviz description of v's object graph.
func Dump(w io.Writer, v any) {
	memviz.Map(w, v)
}

// DumpFile writes Dump output to path.
func DumpFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create graph file: %w", err)
	}
	Dump(f, v)
	return f.Close()
}
