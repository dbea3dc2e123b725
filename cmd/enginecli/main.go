// Command enginecli is the UCI-speaking engine binary: a stdin/stdout
// protocol loop plus an optional debug HTTP server exposing metrics and a
// health check.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime/pprof"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dafughes/chess/bitboard"
	"github.com/dafughes/chess/internal/boardfmt"
	"github.com/dafughes/chess/internal/config"
	applog "github.com/dafughes/chess/internal/log"
	"github.com/dafughes/chess/internal/metrics"
	"github.com/dafughes/chess/movegen"
	"github.com/dafughes/chess/position"
	"github.com/dafughes/chess/search"
	"github.com/dafughes/chess/uci"
)

var (
	configPath  = flag.String("config", "", "path to an optional TOML config file")
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	metricsAddr = flag.String("metrics-addr", "", "if set, serve /metrics and /healthz on this address")
	logLevel    = flag.String("log-level", "", "overrides the config file's log level")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, err := applog.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			logger.Fatal("create cpuprofile file", zap.Error(err))
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	bitboard.InitAttackTables()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	if *metricsAddr != "" {
		go serveDebug(*metricsAddr, reg, logger)
	}

	driver := &uci.Driver{
		Name:      cfg.Engine.Name,
		Author:    cfg.Engine.Author,
		Eval:      search.Material,
		Log:       logger,
		MaxDepth:  cfg.Search.DefaultMaxDepth,
		MovesToGo: cfg.Search.DefaultMovesToGo,
	}

	run(driver, m, logger)
}

// serveDebug runs the optional /metrics and /healthz HTTP listener. It
// never touches stdin/stdout, so it cannot corrupt the UCI protocol
// stream even if it panics or is slow.
func serveDebug(addr string, reg *prometheus.Registry, logger *zap.Logger) {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Error("debug server stopped", zap.Error(err))
	}
}

// run drives the UCI protocol loop. Stdin is read on its own goroutine
// and fed through a channel, and each "go" command is dispatched to a
// worker goroutine, so "stop" and "quit" lines are still handled while a
// search is in flight — with "go infinite" the stop token is the only
// thing that ever ends the search. Protocol text is always written with
// fmt directly to stdout, from this loop and from the OnInfo callback set
// here (which runs on the search goroutine); logger is reserved for
// diagnostics that must never appear on that stream.
func run(driver *uci.Driver, m *metrics.Metrics, logger *zap.Logger) {
	pos := position.Start()
	var stop uci.StopToken

	driver.OnInfo = func(res uci.SearchResult) {
		m.ObserveIteration(res.Nodes, res.Depth, res.Elapsed)
		fmt.Printf("info depth %d score cp %d nodes %d time %d pv %s\n",
			res.Depth, res.Score, res.Nodes, res.Elapsed.Milliseconds(), uci.FormatMoveText(res.BestMove))
	}

	lines := make(chan string)
	go func() {
		reader := bufio.NewScanner(os.Stdin)
		for reader.Scan() {
			lines <- reader.Text()
		}
		close(lines)
	}()

	// Buffered so an in-flight search can deliver its result even if the
	// loop has already returned on quit.
	results := make(chan uci.SearchResult, 1)
	searching := false
	var searchRoot position.Position

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				stop.Stop()
				return
			}
			cmd, err := uci.ParseCommand(line)
			if err != nil {
				logger.Warn("malformed command", zap.String("line", line), zap.Error(err))
				continue
			}

			switch cmd.Kind {
			case uci.CmdUCI:
				fmt.Printf("id name %s\n", driver.Name)
				fmt.Printf("id author %s\n", driver.Author)
				fmt.Println("uciok")
			case uci.CmdIsReady:
				fmt.Println("readyok")
			case uci.CmdQuit:
				stop.Stop()
				return
			case uci.CmdStop:
				stop.Stop()
			case uci.CmdDisplay:
				fmt.Print(boardfmt.Render(pos))
			case uci.CmdPosition:
				p, err := position.ParseFEN(cmd.FEN)
				if err != nil {
					logger.Warn("bad position", zap.Error(err))
					continue
				}
				for _, mtext := range cmd.Moves {
					mv, err := uci.ParseMoveText(p, mtext)
					if err != nil {
						logger.Warn("bad move in position command", zap.String("move", mtext), zap.Error(err))
						break
					}
					p = position.Apply(p, mv)
				}
				pos = p
			case uci.CmdPerft:
				nodes := driver.Perft(pos, cmd.PerftDepth)
				fmt.Printf("nodes %d\n", nodes)
			case uci.CmdGo:
				if searching {
					logger.Warn("search already in progress, ignoring go", zap.String("line", line))
					continue
				}
				stop.Reset()
				m.ObserveSearchStart()
				searching = true
				searchRoot = pos
				go func(p position.Position, params uci.SearchParams) {
					results <- driver.Go(p, params, &stop)
				}(pos, cmd.Search)
			}

		case result := <-results:
			searching = false
			m.AddNodes(result.Nodes)
			legalMoves := movegen.GenerateMoves(searchRoot)
			if result.BestMove.IsNull() && legalMoves.Len() == 0 {
				fmt.Println("bestmove (none)")
				continue
			}
			fmt.Printf("bestmove %s\n", uci.FormatMoveText(result.BestMove))
		}
	}
}
