// Command bench runs a synthetic workload against the cache and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	zapadapter "github.com/IvanBrykalov/ttlcache/log/zap"
	pmet "github.com/IvanBrykalov/ttlcache/metrics/prom"
)

func main() {
	// ---- Flags ----
	var (
		impl     = flag.String("impl", "ttlcache", "implementation: ttlcache | ristretto")
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")
		policy   = flag.String("policy", "lru", "eviction policy: lru | lfu | fifo | 2q")
		ttl      = flag.Duration("ttl", 5*time.Minute, "entry TTL")
		sweep    = flag.Duration("sweep", time.Minute, "sweep interval")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
		logLevel    = flag.String("log", "info", "log level: debug | info | warn | error")
	)
	flag.Parse()

	lvl, err := zap.ParseAtomicLevel(*logLevel)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	logger, err := zcfg.Build()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			logger.Info("pprof: serving", zap.String("addr", *pprofAddr))
			logger.Warn("pprof stopped", zap.Error(http.ListenAndServe(*pprofAddr, nil)))
		}()
	}

	// ---- Build cache ----
	cfg := benchConfig{
		impl:     *impl,
		policy:   *policy,
		capacity: *capacity,
		ttl:      *ttl,
		sweep:    *sweep,
	}
	cfg.opt.Logger = zapadapter.New(logger)
	if *metricsAddr != "" {
		cfg.opt.Metrics = pmet.New(nil, "ttlcache", "bench", nil)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info("metrics: serving", zap.String("addr", *metricsAddr))
			logger.Warn("metrics stopped", zap.Error(http.ListenAndServe(*metricsAddr, nil)))
		}()
	}
	c, err := newBackend(cfg)
	if err != nil {
		logger.Fatal("build cache", zap.Error(err))
	}
	defer func() { _ = c.Close() }()

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := *preload
	if pl == 0 {
		pl = *capacity / 2
	}
	for i := 0; i < pl; i++ {
		c.SetWithTTL("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i), *ttl)
	}

	// ---- Snapshot flags for goroutines ----
	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	ttlVal := *ttl
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var reads, writes, hits, misses, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					if _, ok := c.Get(keyByZipf()); ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					c.SetWithTTL(keyByZipf(), "v"+strconv.Itoa(localR.Int()), ttlVal)
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	hitsN := atomic.LoadUint64(&hits)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	logger.Info("bench done",
		zap.String("impl", *impl),
		zap.String("policy", *policy),
		zap.Int("cap", *capacity),
		zap.Int("workers", workersN),
		zap.Int("keys", *keys),
		zap.Duration("elapsed", elapsed),
		zap.Int64("seed", seedBase),
		zap.Uint64("ops", ops),
		zap.Float64("ops_per_sec", float64(ops)/elapsed.Seconds()),
		zap.Uint64("reads", readsN),
		zap.Uint64("writes", atomic.LoadUint64(&writes)),
		zap.Uint64("hits", hitsN),
		zap.Uint64("misses", atomic.LoadUint64(&misses)),
		zap.Float64("hit_rate_pct", hitRate),
		zap.Int("len", c.Len()),
	)
}
