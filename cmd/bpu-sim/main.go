// Command bpu-sim drives a Bpu core against a simulated serial link,
// generating synthetic sensor/heartbeat/telemetry/command traffic on a
// period and periodically draining the link the way a receiving host
// would, so the coalescing and pacing behavior can be observed end to
// end without real hardware.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/behrlich/go-bpu"
	"github.com/behrlich/go-bpu/internal/logging"
	"github.com/behrlich/go-bpu/transport"
)

func main() {
	var (
		tickMs      = flag.Int("tick-ms", 10, "tick period in milliseconds")
		linkCap     = flag.Int("link-capacity", 256, "simulated outbound link buffer capacity in bytes")
		linkDrain   = flag.Int("link-drain", 64, "bytes drained from the link per tick by the simulated receiver")
		txBudget    = flag.Int("tx-budget", 128, "per-tick transmit byte budget")
		verbose     = flag.Bool("v", false, "verbose logging")
		durationSec = flag.Int("duration", 0, "stop after N seconds (0 = run until interrupted)")
	)
	flag.Parse()

	logConfig := logging.DefaultConfig()
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	logger := logging.NewLogger(logConfig)
	logging.SetDefault(logger)

	link := transport.NewSimLink(*linkCap, *linkDrain)

	cfg := bpu.DefaultConfig()
	cfg.TxBudgetBytes = uint16(*txBudget)

	metrics := bpu.NewMetrics()

	core, err := bpu.New(link, cfg, metrics)
	if err != nil {
		logger.Error("failed to initialize bpu", "error", err)
		os.Exit(1)
	}

	logger.Info("bpu-sim starting", "tick_ms", *tickMs, "link_capacity", *linkCap, "tx_budget", *txBudget)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	statsCh := make(chan os.Signal, 1)
	signal.Notify(statsCh, syscall.SIGUSR1)

	ticker := time.NewTicker(time.Duration(*tickMs) * time.Millisecond)
	defer ticker.Stop()

	var stopAt <-chan time.Time
	if *durationSec > 0 {
		stopAt = time.After(time.Duration(*durationSec) * time.Second)
	}

	rng := rand.New(rand.NewSource(1))
	var nowMs uint32

	for {
		select {
		case <-ticker.C:
			nowMs += uint32(*tickMs)

			generateTraffic(core, nowMs, rng)

			if err := core.Tick(nowMs); err != nil {
				logger.Error("tick failed", "error", err)
			}

			link.Drain()

		case <-statsCh:
			dumpStats(logger, core, metrics)

		case <-sigCh:
			logger.Info("received shutdown signal")
			dumpStats(logger, core, metrics)
			return

		case <-stopAt:
			logger.Info("duration elapsed, stopping")
			dumpStats(logger, core, metrics)
			return
		}
	}
}

// generateTraffic injects synthetic events shaped like a real MCU
// producer mix: frequent sensor samples, a steady heartbeat, occasional
// telemetry bursts, and rare commands.
func generateTraffic(core *bpu.Bpu, nowMs uint32, rng *rand.Rand) {
	if nowMs%20 == 0 {
		payload := []byte{byte(rng.Intn(256)), byte(rng.Intn(256))}
		_ = core.PushEvent(bpu.EventSensor, payload, nowMs)
	}
	if nowMs%500 == 0 {
		_ = core.PushEvent(bpu.EventHB, nil, nowMs)
	}
	if nowMs%1000 == 0 {
		payload := make([]byte, 24)
		rng.Read(payload)
		_ = core.PushEvent(bpu.EventTelem, payload, nowMs)
	}
	if rng.Intn(2000) == 0 {
		_ = core.PushEvent(bpu.EventCmd, []byte{0x01}, nowMs)
	}
}

func dumpStats(logger *logging.Logger, core *bpu.Bpu, metrics *bpu.Metrics) {
	st, err := core.GetStats()
	if err != nil {
		logger.Error("get stats failed", "error", err)
		return
	}
	snap := metrics.Snapshot()
	fmt.Printf("tick=%d ev_in=%d ev_merge=%d job_in=%d job_merge=%d tx_frame_sent=%d tx_bytes=%d degrade_drop=%d degrade_requeue=%d\n",
		st.Tick, st.EvIn, st.EvMerge, st.JobIn, st.JobMerge, st.TxFrameSent, st.TxBytes, st.DegradeDrop, st.DegradeRequeue)
	fmt.Printf("frames_sent=%d frames_sent_bytes=%d backpressure_events=%d avg_work_us=%.1f max_work_us=%d\n",
		snap.FramesSent, snap.FramesSentBytes, snap.BackpressureEvents, snap.AvgWorkUs, snap.MaxWorkUs)
}
