package services

import (
	"log"
	"sync"
	"time"

	"pos-backend/internal/metrics"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// MetricsCollector samples host CPU and memory into prometheus gauges so
// the till machine's health shows up next to the business counters.
type MetricsCollector struct {
	interval time.Duration
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		interval: 30 * time.Second,
		stopChan: make(chan struct{}),
	}
}

// Start launches the sampling loop
func (c *MetricsCollector) Start() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.sample()
		for {
			select {
			case <-ticker.C:
				c.sample()
			case <-c.stopChan:
				return
			}
		}
	}()
	log.Printf("[Metrics] system collector started (every %s)", c.interval)
}

// Stop halts the sampling loop and waits for it to finish
func (c *MetricsCollector) Stop() {
	close(c.stopChan)
	c.wg.Wait()
}

func (c *MetricsCollector) sample() {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		metrics.SystemCPUPercent.Set(percents[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.SystemMemoryPercent.Set(vm.UsedPercent)
	}
}
