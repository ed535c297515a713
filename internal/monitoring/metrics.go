package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type Metrics struct {
	mu              sync.RWMutex
	RequestCount    int64            `json:"request_count"`
	RequestDuration time.Duration    `json:"avg_request_duration_ms"`
	ActiveRequests  int64            `json:"active_requests"`
	ErrorCount      int64            `json:"error_count"`
	StatusCodes     map[string]int64 `json:"status_codes"`
	Endpoints       map[string]int64 `json:"endpoint_calls"`
	StartTime       time.Time        `json:"start_time"`
	LastRequest     time.Time        `json:"last_request"`
	totalDuration   time.Duration
}

type HealthCheck struct {
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	LastRun time.Time `json:"last_run"`
}

type HealthCheckFunc func(ctx context.Context) error

type HealthChecker struct {
	mu     sync.RWMutex
	checks map[string]HealthCheckFunc
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{checks: make(map[string]HealthCheckFunc)}
}

func (h *HealthChecker) Register(name string, check HealthCheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// Run executes all registered checks with a shared timeout and reports
// per-dependency status.
func (h *HealthChecker) Run(ctx context.Context) (bool, []HealthCheck) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	healthy := true
	results := make([]HealthCheck, 0, len(h.checks))
	for name, check := range h.checks {
		result := HealthCheck{Name: name, Status: "ok", LastRun: time.Now()}
		if err := check(ctx); err != nil {
			healthy = false
			result.Status = "failing"
			result.Message = err.Error()
		}
		results = append(results, result)
	}
	return healthy, results
}

var globalMetrics = &Metrics{
	StatusCodes: make(map[string]int64),
	Endpoints:   make(map[string]int64),
	StartTime:   time.Now(),
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		globalMetrics.mu.Lock()
		globalMetrics.ActiveRequests++
		globalMetrics.mu.Unlock()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		endpoint := c.Request.Method + " " + c.FullPath()

		globalMetrics.mu.Lock()
		globalMetrics.RequestCount++
		globalMetrics.ActiveRequests--
		globalMetrics.totalDuration += duration
		globalMetrics.RequestDuration = globalMetrics.totalDuration / time.Duration(globalMetrics.RequestCount)
		globalMetrics.LastRequest = time.Now()

		if statusCode >= 400 {
			globalMetrics.ErrorCount++
		}
		globalMetrics.StatusCodes[http.StatusText(statusCode)]++
		globalMetrics.Endpoints[endpoint]++
		globalMetrics.mu.Unlock()
	}
}

func MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		globalMetrics.mu.RLock()
		defer globalMetrics.mu.RUnlock()

		c.JSON(http.StatusOK, gin.H{
			"requests":       globalMetrics,
			"uptime":         time.Since(globalMetrics.StartTime).String(),
			"goroutines":     runtime.NumGoroutine(),
			"heap_alloc_mb":  memStats.HeapAlloc / 1024 / 1024,
			"total_alloc_mb": memStats.TotalAlloc / 1024 / 1024,
			"gc_runs":        memStats.NumGC,
		})
	}
}

func HealthHandler(checker *HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		healthy, checks := checker.Run(c.Request.Context())
		status := http.StatusOK
		overall := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}
		c.JSON(status, gin.H{
			"status": overall,
			"checks": checks,
		})
	}
}
