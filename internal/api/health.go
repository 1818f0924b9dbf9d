package api

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResponse represents a comprehensive health check response
type HealthCheckResponse struct {
	Status    HealthStatus           `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Version   string                 `json:"version"`
	GitCommit string                 `json:"git_commit,omitempty"`
	BuildTime string                 `json:"build_time,omitempty"`
	Uptime    string                 `json:"uptime"`
	Hash      string                 `json:"hash"`
	Checks    map[string]HealthCheck `json:"checks"`
	System    SystemInfo             `json:"system"`
	RequestID string                 `json:"request_id,omitempty"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status      HealthStatus `json:"status"`
	Message     string       `json:"message,omitempty"`
	LastChecked string       `json:"last_checked"`
	Duration    string       `json:"duration,omitempty"`
}

// SystemInfo contains system information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	GOMAXPROCS    int    `json:"gomaxprocs"`
	MemoryAlloc   uint64 `json:"memory_alloc_bytes"`
	MemoryTotal   uint64 `json:"memory_total_bytes"`
	MemorySys     uint64 `json:"memory_sys_bytes"`
	GCCycles      uint32 `json:"gc_cycles"`
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]HealthCheck{
		"parameters": s.checkParameters(),
		"features":   s.checkFeatures(),
	}
	overall := HealthStatusHealthy
	for _, c := range checks {
		if c.Status == HealthStatusUnhealthy {
			overall = HealthStatusUnhealthy
			break
		}
		if c.Status == HealthStatusDegraded {
			overall = HealthStatusDegraded
		}
	}

	response := HealthCheckResponse{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		Uptime:    time.Since(s.startTime).String(),
		Hash:      s.sketch.Host().Hash(),
		Checks:    checks,
		System:    getSystemInfo(),
		RequestID: middleware.GetReqID(r.Context()),
	}

	status := http.StatusOK
	if overall == HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, response)
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	check := s.checkParameters()
	ready := check.Status == HealthStatusHealthy

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, map[string]any{
		"ready":      ready,
		"message":    check.Message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"version":    Version,
		"request_id": middleware.GetReqID(r.Context()),
	})
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"alive":      true,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"version":    Version,
		"uptime":     time.Since(s.startTime).String(),
		"request_id": middleware.GetReqID(r.Context()),
	})
}

// checkParameters is unhealthy until the sketch has defined its parameters.
func (s *Server) checkParameters() HealthCheck {
	start := time.Now()
	n := len(s.sketch.Host().Definitions())

	status := HealthStatusHealthy
	message := fmt.Sprintf("%d parameters defined", n)
	if n == 0 {
		status = HealthStatusUnhealthy
		message = "No parameters defined"
	}
	return HealthCheck{
		Status:      status,
		Message:     message,
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

func (s *Server) checkFeatures() HealthCheck {
	start := time.Now()
	n := len(s.sketch.Host().FeaturesSnapshot())

	status := HealthStatusHealthy
	message := fmt.Sprintf("%d features defined", n)
	if n == 0 {
		status = HealthStatusDegraded
		message = "No features defined"
	}
	return HealthCheck{
		Status:      status,
		Message:     message,
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

func getSystemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
		MemoryAlloc:   m.Alloc,
		MemoryTotal:   m.TotalAlloc,
		MemorySys:     m.Sys,
		GCCycles:      m.NumGC,
	}
}
