package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"
)

// HealthStatus 헬스체크 응답 구조체
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Version   string    `json:"version"`
	GoVersion string    `json:"go_version"`
	Memory    string    `json:"memory_usage"`
	Storage   string    `json:"storage"`
}

var startTime = time.Now()

// StartHealthServer 헬스체크 HTTP 서버를 시작합니다.
// storageCheck는 nil이어도 되며, 주어지면 저장소 연결 상태가 응답에 포함됩니다.
func StartHealthServer(port string, storageCheck func() error) {
	if port == "" {
		port = "8080"
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		healthHandler(w, r, storageCheck)
	}
	http.HandleFunc("/health", handler)
	http.HandleFunc("/", handler) // Railway의 기본 헬스체크

	go func() {
		fmt.Printf("Health check server starting on port %s\n", port)
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			fmt.Printf("Health server error: %v\n", err)
		}
	}()
}

// healthHandler 헬스체크 핸들러
func healthHandler(w http.ResponseWriter, r *http.Request, storageCheck func() error) {
	w.Header().Set("Content-Type", "application/json")

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	storageStatus := "unknown"
	httpStatus := http.StatusOK
	if storageCheck != nil {
		if err := storageCheck(); err != nil {
			storageStatus = fmt.Sprintf("unhealthy: %v", err)
			httpStatus = http.StatusServiceUnavailable
		} else {
			storageStatus = "healthy"
		}
	}

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    time.Since(startTime).String(),
		Version:   "v2.0.0",
		GoVersion: runtime.Version(),
		Memory:    fmt.Sprintf("%.2f MB", float64(memStats.Alloc)/1024/1024),
		Storage:   storageStatus,
	}
	if httpStatus != http.StatusOK {
		status.Status = "degraded"
	}

	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(status)
}
