package internal

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

type healthReport struct {
	Status     string  `json:"status"`
	PID        int     `json:"pid"`
	PidStatus  string  `json:"pidStatus"`
	CPUPercent float64 `json:"cpuPercent"`
	RAMBytes   uint64  `json:"ramBytes"`
	UptimeSecs int64   `json:"uptimeSeconds"`
}

// HealthHandler reports liveness plus the process's own technical metrics
// (memory, CPU, OS status).
func HealthHandler() http.HandlerFunc {
	started := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		report := healthReport{
			Status:     "ok",
			PID:        os.Getpid(),
			UptimeSecs: int64(time.Since(started).Seconds()),
		}

		if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
			if memInfo, err := p.MemoryInfo(); err == nil {
				report.RAMBytes = memInfo.RSS
			}
			if cpuPercent, err := p.CPUPercent(); err == nil {
				report.CPUPercent = cpuPercent
			}
			if status, err := p.Status(); err == nil {
				report.PidStatus = status
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(report)
	}
}
