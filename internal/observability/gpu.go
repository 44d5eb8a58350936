package observability

import (
	"context"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// GPUInfo reports best-effort GPU utilization. Available is false when
// nvidia-smi is missing or fails; that is not an error condition.
type GPUInfo struct {
	Available     bool    `json:"available"`
	UsagePercent  int     `json:"usage_percent"`
	MemoryUsedGB  float64 `json:"memory_used_gb"`
	MemoryTotalGB float64 `json:"memory_total_gb"`
}

// ProbeGPU queries nvidia-smi for utilization and memory figures.
func ProbeGPU(ctx context.Context) GPUInfo {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "nvidia-smi",
		"--query-gpu=utilization.gpu,memory.used,memory.total",
		"--format=csv,noheader,nounits").Output()
	if err != nil {
		return GPUInfo{}
	}

	parts := strings.Split(strings.TrimSpace(string(out)), ", ")
	if len(parts) < 3 {
		return GPUInfo{}
	}

	usage, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	usedMiB, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	totalMiB, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return GPUInfo{}
	}

	return GPUInfo{
		Available:     true,
		UsagePercent:  usage,
		MemoryUsedGB:  roundGB(usedMiB),
		MemoryTotalGB: roundGB(totalMiB),
	}
}

func roundGB(mib int) float64 {
	return math.Round(float64(mib)/1024*10) / 10
}
