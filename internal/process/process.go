package process

import (
	"fmt"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Info describes one running process, read-only.
type Info struct {
	PID        int32     `json:"pid"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	CPUPercent float64   `json:"cpu_percent"`
	MemPercent float32   `json:"mem_percent"`
	MemRSS     uint64    `json:"mem_rss"`
	CreateTime time.Time `json:"create_time"`
}

// Snapshot lists the top resource consumers at one point in time.
type Snapshot struct {
	Processes []Info `json:"processes"`
	Total     int    `json:"total"`
}

// Top returns the n heaviest processes by CPU usage. Processes that vanish
// mid-enumeration are skipped; the agent never acts on any of them.
func Top(n int) (*Snapshot, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	infos := make([]Info, 0, len(procs))
	for _, p := range procs {
		info, err := readInfo(p)
		if err != nil {
			continue
		}
		infos = append(infos, *info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CPUPercent > infos[j].CPUPercent
	})

	total := len(infos)
	if n > 0 && n < len(infos) {
		infos = infos[:n]
	}

	return &Snapshot{Processes: infos, Total: total}, nil
}

func readInfo(p *process.Process) (*Info, error) {
	name, err := p.Name()
	if err != nil {
		return nil, err
	}

	username, _ := p.Username()
	cpuPercent, _ := p.CPUPercent()
	memPercent, _ := p.MemoryPercent()
	memInfo, _ := p.MemoryInfo()
	createTime, _ := p.CreateTime()

	var rss uint64
	if memInfo != nil {
		rss = memInfo.RSS
	}

	return &Info{
		PID:        p.Pid,
		Name:       name,
		Username:   username,
		CPUPercent: cpuPercent,
		MemPercent: memPercent,
		MemRSS:     rss,
		CreateTime: time.UnixMilli(createTime),
	}, nil
}
