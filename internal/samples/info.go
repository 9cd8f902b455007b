package samples

import (
	"context"
	"os"
	"runtime"

	"nebula/internal/command"
	"nebula/internal/command/schema"
)

// SystemInfo is the system section of the info payload.
type SystemInfo struct {
	Hostname string `json:"hostname"`
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	CPUs     int    `json:"cpus"`
}

// RuntimeInfo is the runtime section of the info payload.
type RuntimeInfo struct {
	GoVersion  string `json:"goVersion"`
	Goroutines int    `json:"goroutines"`
	GOMAXPROCS int    `json:"gomaxprocs"`
}

// MemoryInfo is the memory section of the info payload.
type MemoryInfo struct {
	AllocBytes      uint64 `json:"allocBytes"`
	TotalAllocBytes uint64 `json:"totalAllocBytes"`
	SysBytes        uint64 `json:"sysBytes"`
	NumGC           uint32 `json:"numGC"`
}

// Info holds the requested sections; unrequested ones are omitted.
type Info struct {
	System  *SystemInfo  `json:"system,omitempty"`
	Runtime *RuntimeInfo `json:"runtime,omitempty"`
	Memory  *MemoryInfo  `json:"memory,omitempty"`
}

func info() command.Registration {
	return command.Command("info", "Report process and host information",
		schema.New(
			schema.Array("include",
				schema.OneOf(InfoSections...),
				schema.Default([]string{"system"}),
				schema.Min(1),
				schema.Max(float64(len(InfoSections))),
				schema.Description("Sections to include, comma separated"),
			),
		),
		func(_ context.Context, p schema.Values) (any, error) {
			var out Info
			for _, section := range p.Strings("include") {
				switch section {
				case "system":
					host, err := os.Hostname()
					if err != nil {
						return nil, err
					}
					out.System = &SystemInfo{
						Hostname: host,
						OS:       runtime.GOOS,
						Arch:     runtime.GOARCH,
						CPUs:     runtime.NumCPU(),
					}
				case "runtime":
					out.Runtime = &RuntimeInfo{
						GoVersion:  runtime.Version(),
						Goroutines: runtime.NumGoroutine(),
						GOMAXPROCS: runtime.GOMAXPROCS(0),
					}
				case "memory":
					var ms runtime.MemStats
					runtime.ReadMemStats(&ms)
					out.Memory = &MemoryInfo{
						AllocBytes:      ms.Alloc,
						TotalAllocBytes: ms.TotalAlloc,
						SysBytes:        ms.Sys,
						NumGC:           ms.NumGC,
					}
				}
			}
			return out, nil
		},
	)
}
