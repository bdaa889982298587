package main

import (
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

// usage is a snapshot of process resource consumption.
type usage struct {
	user   time.Duration
	system time.Duration
	maxRSS int64 // bytes
}

func readUsage() (usage, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return usage{}, err
	}
	rss := ru.Maxrss
	if runtime.GOOS != "darwin" {
		// Linux and the BSDs report kilobytes
		rss *= 1024
	}
	return usage{
		user:   time.Duration(ru.Utime.Nano()),
		system: time.Duration(ru.Stime.Nano()),
		maxRSS: int64(rss),
	}, nil
}

func readMem() runtime.MemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m
}
