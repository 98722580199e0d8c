//go:build windows

package qbench

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// TimeStamp is a QueryPerformanceCounter reading. Values are only comparable within one process.
type TimeStamp = int64

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")
	procFreq    = modkernel32.NewProc("QueryPerformanceFrequency")
	procCounter = modkernel32.NewProc("QueryPerformanceCounter")

	qpcFrequency = getFrequency()
)

// getFrequency returns frequency in ticks per second.
func getFrequency() int64 {
	var freq int64
	r1, _, err := procFreq.Call(uintptr(unsafe.Pointer(&freq)))
	if r1 == 0 {
		panic(fmt.Sprintf("QueryPerformanceFrequency failed: %v", err))
	}
	return freq
}

// SampleTime returns the current performance counter value.
func SampleTime() TimeStamp {
	var qpc int64
	procCounter.Call(uintptr(unsafe.Pointer(&qpc)))
	return qpc
}

// DiffTimeStamps returns t_later - t_earlier in nanoseconds; negative if t_later is earlier.
// Whole seconds and the remainder are scaled separately so long intervals do not overflow.
func DiffTimeStamps(t_earlier, t_later TimeStamp) int64 {
	ticks := t_later - t_earlier
	secs := ticks / qpcFrequency
	rem := ticks % qpcFrequency
	return secs*1_000_000_000 + rem*1_000_000_000/qpcFrequency
}
