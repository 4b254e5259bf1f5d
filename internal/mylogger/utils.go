package mylogger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// startupID identifies one process launch, e.g. "startup-84123-163245".
func startupID() string {
	return fmt.Sprintf("startup-%d-%s", os.Getpid(), time.Now().Format("150405"))
}

// captureFrames collects stack trace frames for error records.
func captureFrames(skip, depth int) []stackFrame {
	pc := make([]uintptr, depth)
	n := runtime.Callers(skip, pc)
	frames := runtime.CallersFrames(pc[:n])

	var stack []stackFrame
	for {
		frame, more := frames.Next()
		stack = append(stack, stackFrame{
			Func:   filepath.Base(frame.Function),
			Source: filepath.Join(filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)),
			Line:   frame.Line,
		})
		if !more {
			break
		}
	}
	return stack
}

type stackFrame struct {
	Func   string `json:"func"`
	Source string `json:"source"`
	Line   int    `json:"line"`
}
