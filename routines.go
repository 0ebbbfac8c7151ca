package main

import (
	"fmt"
	"runtime"
	"sync"
)

// Run calls f on a new goroutine tracked by wg. A panic in f is handed to
// onPanic instead of taking the whole batch down.
func Run(wg *sync.WaitGroup, f func(), onPanic func(error)) {
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer Recover(onPanic)
		f()
	}()
}

func Recover(onPanic func(error)) {
	if r := recover(); r != nil {
		onPanic(PanicError(r))
	}
}

func PanicError(panic any) error {
	buf := make([]byte, 100000)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	return fmt.Errorf("panic: %v\n\n%s", panic, string(buf))
}

func PanicF(format string, a ...any) {
	panic(fmt.Sprintf(format, a...))
}
