package main

import (
	"cmp"
	"fmt"
	"io"
	"log"
	"slices"
	"sync"
)

type Failure struct {
	Path string
	Err  error
}

// Failures collects per-map errors from batch workers.
type Failures struct {
	mu    sync.Mutex
	items []Failure
}

func (f *Failures) Fail(path string, err error) {
	log.Printf("fail: %s: %v", path, err)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, Failure{Path: path, Err: err})
}

func (f *Failures) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.items)
}

// Report writes one line per failure, sorted by path.
func (f *Failures) Report(w io.Writer) {
	f.mu.Lock()
	items := slices.Clone(f.items)
	f.mu.Unlock()

	slices.SortFunc(items, func(a, b Failure) int {
		return cmp.Compare(a.Path, b.Path)
	})

	for _, item := range items {
		fmt.Fprintf(w, "fail: %s: %v\n", item.Path, item.Err)
	}
}
