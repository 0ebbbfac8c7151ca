package main

import (
	"ppv2/difficulty"
	"ppv2/pp"
)

// calculators are owned by one worker at a time, so their caches and buffers
// are never shared.
type calculators struct {
	stars *difficulty.Calculator
	perf  *pp.PPv2
}

// calcPool hands out at most cap(pool) calculators, bounding concurrency the
// same way a token channel would.
type calcPool chan *calculators

func newCalcPool(workers int) calcPool {
	pool := make(calcPool, workers)

	for range workers {
		pool <- &calculators{
			stars: difficulty.NewCalculator(),
			perf:  pp.NewPPCalculator(),
		}
	}

	return pool
}

// GetToken blocks until calculators are free and returns them with the
// function that gives them back.
func (p calcPool) GetToken() (*calculators, func()) {
	c := <-p

	return c, func() {
		p <- c
	}
}
