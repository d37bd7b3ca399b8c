package calculator

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// 多个相互独立的计算并行执行，每个计算拥有自己的温度场
type Executor struct {
	c       *Calculator
	workers int
}

type task struct {
	index int
	input Input
}

type Outcome struct {
	Input  Input
	Result Result
	Err    error
}

func NewExecutor(c *Calculator, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{c: c, workers: workers}
}

// EstimateAll 返回结果的顺序与 inputs 一致
func (e *Executor) EstimateAll(ctx context.Context, inputs []Input) []Outcome {
	start := time.Now()
	outcomes := make([]Outcome, len(inputs))
	dispatchChan := make(chan task)

	workers := e.workers
	if workers > len(inputs) {
		workers = len(inputs)
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for t := range dispatchChan {
				if err := ctx.Err(); err != nil {
					outcomes[t.index] = Outcome{Input: t.input, Err: err}
					continue
				}
				res, err := e.c.Estimate(ctx, t.input)
				outcomes[t.index] = Outcome{Input: t.input, Result: res, Err: err}
			}
		}()
	}

	for i, in := range inputs {
		dispatchChan <- task{index: i, input: in}
	}
	close(dispatchChan)
	wg.Wait()

	log.WithFields(log.Fields{
		"tasks":   len(inputs),
		"workers": workers,
		"elapsed": time.Since(start),
	}).Debug("批量计算完成")
	return outcomes
}
