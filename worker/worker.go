package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"FractalExplorer/misc"
	"FractalExplorer/task"

	"github.com/BrugadaSyndrome/bslogger"
)

// Pool runs batches of tasks across a fixed number of goroutines. Each call to Process is independent and returns
// once every task of the batch is done, so a Pool holds no goroutines between calls.
type Pool struct {
	logger         bslogger.Logger
	tasksCompleted atomic.Uint64
	workers        int
}

func NewPool(settings Settings) *Pool {
	pool := &Pool{
		logger: bslogger.NewLogger("WorkerPool", bslogger.Normal, nil),
	}
	misc.CheckError(settings.Verify(), pool.logger, misc.Warning)
	pool.workers = settings.Workers
	pool.logger.Debug(settings.String())
	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// TasksCompleted counts every task processed since the pool was created.
func (p *Pool) TasksCompleted() uint64 {
	return p.tasksCompleted.Load()
}

// Process calls process once for every task and waits for all of them. Tasks are handed out in order but may finish
// in any order, so process must only touch state owned by its task.
func (p *Pool) Process(tasks []task.Task, process func(task.Task)) {
	if len(tasks) == 0 {
		return
	}

	var startTime = time.Now()
	tasksTodo := make(chan task.Task, len(tasks))
	for _, t := range tasks {
		tasksTodo <- t
	}
	close(tasksTodo)

	workerCount := min(p.workers, len(tasks))
	workerWait := sync.WaitGroup{}
	workerWait.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func() {
			defer workerWait.Done()
			for taskTodo := range tasksTodo {
				process(taskTodo)
				p.tasksCompleted.Add(1)
			}
		}()
	}
	workerWait.Wait()

	p.logger.Debugf("Processed %d tasks on %d workers in %s", len(tasks), workerCount, time.Since(startTime))
}
