package render

import (
	"fmt"

	"FractalExplorer/task"
	"FractalExplorer/worker"
)

const MaxSuperSampling = 4

type Settings struct {
	SuperSampling  int
	TaskGeneration task.Generation
	WorkerSettings worker.Settings
}

func (s *Settings) String() string {
	output := "\nRender settings\n"
	output += fmt.Sprintf("Super Sampling: %d\n", s.SuperSampling)
	output += fmt.Sprintf("Task Generation: %s\n", s.TaskGeneration)
	output += fmt.Sprintf("Workers: %d\n", s.WorkerSettings.Workers)
	return output
}

func (s *Settings) Verify() error {
	if s.SuperSampling < 1 {
		s.SuperSampling = 1
	}
	if s.SuperSampling > MaxSuperSampling {
		s.SuperSampling = MaxSuperSampling
	}
	if s.TaskGeneration < task.Row || s.TaskGeneration > task.Grid {
		s.TaskGeneration = task.Row
	}
	return s.WorkerSettings.Verify()
}
