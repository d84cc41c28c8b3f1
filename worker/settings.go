package worker

import (
	"fmt"
	"runtime"
)

type Settings struct {
	// Workers is the number of goroutines processing tasks; 0 means GOMAXPROCS.
	Workers int
}

func (s *Settings) String() string {
	output := "\nWorker settings\n"
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	return output
}

func (s *Settings) Verify() error {
	if s.Workers <= 0 {
		s.Workers = runtime.GOMAXPROCS(0)
	}
	return nil
}
