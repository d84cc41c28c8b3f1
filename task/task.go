package task

import (
	"fmt"
	"image"
)

const (
	Row Generation = iota
	Column
	Image
	Grid
)

// GridSize is the edge length of a tile when splitting by Grid.
const GridSize = 64

// Generation decides how a sample grid is split into tasks.
type Generation int

func (g Generation) String() string {
	if g < Row || g > Grid {
		return fmt.Sprintf("Generation(%d)", int(g))
	}
	return []string{
		"Row", "Column", "Image", "Grid",
	}[g]
}

// Task is one unit of work: a rectangle of the sample grid. Tasks produced by Split never overlap.
type Task struct {
	ID     uint
	Bounds image.Rectangle
}

func NewTask(id uint, bounds image.Rectangle) Task {
	return Task{
		ID:     id,
		Bounds: bounds,
	}
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("Bounds: %s ", t.Bounds)
	output += fmt.Sprintf("Sample Count: %d}", t.Count())
	return output
}

// Count is the number of samples in the task.
func (t *Task) Count() int {
	return t.Bounds.Dx() * t.Bounds.Dy()
}

// Split divides a width x height sample grid into tasks according to generation. Unknown generations fall back to Row.
func Split(generation Generation, width int, height int) []Task {
	if width <= 0 || height <= 0 {
		return nil
	}

	var tasks []Task
	add := func(r image.Rectangle) {
		tasks = append(tasks, NewTask(uint(len(tasks)), r))
	}

	switch generation {
	case Column:
		for c := 0; c < width; c++ {
			add(image.Rect(c, 0, c+1, height))
		}
	case Image:
		add(image.Rect(0, 0, width, height))
	case Grid:
		for r := 0; r < height; r += GridSize {
			for c := 0; c < width; c += GridSize {
				add(image.Rect(c, r, min(c+GridSize, width), min(r+GridSize, height)))
			}
		}
	default:
		for r := 0; r < height; r++ {
			add(image.Rect(0, r, width, r+1))
		}
	}
	return tasks
}
