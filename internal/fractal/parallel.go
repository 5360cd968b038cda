package fractal

import (
	"runtime"
	"sync"
)

// Grid holds one result per pixel, row-major with row 0 at ImagMin.
type Grid struct {
	Width, Height int
	Results       []Result
}

func (g *Grid) At(i, j int) Result {
	return g.Results[i*g.Width+j]
}

// EscapeGrid evaluates every pixel of region at the given resolution.
// A nil param selects Mandelbrot mode. Rows are split across workers.
func EscapeGrid(region Region, width, height int, param *Param, maxIterations int) (*Grid, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}
	if maxIterations <= 0 {
		return nil, ErrInvalidIterations
	}

	g := &Grid{Width: width, Height: height, Results: make([]Result, width*height)}
	deltaR := region.Width() / float64(width)
	deltaI := region.Height() / float64(height)

	ParallelFor(height, 8, func(start, end int) {
		for i := start; i < end; i++ {
			y0 := float64(i)*deltaI + region.ImagMin
			row := g.Results[i*width : (i+1)*width]
			for j := range row {
				x0 := float64(j)*deltaR + region.RealMin
				if param == nil {
					row[j] = Mandelbrot(x0, y0, maxIterations)
				} else {
					row[j] = Julia(x0, y0, *param, maxIterations)
				}
			}
		}
	})

	return g, nil
}

// ParallelFor executes fn over [0, n) in contiguous chunks of at least
// minChunk items.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := runtime.GOMAXPROCS(0)
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
