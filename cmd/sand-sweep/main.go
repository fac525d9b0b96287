package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"mad-sand/internal/core"
	"mad-sand/internal/sandbox"
)

type scenario struct {
	seed    int64
	fill    float64
	width   int
	height  int
	maxStep int
}

type scenarioResult struct {
	scenario
	placed    [len(materials)]int
	remaining [len(materials)]int
	settledAt int
	peakMoves int
}

var materials = [...]core.Material{core.Wall, core.Liquid, core.Granular, core.Gas}

func (r scenarioResult) conserved() bool { return r.placed == r.remaining }

func main() {
	steps := flag.Int("steps", 2000, "maximum ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seeds := flag.Int("seeds", 32, "number of seeds to sweep")
	width := flag.Int("w", 64, "grid width")
	height := flag.Int("h", 64, "grid height")
	fill := flag.Float64("fill", 0.3, "fraction of cells filled before the first tick")
	top := flag.Int("top", 10, "rows of the slowest scenarios to print")
	flag.Parse()

	var jobsList []scenario
	for i := 0; i < *seeds; i++ {
		jobsList = append(jobsList, scenario{
			seed:    int64(i + 1),
			fill:    *fill,
			width:   *width,
			height:  *height,
			maxStep: *steps,
		})
	}

	fmt.Printf("Sweeping %d seeds on %dx%d (%d workers, fill %.2f, max %d steps)\n",
		len(jobsList), *width, *height, *workers, *fill, *steps)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range jobsList {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	violations := 0
	for res := range results {
		all = append(all, res)
		if !res.conserved() {
			violations++
			fmt.Printf("Seed %d broke conservation: placed %v remaining %v\n", res.seed, res.placed, res.remaining)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := settleKey(all[i]), settleKey(all[j])
		if a != b {
			return a > b
		}
		return all[i].seed < all[j].seed
	})
	elapsed := time.Since(start)

	fmt.Printf("\nSlowest %d scenarios (elapsed %s):\n", min(*top, len(all)), elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		settled := "never"
		if res.settledAt >= 0 {
			settled = fmt.Sprintf("%d", res.settledAt)
		}
		fmt.Printf("%2d) seed=%d settled=%s peakMoves=%d cells=%v\n", i+1, res.seed, settled, res.peakMoves, res.remaining)
	}

	if violations > 0 {
		fmt.Printf("\n%d scenarios violated conservation\n", violations)
		os.Exit(1)
	}
}

// settleKey orders unsettled scenarios after every settled one.
func settleKey(r scenarioResult) int {
	if r.settledAt < 0 {
		return r.maxStep + 1
	}
	return r.settledAt
}

func runScenario(sc scenario) scenarioResult {
	session := sandbox.New(sandbox.Options{
		Width:  sc.width,
		Height: sc.height,
		Seed:   sc.seed,
	})

	rng := core.NewRNG(sc.seed ^ 0x5eed)
	res := scenarioResult{scenario: sc, settledAt: -1}
	for y := 0; y < sc.height; y++ {
		for x := 0; x < sc.width; x++ {
			if float64(rng.Choose(1000))/1000 >= sc.fill {
				continue
			}
			session.PlaceMaterial(x, y, materials[rng.Choose(len(materials))])
		}
	}
	res.placed = countMaterials(session.Grid())

	for step := 0; step < sc.maxStep; step++ {
		session.Tick()
		moves := session.LastMoves()
		if moves > res.peakMoves {
			res.peakMoves = moves
		}
		if moves == 0 {
			res.settledAt = step + 1
			break
		}
	}

	res.remaining = countMaterials(session.Grid())
	return res
}

func countMaterials(g *core.Grid) [len(materials)]int {
	var counts [len(materials)]int
	for i, m := range materials {
		counts[i] = g.Count(m)
	}
	return counts
}
