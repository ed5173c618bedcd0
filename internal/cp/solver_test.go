package cp

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func backends() map[string]Solver {
	return map[string]Solver{
		"dfs":       NewDFSSolver(),
		"gophersat": NewGophersatSolver(),
	}
}

func TestSolveExactlyOne(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			model := NewModel()
			group := []Var{model.NewBool("a"), model.NewBool("b"), model.NewBool("c")}
			model.AddExactlyOne(group)

			solution, err := backend.Solve(model, time.Second)

			assert.Nil(t, err)
			assert.NotNil(t, solution)
			assert.True(t, solution.Optimal)
			trueCount := 0
			for _, v := range group {
				if solution.Values[v] {
					trueCount++
				}
			}
			assert.Equal(t, 1, trueCount)
		})
	}
}

func TestSolveConflictForcesAlternative(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			model := NewModel()
			a1 := model.NewBool("a1")
			a2 := model.NewBool("a2")
			b1 := model.NewBool("b1")
			model.AddExactlyOne([]Var{a1, a2})
			model.AddExactlyOne([]Var{b1})
			model.AddConflict(a1, b1)

			solution, err := backend.Solve(model, time.Second)

			assert.Nil(t, err)
			assert.NotNil(t, solution)
			assert.False(t, solution.Values[a1])
			assert.True(t, solution.Values[a2])
			assert.True(t, solution.Values[b1])
		})
	}
}

func TestSolveInfeasible(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			model := NewModel()
			a := model.NewBool("a")
			b := model.NewBool("b")
			model.AddExactlyOne([]Var{a})
			model.AddExactlyOne([]Var{b})
			model.AddConflict(a, b)

			solution, err := backend.Solve(model, time.Second)

			assert.Nil(t, err)
			assert.Nil(t, solution)
		})
	}
}

func TestSolveMaximizesIndicators(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			// Selecting a2 dodges both blockers and is worth 3 in total.
			model := NewModel()
			a1 := model.NewBool("a1")
			a2 := model.NewBool("a2")
			model.AddExactlyOne([]Var{a1, a2})
			cheap := model.NewBool("cheap")
			model.AddIndicator(cheap, []Var{a1}, nil, 1)
			rich := model.NewBool("rich")
			model.AddIndicator(rich, []Var{a1}, nil, 2)

			solution, err := backend.Solve(model, time.Second)

			assert.Nil(t, err)
			assert.NotNil(t, solution)
			assert.True(t, solution.Optimal)
			assert.True(t, solution.Values[a2])
			assert.Equal(t, 3, solution.Objective)
			assert.Equal(t, 3, model.Objective(solution.Values))
		})
	}
}

func TestSolveIndicatorNeedsAnyOf(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			// The indicator demands a true AnyOf member, so b must be selected.
			model := NewModel()
			a := model.NewBool("a")
			b := model.NewBool("b")
			model.AddExactlyOne([]Var{a, b})
			bonus := model.NewBool("bonus")
			model.AddIndicator(bonus, nil, []Var{b}, 5)

			solution, err := backend.Solve(model, time.Second)

			assert.Nil(t, err)
			assert.NotNil(t, solution)
			assert.True(t, solution.Values[b])
			assert.Equal(t, 5, solution.Objective)
			assert.True(t, solution.Values[bonus])
		})
	}
}

func TestSolveTradesOffConflictingIndicators(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			// Both choices sacrifice one indicator; the heavier one must win.
			model := NewModel()
			a := model.NewBool("a")
			b := model.NewBool("b")
			model.AddExactlyOne([]Var{a, b})
			light := model.NewBool("light")
			model.AddIndicator(light, []Var{a}, nil, 1)
			heavy := model.NewBool("heavy")
			model.AddIndicator(heavy, []Var{b}, nil, 4)

			solution, err := backend.Solve(model, time.Second)

			assert.Nil(t, err)
			assert.NotNil(t, solution)
			assert.True(t, solution.Values[a])
			assert.Equal(t, 4, solution.Objective)
		})
	}
}

func TestSolveEmptyModel(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			solution, err := backend.Solve(NewModel(), time.Second)

			assert.Nil(t, err)
			assert.NotNil(t, solution)
			assert.Equal(t, 0, solution.Objective)
		})
	}
}

func TestBackendsAgreeOnObjective(t *testing.T) {
	build := func() *Model {
		model := NewModel()
		groups := make([][]Var, 4)
		for i := range groups {
			groups[i] = []Var{
				model.NewBool("x"),
				model.NewBool("y"),
				model.NewBool("z"),
			}
			model.AddExactlyOne(groups[i])
		}
		// Ring of conflicts between the first options of adjacent groups.
		for i := range groups {
			model.AddConflict(groups[i][0], groups[(i+1)%len(groups)][0])
		}
		for i, group := range groups {
			indicator := model.NewBool("ind")
			model.AddIndicator(indicator, []Var{group[1]}, []Var{group[0], group[2]}, i+1)
		}
		return model
	}

	dfs, err := NewDFSSolver().Solve(build(), time.Second)
	assert.Nil(t, err)
	assert.NotNil(t, dfs)

	pb, err := NewGophersatSolver().Solve(build(), time.Second)
	assert.Nil(t, err)
	assert.NotNil(t, pb)

	assert.True(t, dfs.Optimal)
	assert.True(t, pb.Optimal)
	assert.Equal(t, dfs.Objective, pb.Objective)
}

func TestSolversAreSafeForConcurrentUse(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			// One shared solver value, many simultaneous solves.
			var wg sync.WaitGroup
			objectives := make([]int, 8)
			for i := range objectives {
				wg.Add(1)
				go func(slot int) {
					defer wg.Done()

					model := NewModel()
					a := model.NewBool("a")
					b := model.NewBool("b")
					model.AddExactlyOne([]Var{a, b})
					bonus := model.NewBool("bonus")
					model.AddIndicator(bonus, []Var{a}, nil, 3)

					solution, err := backend.Solve(model, time.Second)
					if err != nil || solution == nil {
						return
					}
					objectives[slot] = solution.Objective
				}(i)
			}
			wg.Wait()

			for _, objective := range objectives {
				assert.Equal(t, 3, objective)
			}
		})
	}
}

func TestModelObjectiveAndSettle(t *testing.T) {
	model := NewModel()
	a := model.NewBool("a")
	indicator := model.NewBool("ind")
	model.AddIndicator(indicator, []Var{a}, nil, 2)

	values := []bool{false, false}
	assert.Equal(t, 2, model.Objective(values))
	model.SettleIndicators(values)
	assert.True(t, values[indicator])

	values = []bool{true, true}
	assert.Equal(t, 0, model.Objective(values))
	model.SettleIndicators(values)
	assert.False(t, values[indicator])

	assert.Equal(t, 2, model.MaxObjective())
}
