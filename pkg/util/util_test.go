package util_test

import (
	"math"
	"testing"
	"time"

	"github.com/vrpsolver/vrp/pkg/util"
)

func TestCompareFloatsOrdersNaNLast(t *testing.T) {
	nan := math.NaN()
	if util.CompareFloats(nan, 1) != 1 {
		t.Fatalf("NaN must compare greater than any finite value")
	}
	if util.CompareFloats(1, nan) != -1 {
		t.Fatalf("a finite value must compare less than NaN")
	}
	if util.CompareFloats(nan, nan) != 0 {
		t.Fatalf("NaN must compare equal to NaN under this total order")
	}
	if util.CompareFloats(1, 2) != -1 || util.CompareFloats(2, 1) != 1 || util.CompareFloats(2, 2) != 0 {
		t.Fatalf("expected the usual order over finite values")
	}
}

func TestLessFloatsAndMinFloats(t *testing.T) {
	if !util.LessFloats(1, 2) || util.LessFloats(2, 1) {
		t.Fatalf("LessFloats disagrees with the expected finite order")
	}
	if util.MinFloats(1, 2) != 1 || util.MinFloats(2, 1) != 1 {
		t.Fatalf("MinFloats must return the lesser finite value regardless of argument order")
	}
	nan := math.NaN()
	if got := util.MinFloats(1, nan); got != 1 {
		t.Fatalf("MinFloats must prefer a finite value over NaN, got %v", got)
	}
}

func TestDefaultRNGIsDeterministicForAGivenSeed(t *testing.T) {
	a := util.NewDefaultRNG(42)
	b := util.NewDefaultRNG(42)
	for i := 0; i < 20; i++ {
		if got, want := a.UniformInt(0, 100), b.UniformInt(0, 100); got != want {
			t.Fatalf("same seed diverged at draw %d: %d != %d", i, got, want)
		}
	}
}

func TestUniformIntRespectsBounds(t *testing.T) {
	rng := util.NewDefaultRNG(7)
	for i := 0; i < 200; i++ {
		v := rng.UniformInt(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("UniformInt(3, 5) returned out-of-range value %d", v)
		}
	}
	if got := rng.UniformInt(5, 5); got != 5 {
		t.Fatalf("UniformInt with min==max must return that value, got %d", got)
	}
}

func TestIsHitBoundaryProbabilities(t *testing.T) {
	rng := util.NewDefaultRNG(1)
	if rng.IsHit(0) {
		t.Fatalf("IsHit(0) must never fire")
	}
	if !rng.IsHit(1) {
		t.Fatalf("IsHit(1) must always fire")
	}
}

func TestWeightedPrefersHeavierWeight(t *testing.T) {
	rng := util.NewDefaultRNG(3)
	counts := make([]int, 2)
	for i := 0; i < 500; i++ {
		counts[rng.Weighted([]int{1, 99})]++
	}
	if counts[1] <= counts[0] {
		t.Fatalf("expected the heavily-weighted index to win more often, got %v", counts)
	}
}

func TestSplitProducesIndependentStream(t *testing.T) {
	parent := util.NewDefaultRNG(99)
	child := parent.Split()
	if child == nil {
		t.Fatalf("expected a non-nil split RNG")
	}
}

func TestParallelismDegreeWorkersSerialWhenLimitedToOne(t *testing.T) {
	items := []int{1, 2, 3, 4}
	sum := util.MapReduce(util.LimitedParallelism(1), items, func(i int) int { return i * i }, 0, func(acc, v int) int { return acc + v })
	if sum != 1+4+9+16 {
		t.Fatalf("expected 30, got %d", sum)
	}
}

func TestParallelismDegreeFullMatchesSerialResult(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}
	serial := util.MapReduce(util.LimitedParallelism(1), items, func(i int) int { return i }, 0, func(acc, v int) int { return acc + v })
	parallel := util.MapReduce(util.FullParallelism(), items, func(i int) int { return i }, 0, func(acc, v int) int { return acc + v })
	if serial != parallel {
		t.Fatalf("parallel MapReduce must fold to the same result as serial: %d != %d", parallel, serial)
	}
}

func TestMapReduceEmptyInput(t *testing.T) {
	got := util.MapReduce(util.FullParallelism(), []int{}, func(i int) int { return i }, -1, func(acc, v int) int { return acc + v })
	if got != -1 {
		t.Fatalf("expected the zero value unchanged for empty input, got %d", got)
	}
}

func TestTimerElapsedIsNonNegative(t *testing.T) {
	timer := util.StartTimer()
	time.Sleep(time.Millisecond)
	if timer.ElapsedMillis() < 0 {
		t.Fatalf("elapsed time must never be negative")
	}
	if timer.ElapsedSecondsF() < 0 {
		t.Fatalf("elapsed fractional seconds must never be negative")
	}
}

func TestNoiseAppliesOnlyWhenHit(t *testing.T) {
	never := util.NewNoise(0, 0.5, 1.5, util.NewDefaultRNG(1))
	if got := never.Apply(10); got != 10 {
		t.Fatalf("zero-probability noise must leave the value unchanged, got %v", got)
	}
}
