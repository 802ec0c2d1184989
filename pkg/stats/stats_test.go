package stats

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 {
		t.Errorf("Count = %d, want 0", s.Count)
	}
}

func TestSummarizeOddCount(t *testing.T) {
	s := Summarize([]int64{5, 1, 3})

	if s.Min != 1 || s.Max != 5 {
		t.Errorf("Min/Max = %d/%d, want 1/5", s.Min, s.Max)
	}
	if s.Sum != 9 {
		t.Errorf("Sum = %d, want 9", s.Sum)
	}
	if s.Median != 3 {
		t.Errorf("Median = %v, want 3", s.Median)
	}
	if s.Mean != 3 {
		t.Errorf("Mean = %v, want 3", s.Mean)
	}
}

func TestSummarizeEvenCountAveragesMiddleTwo(t *testing.T) {
	s := Summarize([]int64{1, 2, 3, 4})

	if s.Median != 2.5 {
		t.Errorf("Median = %v, want 2.5", s.Median)
	}
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	input := []int64{5, 1, 3}
	Summarize(input)

	if input[0] != 5 || input[1] != 1 || input[2] != 3 {
		t.Errorf("Summarize mutated its argument: %v", input)
	}
}

func TestSumCompletionTimes(t *testing.T) {
	if got := SumCompletionTimes([]int64{10, 20, 30}); got != 60 {
		t.Errorf("SumCompletionTimes = %d, want 60", got)
	}
	if got := SumCompletionTimes(nil); got != 0 {
		t.Errorf("SumCompletionTimes(nil) = %d, want 0", got)
	}
}
