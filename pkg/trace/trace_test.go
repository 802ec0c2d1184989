package trace

import (
	"errors"
	"strings"
	"testing"
)

// A single SWF-like data line with 18 whitespace-separated fields:
// job_id submit_time wait_time run_time processors avg_cpu mem_used
// requested_processors requested_time requested_mem status user_id
// group_id executable queue partition preceding think_time.
func line(jobID, submitTime, runTime, processors, requestedTime int) string {
	return strings.Join([]string{
		itoa(jobID), itoa(submitTime), "0", itoa(runTime), itoa(processors),
		"-1", "-1", itoa(processors), itoa(requestedTime), "-1",
		"1", "1", "1", "-1", "-1", "-1", "-1", "-1",
	}, " ")
}

func itoa(n int) string {
	if n < 0 {
		return "-" + itoa(-n)
	}
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func TestReaderParsesAdmittedJob(t *testing.T) {
	r := NewReader(strings.NewReader(line(1, 100, 50, 16, 60)), 8, -1, nil)

	job, ok, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !ok {
		t.Fatal("Next() ok = false, want true")
	}
	if job.JobID != 1 || job.SubmitTime != 100 || job.RunTime != 50 || job.RequestedRunTime != 60 {
		t.Errorf("unexpected job: %+v", job)
	}
	if job.Nodes != 4 { // ceil(16/4)
		t.Errorf("Nodes = %d, want 4", job.Nodes)
	}
}

func TestReaderSkipsCommentLines(t *testing.T) {
	input := "; this is a comment\n" + line(1, 0, 10, 4, 10)
	r := NewReader(strings.NewReader(input), 8, -1, nil)

	_, ok, err := r.Next()
	if err != nil || !ok {
		t.Fatalf("Next() = (_, %v, %v), want (_, true, nil)", ok, err)
	}
}

func TestReaderHardErrorsOnBlankLine(t *testing.T) {
	input := "\n" + line(1, 0, 10, 4, 10)
	r := NewReader(strings.NewReader(input), 8, -1, nil)

	_, _, err := r.Next()
	if !errors.Is(err, ErrMalformedLine) {
		t.Errorf("err = %v, want wrapping ErrMalformedLine for a blank data line", err)
	}
}

func TestReaderSoftSkipsJobExceedingClusterSize(t *testing.T) {
	input := line(1, 0, 10, 400, 10) + "\n" + line(2, 0, 10, 4, 10)
	var skipped []int64
	r := NewReader(strings.NewReader(input), 8, -1, func(jobID, nodesRequested int64, totalNodes int) {
		skipped = append(skipped, jobID)
	})

	job, ok, err := r.Next()
	if err != nil || !ok {
		t.Fatalf("Next() = (_, %v, %v), want (_, true, nil)", ok, err)
	}
	if job.JobID != 2 {
		t.Errorf("first admitted job = %d, want 2 (job 1 should be skipped)", job.JobID)
	}
	if len(skipped) != 1 || skipped[0] != 1 {
		t.Errorf("skipped = %v, want [1]", skipped)
	}
}

func TestReaderHardErrorsOnMalformedLine(t *testing.T) {
	r := NewReader(strings.NewReader("not enough fields"), 8, -1, nil)

	_, _, err := r.Next()
	if !errors.Is(err, ErrMalformedLine) {
		t.Errorf("err = %v, want wrapping ErrMalformedLine", err)
	}
}

func TestReaderRespectsTaskLimit(t *testing.T) {
	input := line(1, 0, 10, 4, 10) + "\n" + line(2, 0, 10, 4, 10)
	r := NewReader(strings.NewReader(input), 8, 1, nil)

	_, ok, err := r.Next()
	if err != nil || !ok {
		t.Fatalf("first Next() = (_, %v, %v), want (_, true, nil)", ok, err)
	}
	_, ok, err = r.Next()
	if err != nil || ok {
		t.Fatalf("second Next() = (_, %v, %v), want (_, false, nil) once task_limit is reached", ok, err)
	}
}

func TestReaderExhaustion(t *testing.T) {
	r := NewReader(strings.NewReader(""), 8, -1, nil)

	_, ok, err := r.Next()
	if err != nil || ok {
		t.Fatalf("Next() on empty input = (_, %v, %v), want (_, false, nil)", ok, err)
	}
}
