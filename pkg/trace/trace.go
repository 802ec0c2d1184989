// Package trace is the SWF-like trace file parser: an external
// collaborator the Engine only ever sees through the Source interface,
// never a concrete Reader.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"hpcsim/pkg/models"
)

// ErrMalformedLine is a hard, input-data class error: a data line
// didn't have exactly 18 whitespace-separated fields, or one of the
// fields the core reads wasn't an integer.
var ErrMalformedLine = errors.New("trace: malformed line")

// ErrInvalidNodeCount is a hard error: a job requested zero or fewer
// nodes after the processors-per-node reduction.
var ErrInvalidNodeCount = errors.New("trace: invalid node count")

const fieldsPerLine = 18

// ProcessorsPerNode is the fixed reduction factor the original
// dataset assumes: nodes = ceil(processors_requested / ProcessorsPerNode).
const ProcessorsPerNode = 4

// SkipFunc is called once per job that was parseable but requests
// more nodes than the cluster has; the caller (cmd/simulate passes
// its logging observer's callback) uses it to emit the required log
// line without the trace package importing a logger.
type SkipFunc func(jobID, nodesRequested int64, totalNodes int)

// Source is the narrow interface the Engine depends on to load jobs;
// it never imports this package's concrete Reader, only this
// interface.
type Source interface {
	// Next returns the next admitted job, or ok=false once the trace
	// (or the task limit) is exhausted. It returns a hard error for
	// malformed input; soft-skipped jobs are simply not returned.
	Next() (job *models.Job, ok bool, err error)
}

// Reader streams Jobs out of an SWF-like text trace, applying the
// processors-per-node reduction and the total-node-count admission
// filter as it goes.
type Reader struct {
	scanner    *bufio.Scanner
	totalNodes int
	taskLimit  int // <= 0 means unlimited
	admitted   int
	onSkip     SkipFunc
}

// NewReader wraps r as a trace Source for a cluster of totalNodes
// nodes. taskLimit <= 0 means "no limit" (matches the CLI contract:
// absent or non-positive means unlimited). onSkip may be nil.
func NewReader(r io.Reader, totalNodes, taskLimit int, onSkip SkipFunc) *Reader {
	return &Reader{
		scanner:    bufio.NewScanner(r),
		totalNodes: totalNodes,
		taskLimit:  taskLimit,
		onSkip:     onSkip,
	}
}

// Next implements Source.
func (r *Reader) Next() (*models.Job, bool, error) {
	if r.taskLimit > 0 && r.admitted >= r.taskLimit {
		return nil, false, nil
	}

	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.HasPrefix(line, ";") {
			continue
		}

		job, skip, err := parseLine(line, r.totalNodes)
		if err != nil {
			return nil, false, err
		}
		if skip {
			if r.onSkip != nil {
				r.onSkip(job.JobID, int64(job.Nodes), r.totalNodes)
			}
			continue
		}

		r.admitted++
		return job, true, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("trace: reading input: %w", err)
	}
	return nil, false, nil
}

// parseLine parses one SWF data line into a Job. skip is true when
// the job is well-formed but requires more nodes than the cluster
// has — a soft, recoverable condition per the error taxonomy; job is
// still returned in that case so the caller can log its ID.
func parseLine(line string, totalNodes int) (job *models.Job, skip bool, err error) {
	fields := strings.Fields(line)
	if len(fields) != fieldsPerLine {
		return nil, false, fmt.Errorf("%w: got %d fields, want %d: %q", ErrMalformedLine, len(fields), fieldsPerLine, line)
	}

	jobID, err := parseInt(fields[0])
	if err != nil {
		return nil, false, fmt.Errorf("%w: field 0 (jobID): %v", ErrMalformedLine, err)
	}
	submitTime, err := parseInt(fields[1])
	if err != nil {
		return nil, false, fmt.Errorf("%w: field 1 (submit_time): %v", ErrMalformedLine, err)
	}
	runTime, err := parseInt(fields[3])
	if err != nil {
		return nil, false, fmt.Errorf("%w: field 3 (run_time): %v", ErrMalformedLine, err)
	}
	processors, err := parseInt(fields[7])
	if err != nil {
		return nil, false, fmt.Errorf("%w: field 7 (processors): %v", ErrMalformedLine, err)
	}
	requestedRunTime, err := parseInt(fields[8])
	if err != nil {
		return nil, false, fmt.Errorf("%w: field 8 (requested_run_time): %v", ErrMalformedLine, err)
	}

	nodes := int(math.Ceil(float64(processors) / float64(ProcessorsPerNode)))
	if nodes <= 0 {
		return nil, false, fmt.Errorf("%w: job %d requests %d processors -> %d nodes", ErrInvalidNodeCount, jobID, processors, nodes)
	}

	j := models.NewJob(jobID, submitTime, runTime, requestedRunTime, nodes)
	if nodes > totalNodes {
		return j, true, nil
	}
	return j, false, nil
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
