package unitify

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"unitify/internal/logger"
)

type HookFunc func(res Result, p *Processor) error

// Result is the outcome of evaluating one line. Err is set when the line
// was skipped.
type Result struct {
	ID          string
	ProcessorID string
	Line        int
	Expression  string
	Measurement Measurement
	Err         error
	EvaluatedAt time.Time
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Processor evaluates expression lines and keeps one Result per line. A
// failing line is recorded and logged; processing carries on with the next.
type Processor struct {
	ID      string
	results []Result
	mutex   sync.Mutex
	logs    []string
	hooks   []HookFunc
	logger  *slog.Logger
	db      *sql.DB
	now     func() time.Time
}

func NewProcessor(id string) *Processor {
	if id == "" {
		id = uuid.NewString()
	}
	return &Processor{
		ID:     id,
		logger: logger.Discard(),
		now:    time.Now,
	}
}

func (p *Processor) WithLogger(l *slog.Logger) *Processor {
	if l != nil {
		p.logger = l.With("processor_id", p.ID)
	}
	return p
}

func (p *Processor) AddHook(hook HookFunc) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.hooks = append(p.hooks, hook)
}

// ProcessLine evaluates line and records the result. lineNo is only used for
// reporting.
func (p *Processor) ProcessLine(lineNo int, line string) Result {
	line = strings.TrimSpace(line)
	m, err := EvaluateLine(line)
	res := Result{
		ID:          uuid.NewString(),
		ProcessorID: p.ID,
		Line:        lineNo,
		Expression:  line,
		Measurement: m,
		Err:         err,
		EvaluatedAt: p.now().UTC(),
	}

	p.mutex.Lock()
	p.results = append(p.results, res)
	if err != nil {
		p.logs = append(p.logs, fmt.Sprintf("line %d skipped: %v", lineNo, err))
	} else {
		p.logs = append(p.logs, fmt.Sprintf("line %d: %s", lineNo, m))
	}
	p.mutex.Unlock()

	if err != nil {
		p.logger.Warn("line skipped", "line", lineNo, "expression", line, "error", err)
	} else {
		p.logger.Debug("line evaluated", "line", lineNo, "result", m.String())
	}

	if p.db != nil {
		if perr := p.persistResult(res); perr != nil {
			p.logger.Error("persist result", "line", lineNo, "error", perr)
		}
	}
	if herr := RunHooks(res, p); herr != nil {
		p.logger.Error("hook failed", "line", lineNo, "error", herr)
	}
	return res
}

// ProcessReader evaluates every non-blank line of r and returns how many
// lines were evaluated. The error is only about reading r.
func (p *Processor) ProcessReader(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	lineNo, n := 0, 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		p.ProcessLine(lineNo, line)
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("read line %d: %w", lineNo+1, err)
	}
	return n, nil
}

func (p *Processor) ProcessFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	p.logger.Info("processing file", "path", path)
	return p.ProcessReader(f)
}

func (p *Processor) Results() []Result {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]Result(nil), p.results...)
}

// Measurements returns the successful results in input order.
func (p *Processor) Measurements() []Measurement {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	var ms []Measurement
	for _, res := range p.results {
		if res.OK() {
			ms = append(ms, res.Measurement)
		}
	}
	return ms
}

// SortedMeasurements orders the successful results by raw magnitude,
// ascending. Units are not normalized first.
func (p *Processor) SortedMeasurements() []Measurement {
	ms := p.Measurements()
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].magnitude < ms[j].magnitude
	})
	return ms
}

func (p *Processor) Magnitudes() []float64 {
	return Magnitudes(p.Measurements())
}

func (p *Processor) Failures() []Result {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	var failed []Result
	for _, res := range p.results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

func (p *Processor) GetLogs() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]string(nil), p.logs...) // return a copy
}

func (p *Processor) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

func RunHooks(res Result, p *Processor) error {
	p.mutex.Lock()
	hooks := append([]HookFunc(nil), p.hooks...)
	p.mutex.Unlock()
	for _, hook := range hooks {
		if err := hook(res, p); err != nil {
			return err
		}
	}
	return nil
}
