package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-dashboard/core"
	"github.com/trezcool/masomo-dashboard/core/auth"
)

// Status of a probe.
type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusWarn  Status = "WARN"
	StatusReady Status = "READY" // placeholder, not counted in the pass rate
)

// Categories
const (
	CategoryPage        = "Page Load"
	CategoryAPI         = "API"
	CategoryFeatures    = "Features"
	CategoryPerformance = "Performance"
	CategoryData        = "Data"
)

const (
	defaultTimeout = 5 * time.Second
	mountMarker    = `id="root"`

	slowLatency     = 500 * time.Millisecond
	tooSlowLatency  = 1000 * time.Millisecond
	studentsPath    = "/api/students"
	maxBodyReadSize = 1 << 20
)

var apiPaths = []string{studentsPath, "/api/classes", "/api/sections", "/api/academic-years/current"}

// ProbeResult is the outcome of one check.
type ProbeResult struct {
	Category string
	TestName string
	Status   Status
	Detail   string
}

// Capability is an expected dashboard feature listed in the report.
// Placeholder capabilities are reported as READY.
type Capability struct {
	Name        string
	Placeholder bool
}

// Capabilities documents what the dashboard is expected to offer. Nothing is verified live.
var Capabilities = []Capability{
	{Name: "Overview tab"},
	{Name: "Students tab"},
	{Name: "Events tab"},
	{Name: "Calendar tab"},
	{Name: "Event form validation"},
	{Name: "Calendar month navigation"},
	{Name: "Recent activity widget"},
	{Name: "Analytics charts", Placeholder: true},
}

type (
	Options struct {
		Host     string
		Port     int
		Timeout  time.Duration
		PagePath string
		Session  auth.Session // applied to the API probes when set
		Logger   core.Logger
	}

	// Runner probes a running dashboard deployment. Probes run one after the other.
	Runner struct {
		baseURL      string
		pagePath     string
		session      auth.Session
		client       *http.Client
		logger       core.Logger
		capabilities []Capability
	}
)

func NewRunner(opts Options) (*Runner, error) {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(opts.Host, "Host"),
		vala.GreaterThan(opts.Port, 0, "Port"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "creating smoke runner")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pagePath := opts.PagePath
	if pagePath == "" {
		pagePath = "/dashboard"
	}
	return &Runner{
		baseURL:      "http://" + net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		pagePath:     pagePath,
		session:      opts.Session,
		client:       &http.Client{Timeout: timeout},
		logger:       core.OrNop(opts.Logger),
		capabilities: Capabilities,
	}, nil
}

func (r *Runner) BaseURL() string { return r.baseURL }

type response struct {
	code    int
	body    []byte
	latency time.Duration
}

func (r *Runner) get(ctx context.Context, path string, withSession bool) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return response{}, errors.Wrapf(err, "building GET %s", path)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if withSession {
		r.session.ApplyRequest(req)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return response{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxBodyReadSize))
	latency := time.Since(start)
	if err != nil {
		return response{}, errors.Wrapf(err, "reading GET %s", path)
	}
	r.logger.Debug(fmt.Sprintf("GET %s -> %d (%s)", path, resp.StatusCode, latency))
	return response{code: resp.StatusCode, body: body, latency: latency}, nil
}

// Run executes every phase in order and returns the report. Probe failures never stop the run.
func (r *Runner) Run(ctx context.Context) Report {
	rep := Report{Target: r.baseURL, StartedAt: time.Now()}

	r.checkPage(ctx, &rep)
	latencies, students := r.checkAPI(ctx, &rep)
	r.checkCapabilities(&rep)
	r.checkPerformance(&rep, latencies)
	r.checkDataShape(&rep, students)

	rep.Duration = time.Since(rep.StartedAt)
	return rep
}

func (r *Runner) checkPage(ctx context.Context, rep *Report) {
	name := "GET " + r.pagePath
	resp, err := r.get(ctx, r.pagePath, false)
	switch {
	case err != nil:
		rep.add(CategoryPage, name, StatusFail, err.Error())
		return
	case resp.code != http.StatusOK:
		rep.add(CategoryPage, name, StatusFail, fmt.Sprintf("status %d", resp.code))
		return
	}
	rep.add(CategoryPage, name, StatusPass, fmt.Sprintf("%d ms", resp.latency.Milliseconds()))

	if strings.Contains(string(resp.body), mountMarker) {
		rep.add(CategoryPage, "Mount point", StatusPass, "")
	} else {
		rep.add(CategoryPage, "Mount point", StatusWarn, mountMarker+" not found in page")
	}
}

// checkAPI returns the latencies of the successful probes and the students body if it was fetched.
func (r *Runner) checkAPI(ctx context.Context, rep *Report) ([]time.Duration, []byte) {
	var (
		latencies []time.Duration
		students  []byte
	)
	for _, path := range apiPaths {
		name := "GET " + path
		resp, err := r.get(ctx, path, true)
		if err != nil {
			rep.add(CategoryAPI, name, StatusFail, err.Error())
			continue
		}
		if resp.code != http.StatusOK {
			rep.add(CategoryAPI, name, StatusFail, fmt.Sprintf("status %d", resp.code))
			continue
		}
		latencies = append(latencies, resp.latency)
		rep.add(CategoryAPI, name, StatusPass, fmt.Sprintf("%d ms", resp.latency.Milliseconds()))
		if path == studentsPath {
			students = resp.body
		}
	}
	return latencies, students
}

func (r *Runner) checkCapabilities(rep *Report) {
	for _, c := range r.capabilities {
		if c.Placeholder {
			rep.add(CategoryFeatures, c.Name, StatusReady, "placeholder")
			continue
		}
		rep.add(CategoryFeatures, c.Name, StatusPass, "")
	}
}

func (r *Runner) checkPerformance(rep *Report, latencies []time.Duration) {
	const name = "Average API latency"
	if len(latencies) == 0 {
		rep.add(CategoryPerformance, name, StatusWarn, "no successful API probe")
		return
	}
	var total time.Duration
	for _, l := range latencies {
		total += l
	}
	avg := total / time.Duration(len(latencies))
	detail := fmt.Sprintf("%d ms", avg.Milliseconds())

	switch {
	case avg < slowLatency:
		rep.add(CategoryPerformance, name, StatusPass, detail)
	case avg < tooSlowLatency:
		rep.add(CategoryPerformance, name, StatusPass, detail+" (slow)")
	default:
		rep.add(CategoryPerformance, name, StatusWarn, detail)
	}
}

// checkDataShape runs only when the students probe returned a JSON object.
func (r *Runner) checkDataShape(rep *Report, students []byte) {
	var body map[string]interface{}
	if students == nil || json.Unmarshal(students, &body) != nil {
		return
	}

	if _, ok := body["students"].([]interface{}); ok {
		rep.add(CategoryData, "Students list", StatusPass, "")
	} else {
		rep.add(CategoryData, "Students list", StatusFail, `"students" is not a list`)
	}
	if _, ok := body["total"].(float64); ok {
		rep.add(CategoryData, "Students total", StatusPass, "")
	} else {
		rep.add(CategoryData, "Students total", StatusFail, `"total" is not a number`)
	}
}
