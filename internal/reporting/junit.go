// Package reporting converts a sweep outcome into machine-readable report
// formats for CI consumption.
package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/NeurodataWithoutBorders/nwbsweep/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one sweep.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one array task.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure carries the scheduler state and log excerpt of a failed task.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a still-running or pending task.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit maps a sweep outcome to JUnit XML: completed tasks pass,
// failed tasks fail with the excerpt as body, running/pending tasks are
// skipped so CI does not count them against the sweep.
func ConvertToJUnit(outcome *models.SweepOutcome) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name:      outcome.Label,
		Tests:     outcome.Digest.Total,
		Failures:  len(outcome.Digest.FailedIndices),
		Skipped:   len(outcome.Digest.RunningIndices),
		Timestamp: outcome.Timestamp.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "job_id", Value: outcome.JobID},
			{Name: "completed", Value: strconv.Itoa(outcome.Digest.Completed)},
		},
	}

	for i := range outcome.Tasks {
		suite.TestCases = append(suite.TestCases, convertTask(outcome.Label, &outcome.Tasks[i]))
	}

	return &JUnitTestSuites{
		Tests:      outcome.Digest.Total,
		Failures:   len(outcome.Digest.FailedIndices),
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertTask(label string, task *models.TaskResult) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      fmt.Sprintf("task-%d", task.Index),
		Classname: label,
		Time:      elapsedSeconds(task.Elapsed),
	}

	switch task.Class() {
	case models.ClassFailed:
		tc.Failure = &JUnitFailure{
			Message: string(task.State),
			Type:    "TaskFailed",
			Body:    task.Excerpt,
		}
	case models.ClassRunning:
		tc.Skipped = &JUnitSkipped{Message: string(task.State)}
	}

	return tc
}

// elapsedSeconds parses scheduler wall time ([days-]HH:MM:SS) best-effort;
// the "-" sentinel and anything unparsable map to zero.
func elapsedSeconds(elapsed string) float64 {
	var days int
	rest := elapsed
	if i := strings.IndexByte(rest, '-'); i > 0 {
		d, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0
		}
		days = d
		rest = rest[i+1:]
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 3 {
		return 0
	}
	var total int
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0
		}
		total = total*60 + v
	}
	return float64(days*24*3600 + total)
}

// WriteJUnit renders the suites as indented XML with the standard header.
func WriteJUnit(w io.Writer, suites *JUnitTestSuites) error {
	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
