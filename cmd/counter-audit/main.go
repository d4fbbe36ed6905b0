package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type counters struct {
	TotalClasses int `json:"totalClasses"`
	Present      int `json:"present"`
	Absent       int `json:"absent"`
}

type consistencyReport struct {
	SubjectID  int64    `json:"subjectId"`
	Stored     counters `json:"stored"`
	Recomputed counters `json:"recomputed"`
	Consistent bool     `json:"consistent"`
}

type auditResult struct {
	Subject  subject
	Report   consistencyReport
	Error    error
	Duration time.Duration
}

func main() {
	var (
		baseURL string
		timeout time.Duration
	)

	flag.StringVar(&baseURL, "base", "http://localhost:3000", "Attendance API base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	results, err := audit(client, baseURL)
	if err != nil {
		log.Fatalf("failed to list subjects: %v", err)
	}

	drifted, failed := printReport(os.Stdout, results)
	fmt.Printf("Drifted subjects: %d, Failed checks: %d\n", drifted, failed)
	if drifted > 0 || failed > 0 {
		os.Exit(1)
	}
}

// audit checks every subject's stored counters against its records.
func audit(client *http.Client, base string) ([]auditResult, error) {
	var subjects []subject
	if _, err := getJSON(client, base, "/api/subjects", &subjects); err != nil {
		return nil, err
	}

	results := make([]auditResult, 0, len(subjects))
	for _, sub := range subjects {
		res := auditResult{Subject: sub}
		res.Duration, res.Error = getJSON(client, base, fmt.Sprintf("/api/subjects/%d/consistency", sub.ID), &res.Report)
		results = append(results, res)
	}
	return results, nil
}

func getJSON(client *http.Client, base, path string, dest interface{}) (time.Duration, error) {
	if client == nil {
		return 0, errors.New("nil client")
	}
	url := strings.TrimRight(base, "/") + path
	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	elapsed := time.Since(start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return elapsed, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return elapsed, fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return elapsed, fmt.Errorf("decode %s: %w", path, err)
	}
	return elapsed, nil
}

func printReport(w io.Writer, results []auditResult) (drifted, failed int) {
	fmt.Fprintln(w, "Counter Audit Report")
	fmt.Fprintln(w, "====================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Error != nil:
			status = "ERROR"
			failed++
		case !res.Report.Consistent:
			status = "DRIFT"
			drifted++
		}
		fmt.Fprintf(w, "[%s] subject %d %q (%s)\n", status, res.Subject.ID, res.Subject.Name, res.Duration)
		if res.Error != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Error)
			continue
		}
		if !res.Report.Consistent {
			fmt.Fprintf(w, "  Stored: total=%d present=%d absent=%d\n",
				res.Report.Stored.TotalClasses, res.Report.Stored.Present, res.Report.Stored.Absent)
			fmt.Fprintf(w, "  Recomputed: total=%d present=%d absent=%d\n",
				res.Report.Recomputed.TotalClasses, res.Report.Recomputed.Present, res.Report.Recomputed.Absent)
		}
	}
	return drifted, failed
}
