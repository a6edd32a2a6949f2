// Smoke-tests a running API instance end to end: generates a timetable,
// commits it, asks for absence repairs and computes a seating arrangement.
// Exits non-zero on the first failed check.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type check struct {
	Name       string
	Method     string
	Path       string
	Body       interface{}
	WantStatus int
}

type result struct {
	Check    check
	Status   int
	Duration time.Duration
	Err      error
}

func main() {
	var (
		base    string
		section string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080/api", "API base URL")
	flag.StringVar(&section, "section", "SMOKE-A", "section name used for the run")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	checks := []check{
		{
			Name:   "generate timetable",
			Method: http.MethodPost,
			Path:   "/generate",
			Body: map[string]interface{}{
				"courses": []map[string]interface{}{
					{"name": "Maths", "hours": 3, "faculty": "Rao"},
					{"name": "Physics", "hours": 2, "faculty": "Menon"},
				},
				"rooms":       []string{"R1", "R2"},
				"sectionName": section,
			},
			WantStatus: http.StatusOK,
		},
		{
			Name:   "save schedule",
			Method: http.MethodPost,
			Path:   "/save_schedule",
			Body: map[string]interface{}{
				"sectionName": section,
				"schedule": map[string]interface{}{
					"Monday": map[string]interface{}{
						"9:00 AM": map[string]string{"courseName": "Maths", "facultyName": "Rao", "roomName": "R1"},
					},
				},
			},
			WantStatus: http.StatusCreated,
		},
		{
			Name:       "list saved schedules",
			Method:     http.MethodGet,
			Path:       "/saved_schedules",
			WantStatus: http.StatusOK,
		},
		{
			Name:   "find absence solutions",
			Method: http.MethodPost,
			Path:   "/adjustments/find-solutions",
			Body: map[string]string{
				"teacherName": "Rao",
				"startDate":   time.Now().UTC().Format("2006-01-02"),
				"endDate":     time.Now().UTC().Format("2006-01-02"),
			},
			WantStatus: http.StatusOK,
		},
		{
			Name:   "generate exam seating",
			Method: http.MethodPost,
			Path:   "/generate_exam_seating",
			Body: map[string]interface{}{
				"students": []map[string]string{
					{"name": "Asha", "rollNo": "1", "branch": "CSE"},
					{"name": "Ravi", "rollNo": "2", "branch": "ECE"},
				},
				"rooms": []map[string]interface{}{
					{"name": "Hall A", "rows": 1, "cols": 2},
				},
			},
			WantStatus: http.StatusOK,
		},
		{
			Name:       "delete schedule",
			Method:     http.MethodPost,
			Path:       "/delete_schedule",
			Body:       map[string]string{"sectionName": section},
			WantStatus: http.StatusNoContent,
		},
	}

	failed := 0
	results := make([]result, 0, len(checks))
	for _, c := range checks {
		res := run(client, base, c)
		if res.Err != nil || res.Status != c.WantStatus {
			failed++
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Failed checks: %d/%d\n", failed, len(checks))
	if failed > 0 {
		os.Exit(1)
	}
}

func run(client *http.Client, base string, c check) result {
	res := result{Check: c}

	var body io.Reader
	if c.Body != nil {
		data, err := json.Marshal(c.Body)
		if err != nil {
			res.Err = fmt.Errorf("marshal body: %w", err)
			return res
		}
		body = bytes.NewReader(data)
	}

	url := strings.TrimRight(base, "/") + c.Path
	req, err := http.NewRequest(c.Method, url, body)
	if err != nil {
		res.Err = err
		return res
	}
	if c.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close() //nolint:errcheck
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	res.Status = resp.StatusCode
	return res
}

func printReport(results []result) {
	fmt.Println("Smoke Test Report")
	fmt.Println("=================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if res.Status != res.Check.WantStatus {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s (%s)\n", status, res.Check.Method, res.Check.Path, res.Check.Name)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  Status: %d, want %d (%s)\n", res.Status, res.Check.WantStatus, res.Duration)
	}
}
