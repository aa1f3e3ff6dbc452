package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rgehrsitz/appraise/internal/runtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInteractive_Fired(t *testing.T) {
	out, err := execute(t, "20\nPoor\nPoor\n")
	require.NoError(t, err)
	assert.Equal(t, "Employee evaluation result: Fired\n", out)
}

func TestInteractive_Raise(t *testing.T) {
	out, err := execute(t, "85\nExcellent\nGood\n")
	require.NoError(t, err)
	assert.Equal(t, "Employee evaluation result: Gets a Raise\n", out)
}

func TestInteractive_BadProductivity(t *testing.T) {
	_, err := execute(t, "lots\nGood\nGood\n")
	assert.ErrorContains(t, err, "productivity must be an integer")
}

func TestInteractive_TruncatedInput(t *testing.T) {
	_, err := execute(t, "85\nGood\n")
	assert.ErrorContains(t, err, "input ended before the review was complete")
}

func TestBatch(t *testing.T) {
	factsPath := writeFile(t, "facts.jsonl", `{"productivity": 20, "teamwork": "Poor", "communication": "Poor"}

# reviewed by HR
{"productivity": 85, "teamwork": "Good", "communication": "Excellent"}
{"productivity": 75, "teamwork": "Poor", "communication": "Adequate"}
`)
	metricsPath := filepath.Join(t.TempDir(), "appraise.prom")

	out, err := execute(t, "", "--facts", factsPath, "--workers", "2", "--metrics-file", metricsPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	var results []runtime.Result
	for _, line := range lines {
		var r runtime.Result
		require.NoError(t, json.Unmarshal([]byte(line), &r))
		assert.NotEmpty(t, r.ID)
		results = append(results, r)
	}

	assert.Equal(t, 1, results[0].Line)
	assert.Equal(t, "Fired", results[0].Outcome)
	assert.Equal(t, 4, results[1].Line)
	assert.Equal(t, "Gets a Raise", results[1].Outcome)
	assert.Equal(t, 5, results[2].Line)
	assert.Equal(t, "Needs Improvement", results[2].Outcome)
	assert.Equal(t, runtime.SourceStandard, results[2].Source)
	assert.Equal(t, "teamwork-good", results[2].Rule)
	assert.Equal(t, 1, results[2].Index)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "appraise_evaluations_total")
}

func TestBatch_Stdin(t *testing.T) {
	out, err := execute(t, `{"productivity": 100, "teamwork": "Good", "communication": "Adequate"}`+"\n", "--facts", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"outcome":"Exceeds Expectations"`)
	assert.Contains(t, out, `"source":"default"`)
	assert.Contains(t, out, `"index":-1`)
}

func TestBatch_BadLine(t *testing.T) {
	factsPath := writeFile(t, "facts.jsonl", "{\"productivity\": 20}\n{\"productivity\": true}\n")
	_, err := execute(t, "", "--facts", factsPath)
	assert.ErrorContains(t, err, "facts line 2")

	factsPath = writeFile(t, "facts.jsonl", "{\"productivity\": 20} {\"productivity\": 99}\n")
	_, err = execute(t, "", "--facts", factsPath)
	assert.ErrorContains(t, err, "facts line 1", "two objects on one line")

	factsPath = writeFile(t, "facts.jsonl", "{\"productivity\": 20}\n\n{\"productivity\": 90} trailing garbage\n")
	_, err = execute(t, "", "--facts", factsPath)
	assert.ErrorContains(t, err, "facts line 3")

	_, err = execute(t, "", "--facts", filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestCustomRules(t *testing.T) {
	rulesPath := writeFile(t, "rules.yaml", `
rules:
  - fact: teamwork
    value: Good
    outcome: Coaching
`)
	out, err := execute(t, "90\nPoor\nExcellent\n", "--rules", rulesPath)
	require.NoError(t, err)
	assert.Equal(t, "Employee evaluation result: Coaching\n", out)

	_, err = execute(t, "", "--rules", writeFile(t, "rules.json", `{"rules": []}`))
	assert.ErrorContains(t, err, "failed to load rules")
}

func TestConfigAndFlags(t *testing.T) {
	configPath := writeFile(t, "appraise.yaml", "batch:\n  workers: 3\n")
	_, err := execute(t, "20\nPoor\nPoor\n", "--config", configPath, "--workers", "0")
	assert.ErrorContains(t, err, "batch.workers")

	_, err = execute(t, "", "unexpected-arg")
	assert.Error(t, err)
}

func TestReadJobs_TrailingData(t *testing.T) {
	_, err := readJobs(strings.NewReader("{\"productivity\": 20, \"teamwork\": \"Poor\"} {\"productivity\": 99}\n"))
	assert.ErrorContains(t, err, "facts line 1")
}

func TestReadJobs(t *testing.T) {
	jobs, err := readJobs(strings.NewReader("\n  \n{\"teamwork\": \"Good\"}\n"))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 3, jobs[0].Line)
	text, ok := jobs[0].Facts["teamwork"].AsText()
	assert.True(t, ok)
	assert.Equal(t, "Good", text)
}
