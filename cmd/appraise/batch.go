package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"rgehrsitz/appraise/internal/facts"
	"rgehrsitz/appraise/internal/runtime"

	"github.com/spf13/cobra"
)

func runBatch(cmd *cobra.Command, kb *runtime.KnowledgeBase, path string, workers int, obs runtime.Observer) error {
	var in io.Reader
	if path == "-" {
		in = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open facts file: %w", err)
		}
		defer file.Close()
		in = file
	}

	jobs, err := readJobs(in)
	if err != nil {
		return err
	}

	results, err := kb.EvaluateAll(cmd.Context(), jobs, workers, obs)
	if err != nil {
		return err
	}
	return writeResults(cmd.OutOrStdout(), results)
}

// readJobs decodes one fact bundle per line. Blank lines and lines starting
// with '#' are skipped; line numbers count every line.
func readJobs(in io.Reader) ([]runtime.Job, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var jobs []runtime.Job
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		f, err := facts.DecodeJSON(text)
		if err != nil {
			return nil, fmt.Errorf("facts line %d: %w", line, err)
		}
		jobs = append(jobs, runtime.Job{Line: line, Facts: f})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read facts: %w", err)
	}
	return jobs, nil
}

func writeResults(out io.Writer, results []runtime.Result) error {
	enc := json.NewEncoder(out)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write result for line %d: %w", r.Line, err)
		}
	}
	return nil
}
