// Copyright © 2017 Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// jobsCmd groups sub-commands related to inspecting past runs. Narrowed from
// azcopy's "jobs" group (which inspects persisted job-plan files) since
// bitslides keeps no resumable job state between runs (spec.md §6 "Persisted
// state: None beyond the slide layout itself and optional trace logs") —
// only the trace log survives, so "jobs list" summarizes that instead.
var jobsCmd = &cobra.Command{
	Use:     "jobs",
	Short:   "Sub-commands related to inspecting past runs",
	Long:    "Sub-commands related to inspecting past runs via their trace logs.",
	Example: "bitslides jobs list <trace-file>",
}

var jobsListCmd = &cobra.Command{
	Use:     "list <trace-file>",
	Short:   "Summarize the events recorded in a trace file",
	Args:    cobra.ExactArgs(1),
	RunE:    runJobsList,
	Example: "bitslides jobs list /var/log/bitslides/20260731_120000.log",
}

func init() {
	jobsCmd.AddCommand(jobsListCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	counts := map[string]int{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		kind := extractField(scanner.Text(), "kind=")
		if kind == "" {
			continue
		}
		counts[kind]++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	for kind, n := range counts {
		fmt.Fprintf(os.Stdout, "%-16s %d\n", kind, n)
	}
	return nil
}

// extractField pulls the value of a "key=value" token out of one trace line.
func extractField(line, key string) string {
	idx := strings.Index(line, key)
	if idx < 0 {
		return ""
	}
	rest := line[idx+len(key):]
	if sp := strings.IndexByte(rest, ' '); sp >= 0 {
		return rest[:sp]
	}
	return rest
}
