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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/debuti/bitslides/common"
)

// BitslidesVersion is the version cobra reports for --version. It is a plain
// const, not stamped at build time the way azcopy stamps
// common.AzcopyVersion.
const BitslidesVersion = "0.1.0"

var (
	configPath   string
	verboseCount int
)

// rootCmd represents the base command. Running it with no subcommand runs one
// pass of the pipeline (runOnce); there is no separate "run" subcommand
// (spec.md §6's CLI surface names no positional args and a single pass per
// invocation).
var rootCmd = &cobra.Command{
	Use:     "bitslides",
	Version: BitslidesVersion,
	Short:   "Move slide-addressed files between mounted volumes",
	Long: `bitslides discovers every mounted volume that carries a slides
container, builds a transfer plan from each volume's slide subfolders and
their routing hints, and moves files toward the volumes they're addressed to.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the main configuration file (required)")
	rootCmd.PersistentFlags().CountVarP(&verboseCount, "verbose", "v", "increase log verbosity (-v, -vv, -vvv)")
	rootCmd.Flags().Bool("dry-run", false, "plan and log what would move without touching any file")
}

// Execute is the package's single entry point, called from cmd/bitslides/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func logLevelFromFlags() common.LogLevel {
	return common.FromVerbosityCount(verboseCount)
}
