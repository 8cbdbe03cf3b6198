// Copyright The Plat Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package platc implements the `platc` command-line driver: build, run,
// and fmt subcommands over cobra, following the teacher's
// pkg/cmd/zkc/root.go rootCmd/Execute split.
package platc

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is filled in when building via "make", but *not* when installed
// via "go install".
var Version string

var rootCmd = &cobra.Command{
	Use:   "platc",
	Short: "A compiler and runtime for the Plat language.",
	Long:  "platc builds, runs, and formats Plat (.plat) source files.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("platc ")
			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Print("(unknown version)")
			}
			fmt.Println()
			return
		}

		cmd.Help()
	},
}

// Execute adds every subcommand to rootCmd and runs it; called once from
// cmd/platc's main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().Bool("version", false, "print version information")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fmtCmd)
}
