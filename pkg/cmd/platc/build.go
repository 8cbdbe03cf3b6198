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
package platc

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/plat-lang/platc/pkg/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build path.plat",
	Short: "Type-check and lower a Plat module, reporting any diagnostics.",
	Long:  "build runs the full front end (parse, resolve, type-check, lower) over a module and its dependencies without executing it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runBuildCmd(cmd, args[0])
	},
}

func init() {
	buildCmd.Flags().Bool("quiet", false, "suppress the success summary on a clean build")
}

func runBuildCmd(cmd *cobra.Command, path string) {
	requirePlatFile(path)

	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	root := filepath.Dir(path)

	log.WithField("root", root).Debug("resolving module graph")

	mod, diags, err := driver.Compile(root)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if len(diags) > 0 {
		reportDiagnostics(diags)
		os.Exit(1)
	}

	if !GetFlag(cmd, "quiet") {
		fmt.Printf("platc: %s builds cleanly (%d functions, %d classes, %d enums)\n",
			path, len(mod.Functions), len(mod.Classes), len(mod.Enums))
	}
}
