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
	"github.com/plat-lang/platc/pkg/interp"
	"github.com/plat-lang/platc/pkg/runtime"
	"github.com/plat-lang/platc/pkg/runtime/value"
)

var runCmd = &cobra.Command{
	Use:   "run path.plat",
	Short: "Compile and execute a Plat module's main function.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRunCmd(cmd, args[0])
	},
}

func runRunCmd(cmd *cobra.Command, path string) {
	requirePlatFile(path)

	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	root := filepath.Dir(path)

	mod, diags, err := driver.Compile(root)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if len(diags) > 0 {
		reportDiagnostics(diags)
		os.Exit(1)
	}

	// Interp and the runtime's scheduler are mutually referential: the
	// scheduler needs to re-enter Interp.Call to run a spawned task's
	// body, but Interp needs an extern table at construction. Build Interp
	// first with an empty table, then backfill it once the runtime (which
	// closes over Interp.Call) exists.
	ip := interp.New(mod, nil)
	rt := runtime.New(ip.Call)
	ip.Externs = rt.Externs()

	log.WithField("root", root).Debug("running main")

	result, err := ip.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		if jerr := rt.Scheduler.Join(); jerr != nil {
			fmt.Fprintln(os.Stderr, jerr)
		}

		os.Exit(1)
	}

	if jerr := rt.Scheduler.Join(); jerr != nil {
		fmt.Fprintln(os.Stderr, jerr)
		os.Exit(1)
	}

	if result.Kind != value.KindVoid {
		fmt.Println(result.String())
	}
}
