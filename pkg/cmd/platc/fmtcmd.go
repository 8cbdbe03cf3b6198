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

	"github.com/spf13/cobra"

	"github.com/plat-lang/platc/pkg/parser"
	"github.com/plat-lang/platc/pkg/printer"
	"github.com/plat-lang/platc/pkg/source"
)

var fmtCmd = &cobra.Command{
	Use:     "fmt path.plat",
	Short:   "Re-serialize a Plat source file to its canonical structural form.",
	Long:    "fmt parses a file and prints it back out via pkg/printer's minimal printer. This is a structural re-serialization, not a layout-preserving formatter (comment placement and blank lines are not preserved); it is mainly useful for confirming a file parses.",
	Aliases: []string{"format"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runFmtCmd(args[0])
	},
}

func runFmtCmd(path string) {
	requirePlatFile(path)

	file, err := source.ReadFile(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	prog, diagErr := parser.Parse(file)
	if diagErr != nil {
		fmt.Println(diagErr.Error())
		os.Exit(1)
	}

	fmt.Print(printer.Print(prog))
}
