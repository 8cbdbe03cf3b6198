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
	"strings"

	"github.com/spf13/cobra"

	"github.com/plat-lang/platc/pkg/diag"
)

// GetFlag gets an expected bool flag, or exits if the flag is undeclared.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if the flag is
// undeclared.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// requirePlatFile validates that path has a ".plat" extension, exiting
// with a usage error otherwise.
func requirePlatFile(path string) {
	if filepath.Ext(path) != ".plat" {
		fmt.Printf("platc: %s is not a .plat file\n", path)
		os.Exit(2)
	}
}

// reportDiagnostics renders one line per diagnostic to stderr. Full
// label/caret rendering is an external collaborator's job; this is the
// minimal rendering the CLI needs to be usable.
func reportDiagnostics(diags []*diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Error())
	}
}

// targetPath returns the output path for a compiled module under
// target/plat/<stem>, mirroring common build-tool output-directory
// conventions.
func targetPath(root string) string {
	stem := strings.TrimSuffix(filepath.Base(root), filepath.Ext(root))
	if stem == "" || stem == "." {
		stem = filepath.Base(filepath.Clean(root))
	}

	return filepath.Join("target", "plat", stem)
}
