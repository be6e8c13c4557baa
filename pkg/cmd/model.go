// Copyright Consensys Software Inc.
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
package cmd

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/consensys/go-natded/pkg/logic"
	"github.com/consensys/go-natded/pkg/sat"
	"github.com/consensys/go-natded/pkg/util"
	"github.com/spf13/cobra"
)

var modelCmd = &cobra.Command{
	Use:   "model [flags] expression",
	Short: "Find assignments satisfying (or refuting) an expression.",
	Long: `Find an assignment to the variables of an expression which makes it true.
	Optionally, enumerate all such assignments or search for a counterexample
	instead.  Multiple arguments are joined to form a single expression.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := modelConfig{
			all:     getFlag(cmd, "all"),
			limit:   getUint(cmd, "limit"),
			counter: getFlag(cmd, "counter"),
		}
		//
		e, ok := parseExprArg(cmd.OutOrStdout(), strings.Join(args, " "))
		if !ok {
			os.Exit(2)
		}
		//
		stats := util.NewPerfStats()
		runModel(cmd.OutOrStdout(), e, cfg)
		stats.Log("model search")
	},
}

type modelConfig struct {
	// Enumerate every model (up to the limit).
	all bool
	// Maximum number of models to enumerate, where zero means unlimited.
	limit uint
	// Search for a counterexample rather than a model.
	counter bool
}

func runModel(w io.Writer, e logic.Expr, cfg modelConfig) {
	switch {
	case cfg.counter:
		if model, ok := sat.CounterExample(e); ok {
			fmt.Fprintf(w, "counterexample: %s\n", assignmentText(model))
		} else {
			fmt.Fprintln(w, "valid")
		}
	case cfg.all || cfg.limit > 0:
		models := sat.Models(e, cfg.limit)
		//
		for _, model := range models {
			fmt.Fprintln(w, assignmentText(model))
		}
		//
		fmt.Fprintf(w, "%d model(s)\n", len(models))
	default:
		if model, ok := sat.Model(e); ok {
			fmt.Fprintln(w, assignmentText(model))
		} else {
			fmt.Fprintln(w, "unsatisfiable")
		}
	}
}

// Render an assignment in variable order, for example "p=true q=false".
func assignmentText(model logic.Assignment) string {
	if len(model) == 0 {
		return "{}"
	}
	//
	var bindings []string
	//
	for _, name := range slices.Sorted(maps.Keys(model)) {
		bindings = append(bindings, fmt.Sprintf("%s=%t", name, model[name]))
	}
	//
	return strings.Join(bindings, " ")
}

func init() {
	rootCmd.AddCommand(modelCmd)
	modelCmd.Flags().Bool("all", false, "enumerate every satisfying assignment")
	modelCmd.Flags().Uint("limit", 0, "maximum number of assignments to enumerate")
	modelCmd.Flags().Bool("counter", false, "search for a counterexample instead")
}
