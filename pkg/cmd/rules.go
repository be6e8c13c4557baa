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
	"os"
	"strings"

	"github.com/consensys/go-natded/pkg/logic"
	"github.com/consensys/go-natded/pkg/rule"
	"github.com/consensys/go-natded/pkg/util/termio"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [flags] [rule_name...]",
	Short: "List the available inference rules.",
	Long: `List the available inference rules, or just those named.
	Each rule is shown with its premises and conclusion.`,
	Run: func(cmd *cobra.Command, args []string) {
		rules := rule.All()
		//
		if len(args) > 0 {
			rules = nil
			//
			for _, name := range args {
				r, ok := rule.Lookup(name)
				if !ok {
					fmt.Printf("unknown rule %s\n", name)
					os.Exit(2)
				}
				//
				rules = append(rules, r)
			}
		}
		//
		printRules(cmd.OutOrStdout(), rules, getFlag(cmd, "lisp"))
	},
}

func printRules(w io.Writer, rules []*rule.Rule, lisp bool) {
	table := termio.NewTablePrinter(3)
	table.AnsiEscapes(false)
	//
	for _, r := range rules {
		table.AddRow(r.Name(), inferenceText(r, lisp), r.Description())
	}
	//
	table.Print(w, "")
}

// Render the premises and conclusion of a rule, for example "?1, ?1 implies ?2
// |- ?2".  Patterns are optionally given in lisp form.
func inferenceText(r *rule.Rule, lisp bool) string {
	var (
		premises []string
		show     = func(e logic.Expr) string { return e.String() }
	)
	//
	if lisp {
		show = func(e logic.Expr) string { return logic.ToLisp(e).String(false) }
	}
	//
	for _, f := range r.Facts() {
		premises = append(premises, show(f))
	}
	//
	for _, s := range r.Subproofs() {
		premises = append(premises, fmt.Sprintf("[%s ... %s]", show(s.Assumption), show(s.Conclusion)))
	}
	//
	if len(premises) == 0 {
		return fmt.Sprintf("|- %s", show(r.Conclusion()))
	}
	//
	return fmt.Sprintf("%s |- %s", strings.Join(premises, ", "), show(r.Conclusion()))
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().Bool("lisp", false, "show patterns in lisp form")
}
