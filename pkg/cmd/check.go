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

	"github.com/consensys/go-natded/pkg/proof"
	"github.com/consensys/go-natded/pkg/util"
	"github.com/consensys/go-natded/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] proof_file...",
	Short: "Check one or more natural deduction proofs.",
	Long: `Check one or more natural deduction proofs, reporting the status of every line.
	Proofs can be given either as JSON or YAML files.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := checkConfig{
			strict:      getFlag(cmd, "strict"),
			quiet:       getFlag(cmd, "quiet"),
			ansiEscapes: getFlag(cmd, "ansi-escapes"),
			firstLine:   getUint(cmd, "first-line"),
		}
		//
		ok := true
		//
		for _, filename := range args {
			ok = checkFile(cmd.OutOrStdout(), filename, cfg) && ok
		}
		//
		if !ok {
			os.Exit(1)
		}
	},
}

// check config encapsulates the parameters used when checking proofs.
type checkConfig struct {
	// Treat incomplete proofs as failures.
	strict bool
	// Report only the verdict for each proof, not its lines.
	quiet bool
	// Specifies whether or not to colour the report.
	ansiEscapes bool
	// Number given to the first line of each proof.
	firstLine uint
}

// Verdict summarises the outcome of checking a proof.
type Verdict uint

const (
	// Valid indicates every line is correctly justified.
	Valid Verdict = iota
	// Incomplete indicates that something is missing from at least one line,
	// but nothing present is wrong.
	Incomplete
	// Invalid indicates that at least one line is wrongly justified.
	Invalid
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case Incomplete:
		return "incomplete"
	default:
		return "invalid"
	}
}

// Accepted determines whether a verdict constitutes success.
func (v Verdict) Accepted(strict bool) bool {
	return v == Valid || (v == Incomplete && !strict)
}

// Judge determines the verdict for a proof.  Any line whose rule application
// does not hold, or which has a fault other than something missing, makes the
// proof invalid.
func Judge(p *proof.Proof) Verdict {
	if p.Status().TransitivelyOk {
		return Valid
	}
	//
	verdict := Valid
	//
	for part := range p.Walk() {
		if line, ok := part.(*proof.Line); ok {
			status := line.Status()
			//
			switch {
			case status.Ok:
				continue
			case len(status.Faults()) == 0 || !status.OnlyMissing:
				return Invalid
			default:
				verdict = Incomplete
			}
		}
	}
	//
	return verdict
}

// Check a single proof file, writing a report and returning whether the proof
// was accepted.
func checkFile(w io.Writer, filename string, cfg checkConfig) bool {
	stats := util.NewPerfStats()
	//
	p, err := loadProof(filename, cfg.firstLine)
	if err != nil {
		log.Error(err)
		return false
	}
	//
	verdict := Judge(p)
	//
	fmt.Fprintf(w, "%s: %s\n", filename, verdict)
	//
	if !cfg.quiet {
		table := reportTable(p)
		table.AnsiEscapes(cfg.ansiEscapes)
		table.Print(w, "  ")
	}
	//
	stats.Log(fmt.Sprintf("checking %s (%d lines)", filename, p.Size()))
	//
	return verdict.Accepted(cfg.strict)
}

// Construct a table with one row per line of a proof, showing its address,
// expression, rule, references and faults.  Nested lines are marked with one
// bar per enclosing subproof.
func reportTable(p *proof.Proof) *termio.TablePrinter {
	var (
		table   = termio.NewTablePrinter(5)
		bad     = termio.BoldAnsiEscape().FgColour(termio.TERM_RED).Build()
		missing = termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW).Build()
		good    = termio.NewAnsiEscape().FgColour(termio.TERM_GREEN).Build()
		frame   = termio.NewAnsiEscape().FgColour(termio.TERM_BLUE).Build()
	)
	//
	for part := range p.Walk() {
		line, ok := part.(*proof.Line)
		if !ok {
			continue
		}
		//
		status := line.Status()
		row := table.AddRow(line.Address(), exprText(line), ruleText(line), refsText(line), faultText(status))
		//
		switch {
		case !status.Ok && (len(status.Faults()) == 0 || !status.OnlyMissing):
			table.SetEscape(4, row, bad)
		case !status.Ok:
			table.SetEscape(4, row, missing)
		case status.TransitivelyOk:
			table.SetEscape(0, row, good)
		}
		//
		if line.IsAssumption() {
			table.SetEscape(2, row, frame)
		}
	}
	//
	return table
}

func exprText(line *proof.Line) string {
	text := line.Text()
	if text == "" {
		text = "_"
	}
	//
	return strings.Repeat("| ", len(line.Context())) + text
}

func ruleText(line *proof.Line) string {
	if line.Rule() == nil {
		return "_"
	}
	//
	return line.Rule().Name()
}

func refsText(line *proof.Line) string {
	refs := make([]string, line.NumRefs())
	//
	for i, ref := range line.Refs() {
		if ref == nil {
			refs[i] = "_"
		} else {
			refs[i] = ref.Address()
		}
	}
	//
	return strings.Join(refs, ", ")
}

// Describe the faults of a line, naming the facet each arises from.  A line
// whose facets are all fine may still fail because the rule application as a
// whole does not hold (e.g. where two references require inconsistent
// bindings).
func faultText(status proof.Status) string {
	var faults []string
	//
	for _, f := range status.Expr {
		faults = append(faults, fmt.Sprintf("expr %s", f))
	}
	//
	for _, f := range status.Rule {
		faults = append(faults, fmt.Sprintf("rule %s", f))
	}
	//
	for i, fs := range status.Refs {
		for _, f := range fs {
			faults = append(faults, fmt.Sprintf("ref %d %s", i+1, f))
		}
	}
	//
	if !status.Ok && len(faults) == 0 {
		return "rule application does not hold"
	}
	//
	return strings.Join(faults, ", ")
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("strict", false, "treat incomplete proofs as failures")
	checkCmd.Flags().BoolP("quiet", "q", false, "report only the verdict for each proof")
	checkCmd.Flags().Bool("ansi-escapes", termio.SupportsEscapes(os.Stdout),
		"specify whether to allow ANSI escapes or not (e.g. for colour reports)")
	checkCmd.Flags().Uint("first-line", 1, "number given to the first line of each proof")
}
