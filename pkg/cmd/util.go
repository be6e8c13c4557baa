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

	"github.com/consensys/go-natded/pkg/logic"
	"github.com/consensys/go-natded/pkg/proof"
	"github.com/consensys/go-natded/pkg/syntax"
	"github.com/consensys/go-natded/pkg/util/source"
	"github.com/spf13/cobra"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned integer, or panic if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Load a proof file using a decoder based on the extension of the filename.
func loadProof(filename string, firstLine uint) (*proof.Proof, error) {
	format, err := proof.FormatOf(filename)
	if err != nil {
		return nil, err
	}
	//
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	//
	defer file.Close()
	//
	p, err := proof.Decode(file, format, syntax.ParseExpr, proof.WithFirstLine(firstLine))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return p, nil
}

// Parse an expression given on the command line, reporting any syntax errors
// with appropriate highlighting.
func parseExprArg(w io.Writer, text string) (logic.Expr, bool) {
	e, errs := syntax.ParseFile(source.NewSourceFile("<arg>", []byte(text)), false)
	if len(errs) > 0 {
		printSyntaxErrors(w, errs)
		return nil, false
	}
	//
	return e, true
}

// Print syntax errors with appropriate highlighting.
func printSyntaxErrors(w io.Writer, errs []source.SyntaxError) {
	for _, err := range errs {
		fmt.Fprintf(w, "%s: %s\n", err.SourceFile().Filename(), err.Message())
		fmt.Fprintln(w, err.Highlight())
	}
}
