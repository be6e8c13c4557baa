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
package test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-natded/pkg/cmd"
	"github.com/consensys/go-natded/pkg/proof"
	"github.com/consensys/go-natded/pkg/syntax"
	"github.com/stretchr/testify/require"
)

// TestDir determines the (relative) location of the proof corpus.
const TestDir = "../../testdata"

// ===================================================================
// Valid Tests
// ===================================================================

func Test_Valid_01(t *testing.T) {
	Check(t, "valid/modus_tollens", cmd.Valid)
}

func Test_Valid_02(t *testing.T) {
	Check(t, "valid/and_commutes", cmd.Valid)
}

func Test_Valid_03(t *testing.T) {
	Check(t, "valid/syllogism", cmd.Valid)
}

func Test_Valid_04(t *testing.T) {
	Check(t, "valid/double_negation", cmd.Valid)
}

func Test_Valid_05(t *testing.T) {
	Check(t, "valid/or_commutes", cmd.Valid)
}

func Test_Valid_06(t *testing.T) {
	Check(t, "valid/contraposition", cmd.Valid)
}

// ===================================================================
// Invalid Tests
// ===================================================================

func Test_Invalid_01(t *testing.T) {
	Check(t, "invalid/unreachable", cmd.Invalid)
}

func Test_Invalid_02(t *testing.T) {
	Check(t, "invalid/wrong_expr", cmd.Invalid)
}

func Test_Invalid_03(t *testing.T) {
	Check(t, "invalid/inapplicable", cmd.Invalid)
}

func Test_Invalid_04(t *testing.T) {
	Check(t, "invalid/malformed", cmd.Invalid)
}

func Test_Invalid_05(t *testing.T) {
	Check(t, "invalid/inconsistent", cmd.Invalid)
}

func Test_Invalid_06(t *testing.T) {
	Check(t, "invalid/wrong_type", cmd.Invalid)
}

// ===================================================================
// Incomplete Tests
// ===================================================================

func Test_Incomplete_01(t *testing.T) {
	Check(t, "incomplete/missing_rule", cmd.Incomplete)
}

func Test_Incomplete_02(t *testing.T) {
	Check(t, "incomplete/missing_ref", cmd.Incomplete)
}

func Test_Incomplete_03(t *testing.T) {
	Check(t, "incomplete/missing_expr", cmd.Incomplete)
}

// ===================================================================
// Test Helpers
// ===================================================================

// Check that a proof from the corpus receives the expected verdict, and that
// the verdict survives a round trip through every interchange format.
func Check(t *testing.T, test string, expected cmd.Verdict) {
	t.Helper()
	//
	p := ReadProofFile(t, test)
	require.Equal(t, expected, cmd.Judge(p), "checking %s", test)
	//
	for _, format := range []proof.Format{proof.JSON, proof.YAML} {
		var buf bytes.Buffer
		//
		require.NoError(t, proof.Encode(&buf, p, format))
		//
		q, err := proof.Decode(&buf, format, syntax.ParseExpr)
		require.NoError(t, err, "decoding %s", test)
		require.Equal(t, p.Nodes(), q.Nodes(), "round trip of %s", test)
		require.Equal(t, expected, cmd.Judge(q), "checking %s after round trip", test)
	}
}

// ReadProofFile reads a proof from the corpus, whichever format it is written
// in.
func ReadProofFile(t *testing.T, test string) *proof.Proof {
	t.Helper()
	//
	for _, ext := range []string{"json", "yaml"} {
		filename := filepath.Join(TestDir, fmt.Sprintf("%s.%s", test, ext))
		//
		file, err := os.Open(filename)
		if os.IsNotExist(err) {
			continue
		}
		//
		require.NoError(t, err)
		//
		defer file.Close()
		//
		format, err := proof.FormatOf(filename)
		require.NoError(t, err)
		//
		p, err := proof.Decode(file, format, syntax.ParseExpr)
		require.NoError(t, err, "reading %s", filename)
		//
		return p
	}
	//
	t.Fatalf("missing test file %s", test)
	//
	return nil
}
