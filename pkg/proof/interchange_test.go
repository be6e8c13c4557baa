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
package proof

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/consensys/go-natded/pkg/syntax"
	"github.com/stretchr/testify/require"
)

// The second scenario, as an interchange document.
const scenario = `[
  {"type": "line", "expr": "p implies q", "rule": "hypothesis", "refs": []},
  {"type": "line", "expr": "not q", "rule": "hypothesis", "refs": []},
  {"type": "subproof",
   "assumption": {"type": "line", "expr": "p", "rule": "assumption", "refs": []},
   "parts": [
     {"type": "line", "expr": "q", "rule": "implE", "refs": ["1", "3"]}
   ],
   "conclusion": {"type": "line", "expr": "false", "rule": "notE", "refs": ["2", "4"]}},
  {"type": "line", "expr": "not p", "rule": "notI", "refs": ["3-5"]}
]`

func Test_Interchange_01(t *testing.T) {
	p := decode(t, scenario, JSON)
	//
	require.Len(t, p.Parts(), 4)
	require.True(t, p.Status().TransitivelyOk)
	//
	sub, ok := p.Subproof("3-5")
	require.True(t, ok)
	require.Equal(t, Part(sub), p.Conclusion().Ref(0))
}

func Test_Interchange_02(t *testing.T) {
	// Expressions, rules and addresses survive a round trip
	p := decode(t, scenario, JSON)
	//
	for _, format := range []Format{JSON, YAML} {
		var buf bytes.Buffer
		//
		require.NoError(t, Encode(&buf, p, format))
		//
		q, err := Decode(&buf, format, syntax.ParseExpr)
		require.NoError(t, err)
		require.Equal(t, p.Nodes(), q.Nodes())
		require.True(t, q.Status().TransitivelyOk)
	}
}

func Test_Interchange_03(t *testing.T) {
	// Wire form has explicit nulls
	p := NewProof()
	p.AddLine()
	sub := p.AddSubproof()
	sub.Conclusion().SetRule(lookup("rep"))
	//
	data, err := json.Marshal(p.Nodes())
	require.NoError(t, err)
	require.JSONEq(t, `[
	  {"type": "line", "expr": null, "rule": null, "refs": []},
	  {"type": "subproof",
	   "assumption": {"type": "line", "expr": null, "rule": "assumption", "refs": []},
	   "parts": [],
	   "conclusion": {"type": "line", "expr": null, "rule": "rep", "refs": [null]}}
	]`, string(data))
}

func Test_Interchange_04(t *testing.T) {
	// Malformed text is preserved
	p := decode(t, `[{"type": "line", "expr": "p and", "rule": null, "refs": []}]`, JSON)
	line, _ := p.Line(1)
	//
	require.True(t, line.Malformed())
	require.Equal(t, "p and", *p.Nodes()[0].Expr)
}

func Test_Interchange_05(t *testing.T) {
	p := decode(t, `
- type: line
  expr: a
  rule: hypothesis
- type: line
  expr: a and a
  rule: andI
  refs: [1, "1"]
`, YAML)
	//
	line, _ := p.Line(2)
	require.True(t, line.Status().TransitivelyOk)
}

func Test_Interchange_06(t *testing.T) {
	p := decode(t, "", YAML)
	require.Empty(t, p.Parts())
	//
	p = decode(t, "[]", JSON)
	require.Empty(t, p.Parts())
}

func Test_Interchange_07(t *testing.T) {
	checkDecodeError(t, `[{"type": "paragraph"}]`, ErrInvalidNode)
	checkDecodeError(t, `[{"type": "subproof"}]`, ErrInvalidNode)
	checkDecodeError(t, `[{"type": "line", "rule": "modusPonens"}]`, ErrUnknownRule)
	checkDecodeError(t, `[{"type": "line", "rule": "rep", "refs": [null, null]}]`, ErrTooManyRefs)
	checkDecodeError(t, `[{"type": "line", "refs": ["1"]}]`, ErrTooManyRefs)
	checkDecodeError(t, `[{"type": "line", "rule": "rep", "refs": ["7"]}]`, ErrUnresolvedRef)
	checkDecodeError(t, `[{"type": "line", "rule": "implI", "refs": ["1-2"]}]`, ErrUnresolvedRef)
	checkDecodeError(t, `[{"type": "subproof",
	  "assumption": {"type": "line", "rule": "hypothesis"},
	  "conclusion": {"type": "line"}}]`, ErrFixedRule)
}

func Test_Interchange_08(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"type": "line"}`), JSON, syntax.ParseExpr)
	require.Error(t, err)
}

func Test_Interchange_09(t *testing.T) {
	// Addresses are interpreted relative to the first line
	_, err := Decode(strings.NewReader(scenario), JSON, syntax.ParseExpr, WithFirstLine(10))
	require.ErrorIs(t, err, ErrUnresolvedRef)
	//
	p, err := Decode(strings.NewReader(`[
	  {"type": "line", "expr": "p", "rule": "hypothesis"},
	  {"type": "line", "expr": "p", "rule": "rep", "refs": ["10"]}
	]`), JSON, syntax.ParseExpr, WithFirstLine(10))
	require.NoError(t, err)
	require.True(t, p.Status().TransitivelyOk)
	require.Equal(t, "11", p.Conclusion().Address())
}

func Test_FormatOf_01(t *testing.T) {
	for name, expected := range map[string]Format{"a.json": JSON, "b.yaml": YAML, "c.YML": YAML} {
		format, err := FormatOf(name)
		require.NoError(t, err)
		require.Equal(t, expected, format)
	}
	//
	_, err := FormatOf("proof.txt")
	require.Error(t, err)
}

func decode(t *testing.T, text string, format Format) *Proof {
	t.Helper()
	//
	p, err := Decode(strings.NewReader(text), format, syntax.ParseExpr)
	require.NoError(t, err)
	//
	return p
}

func checkDecodeError(t *testing.T, text string, expected error) {
	t.Helper()
	//
	_, err := Decode(strings.NewReader(text), JSON, syntax.ParseExpr)
	require.ErrorIs(t, err, expected)
}
