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
	"os"

	"github.com/consensys/go-natded/pkg/proof"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] input_file output_file",
	Short: "Convert a proof between interchange formats.",
	Long: `Convert a proof between interchange formats (JSON or YAML), as determined by
	the extension of each file.  Expressions are written in canonical form.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		if err := convertFile(args[0], args[1]); err != nil {
			log.Error(err)
			os.Exit(2)
		}
	},
}

func convertFile(input string, output string) error {
	format, err := proof.FormatOf(output)
	if err != nil {
		return err
	}
	//
	p, err := loadProof(input, 1)
	if err != nil {
		return err
	}
	//
	file, err := os.Create(output)
	if err != nil {
		return err
	}
	//
	if err := proof.Encode(file, p, format); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", output, err)
	}
	//
	return file.Close()
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
