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
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/consensys/go-natded/pkg/util/termio"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] proof_file",
	Short: "Re-check a proof whenever it changes.",
	Long: `Check a proof, and then check it again every time the file is written,
	until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
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
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		//
		check := func() {
			checkFile(cmd.OutOrStdout(), args[0], cfg)
		}
		//
		if err := watchFile(ctx, args[0], 100*time.Millisecond, check); err != nil {
			log.Error(err)
			os.Exit(2)
		}
	},
}

// Run a given check once and then again whenever the file changes, until the
// context is cancelled.  Bursts of changes arriving within the settle period
// trigger only one check.  The directory is watched, rather than the file
// itself, since many editors save by replacing the file.
func watchFile(ctx context.Context, filename string, settle time.Duration, check func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	//
	defer watcher.Close()
	//
	target := filepath.Clean(filename)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filename, err)
	}
	//
	check()
	//
	timer := time.NewTimer(settle)
	// Nothing pending yet
	timer.Stop()
	//
	defer timer.Stop()
	//
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			} else if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			//
			log.Debugf("%s changed (%s)", filename, event.Op)
			//
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			//
			log.Warn(err)
		case <-timer.C:
			check()
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("strict", false, "treat incomplete proofs as failures")
	watchCmd.Flags().BoolP("quiet", "q", false, "report only the verdict for each check")
	watchCmd.Flags().Bool("ansi-escapes", termio.SupportsEscapes(os.Stdout),
		"specify whether to allow ANSI escapes or not (e.g. for colour reports)")
	watchCmd.Flags().Uint("first-line", 1, "number given to the first line of the proof")
}
