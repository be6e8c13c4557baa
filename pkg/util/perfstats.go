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
package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records a snapshot of elapsed time and memory allocation, such
// that the cost of some operation can be logged once it completes.
type PerfStats struct {
	// Time when the snapshot was taken
	start time.Time
	// Total bytes allocated when the snapshot was taken
	allocated uint64
	// Number of gc events when the snapshot was taken
	collections uint32
}

// NewPerfStats takes a snapshot of the current time and memory allocation.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{time.Now(), m.TotalAlloc, m.NumGC}
}

// Log (at debug level) the time taken and memory allocated since the snapshot
// was taken.
func (p *PerfStats) Log(prefix string) {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	var (
		kb       = (m.TotalAlloc - p.allocated) / 1024
		gcs      = m.NumGC - p.collections
		duration = time.Since(p.start)
	)
	//
	log.Debugf("%s took %s using %vKb (%v GC events)", prefix, duration.Round(time.Microsecond), kb, gcs)
}
