/*
 * Copyright (c) 2025-2026, OpenAdmissions (https://openadmissions.org).
 *
 * OpenAdmissions licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package trace

import (
	"sync"
	"time"
)

// SubmissionTrace captures one webhook submission for the debug view.
type SubmissionTrace struct {
	TraceID    string                 `json:"trace_id"`
	ReceivedAt time.Time              `json:"received_at"`
	DivisionId string                 `json:"division_id,omitempty"`
	RecordId   string                 `json:"record_id,omitempty"`
	Outcome    string                 `json:"outcome"`
	Error      string                 `json:"error,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// Recorder is a bounded ring buffer of recent submission traces. Once the
// capacity is reached the oldest trace is overwritten.
type Recorder struct {
	mutex    sync.RWMutex
	traces   []SubmissionTrace
	capacity int
	next     int
	size     int
}

// NewRecorder creates a recorder holding at most capacity traces.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 1
	}
	return &Recorder{
		traces:   make([]SubmissionTrace, capacity),
		capacity: capacity,
	}
}

// Record appends a trace, overwriting the oldest entry when full.
func (r *Recorder) Record(t SubmissionTrace) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.traces[r.next] = t
	r.next = (r.next + 1) % r.capacity
	if r.size < r.capacity {
		r.size++
	}
}

// Recent returns traces newest first.
func (r *Recorder) Recent() []SubmissionTrace {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]SubmissionTrace, 0, r.size)
	for i := 0; i < r.size; i++ {
		idx := (r.next - 1 - i + r.capacity*2) % r.capacity
		out = append(out, r.traces[idx])
	}
	return out
}
