package trace

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorderKeepsNewestFirst(t *testing.T) {
	r := NewRecorder(3)
	r.Record(SubmissionTrace{TraceID: "a"})
	r.Record(SubmissionTrace{TraceID: "b"})

	recent := r.Recent()
	assert.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].TraceID)
	assert.Equal(t, "a", recent[1].TraceID)
}

func TestRecorderOverwritesOldest(t *testing.T) {
	r := NewRecorder(3)
	for i := 0; i < 5; i++ {
		r.Record(SubmissionTrace{TraceID: fmt.Sprintf("t%d", i)})
	}

	recent := r.Recent()
	assert.Len(t, recent, 3)
	assert.Equal(t, "t4", recent[0].TraceID)
	assert.Equal(t, "t3", recent[1].TraceID)
	assert.Equal(t, "t2", recent[2].TraceID)
}

func TestRecorderZeroCapacityFallsBackToOne(t *testing.T) {
	r := NewRecorder(0)
	r.Record(SubmissionTrace{TraceID: "only"})
	r.Record(SubmissionTrace{TraceID: "newer"})

	recent := r.Recent()
	assert.Len(t, recent, 1)
	assert.Equal(t, "newer", recent[0].TraceID)
}
