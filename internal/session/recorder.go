package session

import "sync"

// Recorder keeps the most recent frame records. A zero capacity keeps
// everything.
type Recorder struct {
	mu       sync.Mutex
	capacity int
	records  []FrameRecord
	start    int
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{capacity: capacity}
}

func (r *Recorder) OnFrame(rec FrameRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capacity <= 0 || len(r.records) < r.capacity {
		r.records = append(r.records, rec)
		return
	}
	r.records[r.start] = rec
	r.start = (r.start + 1) % r.capacity
}

// Records returns the retained frames oldest first.
func (r *Recorder) Records() []FrameRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]FrameRecord, 0, len(r.records))
	out = append(out, r.records[r.start:]...)
	out = append(out, r.records[:r.start]...)
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = r.records[:0]
	r.start = 0
}
