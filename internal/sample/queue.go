package sample

import (
	"errors"
	"sync"

	"github.com/anoideaopen/mx/core/marker"
)

var ErrQueueFull = errors.New("queue is full")

// Queue describes itself with markers; only marked members are managed.
type Queue struct {
	marker.Bean `objectName:"mx.sample:type=Queue,name=jobs" description:"job queue"`

	Workers int `mx:"" description:"worker count" access:"rw"`
	Limit   int `mx:"" description:"maximum pending jobs" metric:"gauge" unit:"jobs" category:"capacity"`

	_ marker.Op    `on:"Push" description:"enqueue a job, returns the pending count"`
	_ marker.Param `on:"Push" index:"0" name:"job" description:"job id"`
	_ marker.Op    `on:"Drain" description:"drop every pending job"`
	_ marker.Prop  `on:"pending" metric:"gauge" unit:"jobs" description:"pending jobs"`
	_ marker.Prop  `on:"processed" metric:"counter" unit:"jobs" description:"jobs taken by workers"`
	_ marker.Prop  `on:"paused" access:"rw" description:"stops workers from taking jobs"`

	mu        sync.Mutex
	pending   []string
	processed int
	paused    bool
}

func NewQueue(workers, limit int) *Queue {
	return &Queue{Workers: workers, Limit: limit}
}

func (q *Queue) Push(job string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.Limit > 0 && len(q.pending) >= q.Limit {
		return len(q.pending), ErrQueueFull
	}
	q.pending = append(q.pending, job)
	return len(q.pending), nil
}

// Take hands the next job to a worker. It is not managed.
func (q *Queue) Take() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.paused || len(q.pending) == 0 {
		return "", false
	}
	job := q.pending[0]
	q.pending = q.pending[1:]
	q.processed++
	return job, true
}

func (q *Queue) Drain() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = nil
}

func (q *Queue) GetPending() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

func (q *Queue) GetProcessed() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.processed
}

func (q *Queue) IsPaused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.paused
}

func (q *Queue) SetPaused(paused bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.paused = paused
}
