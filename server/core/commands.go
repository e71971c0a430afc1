package core

import (
	"sync"

	"github.com/automoto/yeetables/shared/messages"
)

// Peer is one connected client. *router.NetworkClient satisfies it.
type Peer interface {
	Id() string
	SendMessage(msg any) error
}

type commandKind int

const (
	cmdJoin commandKind = iota
	cmdInput
	cmdAdmin
	cmdLeave
)

// command is a network event waiting for the logic thread.
type command struct {
	kind  commandKind
	peer  Peer
	join  messages.JoinRequest
	input messages.PlayerInput
	admin messages.AdminCommand
}

// commandQueue collects commands from router goroutines. Each client may
// queue a bounded number of commands per tick; joins and leaves are never
// dropped.
type commandQueue struct {
	mu        sync.Mutex
	pending   []command
	perClient map[string]int
	capacity  int
	perLimit  int
	dropped   uint64
}

func newCommandQueue(capacity, perClient int) *commandQueue {
	return &commandQueue{
		pending:   make([]command, 0, capacity),
		perClient: map[string]int{},
		capacity:  capacity,
		perLimit:  perClient,
	}
}

// push queues cmd. It reports false when the command was dropped.
func (q *commandQueue) push(cmd command) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if cmd.kind == cmdInput || cmd.kind == cmdAdmin {
		id := cmd.peer.Id()
		if len(q.pending) >= q.capacity || q.perClient[id] >= q.perLimit {
			q.dropped++
			return false
		}
		q.perClient[id]++
	}
	q.pending = append(q.pending, cmd)
	return true
}

// drain returns everything queued since the last drain, oldest first.
func (q *commandQueue) drain() []command {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.pending
	q.pending = make([]command, 0, q.capacity)
	clear(q.perClient)
	return out
}

func (q *commandQueue) droppedCount() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
