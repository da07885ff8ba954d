package io

import (
	"sync"

	"github.com/ezrec/chip8/cpu"
)

// KEY_QUEUE_CAPACITY is the default number of pending key events.
const KEY_QUEUE_CAPACITY = 64

// KeyEvent is a single key transition.
type KeyEvent struct {
	Key     byte // Keypad key, 0x0 through 0xF.
	Pressed bool // True for a press, false for a release.
}

// KeyQueue is a bounded FIFO of key events. One goroutine may Send while
// the host loop calls Poll.
//
// Terminals report presses but no releases, so a press is held for Hold
// polls unless released first. A Hold of zero holds until released. A
// press is always seen by at least one poll, even when its release is
// queued behind it.
type KeyQueue struct {
	Capacity int // Capacity in events; KEY_QUEUE_CAPACITY if zero.
	Hold     int // Polls a press is held without a release.

	mutex      sync.Mutex
	readIndex  int
	writeIndex int
	size       int
	data       []KeyEvent
	held       [cpu.KEY_COUNT]int
}

var _ InputSource = (*KeyQueue)(nil)

// Reset drops all pending events and held keys.
func (kq *KeyQueue) Reset() {
	kq.mutex.Lock()
	defer kq.mutex.Unlock()

	kq.reset()
}

func (kq *KeyQueue) reset() {
	if kq.Capacity <= 0 {
		kq.Capacity = KEY_QUEUE_CAPACITY
	}

	kq.readIndex = 0
	kq.writeIndex = 0
	kq.size = 0
	kq.data = make([]KeyEvent, kq.Capacity)
	clear(kq.held[:])
}

// Len returns the number of pending events.
func (kq *KeyQueue) Len() int {
	kq.mutex.Lock()
	defer kq.mutex.Unlock()

	return kq.size
}

// Send queues an event, returning ErrQueueFull if the queue is at capacity.
func (kq *KeyQueue) Send(event KeyEvent) (err error) {
	kq.mutex.Lock()
	defer kq.mutex.Unlock()

	if kq.data == nil {
		kq.reset()
	}

	if kq.size >= kq.Capacity {
		err = ErrQueueFull
		return
	}

	event.Key &= 0xf
	kq.data[kq.writeIndex] = event

	kq.writeIndex++
	if kq.writeIndex == kq.Capacity {
		kq.writeIndex = 0
	}
	kq.size++

	return
}

// Poll expires held presses, then applies all pending events to the keypad.
func (kq *KeyQueue) Poll(keypad *cpu.Keypad) {
	kq.mutex.Lock()
	defer kq.mutex.Unlock()

	var pressed [cpu.KEY_COUNT]bool

	for key, count := range kq.held {
		if count == 0 {
			continue
		}
		kq.held[key]--
		if kq.held[key] == 0 {
			keypad[key] = false
		}
	}

	for kq.size > 0 {
		event := kq.data[kq.readIndex]
		kq.readIndex++
		if kq.readIndex == kq.Capacity {
			kq.readIndex = 0
		}
		kq.size--

		switch {
		case event.Pressed:
			keypad[event.Key] = true
			kq.held[event.Key] = kq.Hold
			pressed[event.Key] = true
		case pressed[event.Key]:
			// Released by the next poll.
			kq.held[event.Key] = 1
		default:
			keypad[event.Key] = false
			kq.held[event.Key] = 0
		}
	}
}
