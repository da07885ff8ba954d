package cpu

const (
	STACK_LIMIT = 16 // Maximum call depth
)

// Stack holds subroutine return addresses. Its depth is the stack pointer.
type Stack struct {
	Data []uint16
}

// Push saves a return address, failing when the stack is full.
func (s *Stack) Push(value uint16) (ok bool) {
	if s.Full() {
		return
	}

	s.Data = append(s.Data, value)
	return true
}

// Pop removes the most recent return address.
func (s *Stack) Pop() (value uint16, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return len(s.Data) >= STACK_LIMIT
}

// Pointer is the stack pointer, 0 through STACK_LIMIT.
func (s *Stack) Pointer() int {
	return len(s.Data)
}

func (s *Stack) Peek() (value uint16, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
