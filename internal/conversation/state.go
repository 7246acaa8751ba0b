package conversation

// State is the position of a session in the question sequence: the id of the
// current (unanswered) question, or Completed once the sequence is exhausted.
// The terminal state is absorbing.
type State string

// Completed is the terminal state.
const Completed State = ""

// IsTerminal reports whether the state accepts no further answers.
func (s State) IsTerminal() bool { return s == Completed }

// QuestionID returns the state as a question id; only meaningful for
// non-terminal states.
func (s State) QuestionID() string { return string(s) }

// Initial returns the starting state of a fresh session.
func Initial(seq *Sequence) State { return State(seq.First().ID) }

// Advance is the pure transition function of the conversation state machine.
// Answering the current question moves to that question's declared successor
// regardless of the answer's content; the last question moves to Completed.
// Advancing from an unknown or terminal state stays terminal.
func Advance(seq *Sequence, s State) State {
	if s.IsTerminal() {
		return Completed
	}
	q, ok := seq.Get(string(s))
	if !ok {
		return Completed
	}
	return State(q.Next)
}

// Progress counts the questions of seq already answered plus one for the
// question currently on screen. Answer keys outside the sequence are ignored.
func Progress(seq *Sequence, answered map[string]struct{}) int {
	n := 0
	for id := range answered {
		if seq.Contains(id) {
			n++
		}
	}
	return n + 1
}
