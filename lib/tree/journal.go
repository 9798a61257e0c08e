package tree

import "fmt"

// StepSink receives a copy of every journal entry. Implementations may
// process entries asynchronously but must not call back into the tree.
type StepSink interface {
	Submit(step string)
}

func (tree *rbTree[K]) stepf(format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	tree.steps = append(tree.steps, msg)
	if tree.logger != nil {
		tree.logger.Debug(msg)
	}
	if tree.sink != nil {
		tree.sink.Submit(msg)
	}
}

// Steps returns a copy of the journal without consuming it.
func (tree *rbTree[K]) Steps() []string {
	out := make([]string, len(tree.steps))
	copy(out, tree.steps)
	return out
}

// DrainSteps hands the journal to the caller and clears it. The
// renderer/driver is expected to drain between operations.
func (tree *rbTree[K]) DrainSteps() []string {
	out := tree.steps
	tree.steps = nil
	return out
}
