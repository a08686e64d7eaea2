package scan

import "github.com/temirov/uncommitted/internal/repos/shared"

// worklist is a front-loaded queue of working copies. Entries are stored in
// reverse so both pushFront and popFront operate on the slice tail.
type worklist struct {
	reversedEntries []shared.RepositoryReference
}

func newWorklist(references []shared.RepositoryReference) *worklist {
	queue := &worklist{reversedEntries: make([]shared.RepositoryReference, 0, len(references))}
	queue.pushFront(references...)
	return queue
}

// pushFront places references ahead of every pending entry, keeping their relative order.
func (queue *worklist) pushFront(references ...shared.RepositoryReference) {
	for index := len(references) - 1; index >= 0; index-- {
		queue.reversedEntries = append(queue.reversedEntries, references[index])
	}
}

func (queue *worklist) popFront() (shared.RepositoryReference, bool) {
	lastIndex := len(queue.reversedEntries) - 1
	if lastIndex < 0 {
		return shared.RepositoryReference{}, false
	}
	reference := queue.reversedEntries[lastIndex]
	queue.reversedEntries = queue.reversedEntries[:lastIndex]
	return reference, true
}

func (queue *worklist) len() int {
	return len(queue.reversedEntries)
}
