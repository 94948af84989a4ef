package data

// The collection helpers never modify the slice they receive. The controller keeps
// the previous collection untouched so a failed or superseded operation cannot leak
// partial changes into it.

// ReplaceByID returns a copy of tasks where every entry with the given id is
// replaced by updated. Without a match nothing is appended.
func ReplaceByID(tasks []Task, id ID, updated Task) []Task {
	result := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			result[i] = updated
			continue
		}
		result[i] = t
	}
	return result
}

// RemoveByID returns a copy of tasks without the entries matching id.
func RemoveByID(tasks []Task, id ID) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			result = append(result, t)
		}
	}
	return result
}

// Append returns a copy of tasks with created added at the end.
func Append(tasks []Task, created Task) []Task {
	result := make([]Task, len(tasks), len(tasks)+1)
	copy(result, tasks)
	return append(result, created)
}

// FindByID returns the task with the given id.
func FindByID(tasks []Task, id ID) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
