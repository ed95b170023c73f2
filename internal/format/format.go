// Package format holds the pure presentation helpers shared by the
// store and the view layer.
package format

// NoDueDate is the placeholder stored and shown for tasks without a
// due date. It is written into the persisted snapshot, never the empty
// string.
const NoDueDate = "No due date"

// labelLimit is the number of runes shown before the task text is
// truncated in the compact list label.
const labelLimit = 14

// TaskLabel returns the compact list label for a task: the text
// unchanged when it fits, otherwise the first 14 runes followed by an
// ellipsis. The full text stays available for the expanded view.
func TaskLabel(text string) string {
	runes := []rune(text)
	if len(runes) <= labelLimit {
		return text
	}
	return string(runes[:labelLimit]) + "..."
}

// DueDate normalizes a due date for storage and display: empty input
// becomes the NoDueDate sentinel, anything else passes through.
func DueDate(value string) string {
	if value == "" {
		return NoDueDate
	}
	return value
}

// StatusLabel returns the display label for a completion flag.
func StatusLabel(completed bool) string {
	if completed {
		return "Completed"
	}
	return "Pending"
}
