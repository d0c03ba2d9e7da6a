package battle

// LogEntry is one narrated battle event
type LogEntry struct {
	ID       string      `json:"id"`
	Turn     int         `json:"turn"`
	Message  string      `json:"message"`
	Category LogCategory `json:"category"`
	Damage   *int        `json:"damage,omitempty"`
	Heal     *int        `json:"heal,omitempty"`
}

// Log is an append-only battle log kept newest first
type Log struct {
	entries []LogEntry
}

// Prepend records an entry as the most recent one
func (l *Log) Prepend(entry LogEntry) {
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the log, newest first
func (l *Log) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	for i, entry := range l.entries {
		out[len(l.entries)-1-i] = entry
	}
	return out
}

// Len returns the number of entries
func (l *Log) Len() int {
	return len(l.entries)
}

// Clear drops every entry
func (l *Log) Clear() {
	l.entries = nil
}

// IntPtr returns a pointer to v, for the optional amounts of a LogEntry
func IntPtr(v int) *int {
	return &v
}
