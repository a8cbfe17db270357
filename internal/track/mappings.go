package track

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ProjectMapping associates a project with the ticket-prefix patterns seen
// for it. Patterns accumulate as new tickets are logged and are only removed
// by cleanup.
type ProjectMapping struct {
	TicketPatterns []string `json:"ticket_patterns"`
	Name           string   `json:"name"`
}

// AddPattern appends a pattern unless the mapping already holds it. It
// reports whether the pattern was added.
func (m *ProjectMapping) AddPattern(pattern string) bool {
	if pattern == "" {
		return false
	}
	for _, existing := range m.TicketPatterns {
		if existing == pattern {
			return false
		}
	}
	m.TicketPatterns = append(m.TicketPatterns, pattern)
	return true
}

// Matches reports whether any pattern is a case-insensitive substring of
// ticket.
func (m *ProjectMapping) Matches(ticket string) bool {
	lower := strings.ToLower(ticket)
	for _, pattern := range m.TicketPatterns {
		if strings.Contains(lower, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// Mappings is the set of project mappings keyed by project name. Iteration
// order is insertion order, which is what breaks ties during detection: the
// first project ever seen with a matching pattern wins. The order survives
// serialization because the JSON encoding writes keys in that same order.
type Mappings struct {
	byName map[string]*ProjectMapping
	order  []string
}

// NewMappings returns an empty mapping set.
func NewMappings() *Mappings {
	return &Mappings{byName: map[string]*ProjectMapping{}}
}

// Len returns the number of projects with a mapping.
func (ms *Mappings) Len() int {
	if ms == nil {
		return 0
	}
	return len(ms.order)
}

// Names returns the project names in insertion order.
func (ms *Mappings) Names() []string {
	if ms == nil {
		return nil
	}
	return append([]string(nil), ms.order...)
}

// Get returns the mapping for a project, if present.
func (ms *Mappings) Get(project string) (*ProjectMapping, bool) {
	if ms == nil {
		return nil, false
	}
	m, ok := ms.byName[project]
	return m, ok
}

// Learn records a ticket-prefix pattern for a project, creating the mapping
// on first sight.
func (ms *Mappings) Learn(project, pattern string) {
	m, ok := ms.byName[project]
	if !ok {
		m = &ProjectMapping{Name: project}
		ms.byName[project] = m
		ms.order = append(ms.order, project)
	}
	m.AddPattern(pattern)
}

// Delete removes the mapping for a project.
func (ms *Mappings) Delete(project string) {
	if _, ok := ms.byName[project]; !ok {
		return
	}
	delete(ms.byName, project)
	for i, name := range ms.order {
		if name == project {
			ms.order = append(ms.order[:i], ms.order[i+1:]...)
			break
		}
	}
}

// Detect returns the first project, in insertion order, with a pattern
// matching the ticket.
func (ms *Mappings) Detect(ticket string) (string, bool) {
	if ms == nil {
		return "", false
	}
	for _, name := range ms.order {
		if ms.byName[name].Matches(ticket) {
			return name, true
		}
	}
	return "", false
}

// MarshalJSON encodes the set as a JSON object with keys in insertion order.
func (ms *Mappings) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range ms.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(ms.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object while preserving the order its keys
// appear in, so detection tie-breaks are stable across reloads.
func (ms *Mappings) UnmarshalJSON(data []byte) error {
	ms.byName = map[string]*ProjectMapping{}
	ms.order = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("track: project mappings must be a JSON object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("track: invalid project mapping key %v", keyTok)
		}
		var mapping ProjectMapping
		if err := dec.Decode(&mapping); err != nil {
			return fmt.Errorf("track: decode mapping for %s: %w", name, err)
		}
		if mapping.Name == "" {
			mapping.Name = name
		}
		if _, seen := ms.byName[name]; !seen {
			ms.order = append(ms.order, name)
		}
		ms.byName[name] = &mapping
	}
	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
