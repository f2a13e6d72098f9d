// Package analytics turns a flat list of set records into grouped workout
// sessions, per-session metrics, chart-ready progression series, and the
// coach chat context digest. Everything in this package is a pure function
// over an in-memory snapshot: no I/O, no ambient state, recomputed from
// scratch on every request.
package analytics

import (
	"sort"

	"github.com/lynx-zenchar/builtbuff/internal/models"
)

// KeySource says how a session key was obtained for a record.
type KeySource int

const (
	// KeyExplicit means the record carried a non-empty sessionKey.
	KeyExplicit KeySource = iota
	// KeyDerived means the key was built from the record's date and
	// workout name because no explicit key was present.
	KeyDerived
)

// derivedKeySep joins date and workout name in derived keys. The unit
// separator control character cannot appear in a YYYY-MM-DD date and does
// not occur in workout names typed through any client, so derived keys
// cannot collide with each other across distinct (date, name) pairs, and
// explicit keys (UUIDs) never contain it either.
const derivedKeySep = "\x1f"

// SessionKey is the grouping key for one session, resolved once per record.
type SessionKey struct {
	Source KeySource
	Value  string
}

// ResolveKey picks the grouping key for a record: the explicit sessionKey
// when present, otherwise date+workoutName. A record with none of the three
// fields resolves to a single shared "unkeyed" bucket (empty derived value);
// that degenerate case is grouped, not rejected.
func ResolveKey(r models.SetRecord) SessionKey {
	if r.SessionKey != "" {
		return SessionKey{Source: KeyExplicit, Value: r.SessionKey}
	}
	if r.Date == "" && r.WorkoutName == "" {
		return SessionKey{Source: KeyDerived, Value: ""}
	}
	return SessionKey{Source: KeyDerived, Value: r.Date + derivedKeySep + r.WorkoutName}
}

// mapKey namespaces explicit and derived keys so an explicit key can never
// merge with a derived one that happens to share its text.
func (k SessionKey) mapKey() string {
	if k.Source == KeyExplicit {
		return "e" + derivedKeySep + k.Value
	}
	return "d" + derivedKeySep + k.Value
}

// Session is an ordered group of set records sharing one session key.
// Derived on every read, never mutated in place: edits rewrite the
// underlying records and force a re-fetch and re-group.
type Session struct {
	Key     SessionKey
	Records []models.SetRecord
}

// Date returns the session's display date: the first record's date.
func (s Session) Date() string {
	if len(s.Records) == 0 {
		return ""
	}
	return s.Records[0].Date
}

// WorkoutName returns the first record's workout name.
func (s Session) WorkoutName() string {
	if len(s.Records) == 0 {
		return ""
	}
	return s.Records[0].WorkoutName
}

// GroupBySession partitions records into sessions. Sessions come out in
// first-seen-key order and records keep their input order within each
// session; every input record lands in exactly one session. Display
// ordering (most recent first) is a separate step — see SortSessionsByDateDesc.
func GroupBySession(records []models.SetRecord) []Session {
	index := make(map[string]int)
	var sessions []Session

	for _, r := range records {
		key := ResolveKey(r)
		mk := key.mapKey()
		i, ok := index[mk]
		if !ok {
			i = len(sessions)
			index[mk] = i
			sessions = append(sessions, Session{Key: key})
		}
		sessions[i].Records = append(sessions[i].Records, r)
	}
	return sessions
}

// SortSessionsByDateDesc orders sessions most-recent-first by each
// session's first record date. The sort is stable: same-date sessions keep
// their first-seen order. Dates compare lexically, which is chronological
// for YYYY-MM-DD strings.
func SortSessionsByDateDesc(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date() > sessions[j].Date()
	})
}
