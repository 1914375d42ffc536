package types

import (
	"bytes"
	"encoding/json"
)

// Optional wraps a value that may or may not have been supplied in a
// request body. The zero Optional is absent.
//
// encoding/json only calls UnmarshalJSON for keys that appear in the
// input, so a decoded Optional is set exactly when its key was sent.
// An explicit null counts as absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value was supplied.
func (o Optional[T]) IsSet() bool {
	return o.set
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value, o.set = v, true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// MarksUpdate carries the subject scores to overwrite.
type MarksUpdate struct {
	Math    Optional[float64] `json:"math"`
	Science Optional[float64] `json:"science"`
	Social  Optional[float64] `json:"social"`
}

// For returns the update for subject s.
func (m MarksUpdate) For(s Subject) Optional[float64] {
	switch s {
	case SubjectMath:
		return m.Math
	case SubjectScience:
		return m.Science
	case SubjectSocial:
		return m.Social
	}
	return Optional[float64]{}
}

// IsEmpty reports whether no subject was supplied.
func (m MarksUpdate) IsEmpty() bool {
	return !m.Math.IsSet() && !m.Science.IsSet() && !m.Social.IsSet()
}

// WeakAreasUpdate carries the weak-area lists to overwrite. A supplied
// list replaces the stored list wholesale.
type WeakAreasUpdate struct {
	Math    Optional[[]string] `json:"math"`
	Science Optional[[]string] `json:"science"`
	Social  Optional[[]string] `json:"social"`
}

// IsEmpty reports whether no subject was supplied.
func (w WeakAreasUpdate) IsEmpty() bool {
	return !w.Math.IsSet() && !w.Science.IsSet() && !w.Social.IsSet()
}

// GuardianUpdate carries the guardian fields to overwrite.
type GuardianUpdate struct {
	Name     Optional[string] `json:"name"`
	Relation Optional[string] `json:"relation"`
	Contact  Optional[string] `json:"contact"`
}

// IsEmpty reports whether no guardian field was supplied.
func (g GuardianUpdate) IsEmpty() bool {
	return !g.Name.IsSet() && !g.Relation.IsSet() && !g.Contact.IsSet()
}

// StudentUpdate is a partial update: only supplied fields are applied.
// roll_no is deliberately absent; identity comes from the request path.
type StudentUpdate struct {
	Name      Optional[string]          `json:"name"`
	Gender    Optional[Gender]          `json:"gender"`
	Marks     Optional[MarksUpdate]     `json:"marks"`
	WeakAreas Optional[WeakAreasUpdate] `json:"weak_areas"`
	Guardian  Optional[GuardianUpdate]  `json:"guardian"`
}
