// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles;
// handlers, storage, validation and merge can all import types without
// depending on each other.
package types

// Gender is one of the enumerated genders a student record accepts.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "other"
)

// Subject names one of the graded subjects. The string value is the JSON
// key used inside the marks and weak_areas objects.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectScience Subject = "science"
	SubjectSocial  Subject = "social"
)

// Subjects lists every graded subject in the order the rules check them.
var Subjects = []Subject{SubjectMath, SubjectScience, SubjectSocial}

// PassMark is the lowest score that does not require a weak area.
const PassMark = 30

// Marks holds the score of each subject, 0 to 50.
//
// A nil subject is unrecorded: it reads as the default score 0 but is never
// considered failing. See Score. A newly created record has every subject
// recorded (see WithDefaults); unrecorded subjects only appear when an update
// adds marks to a record that had none.
type Marks struct {
	Math    *float64 `json:"math,omitempty"    yaml:"math,omitempty"    validate:"omitempty,gte=0,lte=50"`
	Science *float64 `json:"science,omitempty" yaml:"science,omitempty" validate:"omitempty,gte=0,lte=50"`
	Social  *float64 `json:"social,omitempty"  yaml:"social,omitempty"  validate:"omitempty,gte=0,lte=50"`
}

// Score returns the score recorded for s. ok is false for an unrecorded
// subject, in which case score is 0.
func (m Marks) Score(s Subject) (score float64, ok bool) {
	p := m.field(s)
	if p == nil || *p == nil {
		return 0, false
	}
	return **p, true
}

// Set records score for s.
func (m *Marks) Set(s Subject, score float64) {
	if p := m.field(s); p != nil {
		*p = &score
	}
}

// WithDefaults returns a copy of m with every unrecorded subject set to 0.
func (m Marks) WithDefaults() Marks {
	out := Marks{}
	for _, s := range Subjects {
		v, _ := m.Score(s)
		out.Set(s, v)
	}
	return out
}

func (m *Marks) field(s Subject) **float64 {
	switch s {
	case SubjectMath:
		return &m.Math
	case SubjectScience:
		return &m.Science
	case SubjectSocial:
		return &m.Social
	}
	return nil
}

// WeakAreas holds up to five free-text topic tags per subject.
type WeakAreas struct {
	Math    []string `json:"math"    yaml:"math"    validate:"max=5"`
	Science []string `json:"science" yaml:"science" validate:"max=5"`
	Social  []string `json:"social"  yaml:"social"  validate:"max=5"`
}

// For returns the weak-area list of s.
func (w WeakAreas) For(s Subject) []string {
	switch s {
	case SubjectMath:
		return w.Math
	case SubjectScience:
		return w.Science
	case SubjectSocial:
		return w.Social
	}
	return nil
}

// Clone returns a deep copy with every nil list replaced by an empty one,
// so a stored record always encodes "math": [] rather than null.
func (w WeakAreas) Clone() WeakAreas {
	return WeakAreas{
		Math:    cloneList(w.Math),
		Science: cloneList(w.Science),
		Social:  cloneList(w.Social),
	}
}

func cloneList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Guardian is the contact person for a student.
type Guardian struct {
	Name     string `json:"name"     yaml:"name"     validate:"required"`
	Relation string `json:"relation" yaml:"relation" validate:"required"`
	Contact  string `json:"contact"  yaml:"contact"  validate:"len=10"`
}

// Record is a student as persisted: everything except roll_no, which is
// the key the record is stored under.
type Record struct {
	Name      string     `json:"name"       yaml:"name"`
	Gender    Gender     `json:"gender"     yaml:"gender"`
	Marks     *Marks     `json:"marks"      yaml:"marks,omitempty"`
	WeakAreas *WeakAreas `json:"weak_areas" yaml:"weak_areas,omitempty"`
	Guardian  Guardian   `json:"guardian"   yaml:"guardian"`
}

// Records is the full store snapshot, keyed by roll_no.
type Records map[string]Record

// Student is a full student record including its identity.
//
// Struct tags serve three purposes:
//
//  1. json:"..." / yaml:"...": wire and file names of each field.
//  2. validate:"...": field-level rules checked by go-playground/validator
//     (see package validation). Cross-field rules live in code, not tags.
type Student struct {
	RollNo    string     `json:"roll_no"    yaml:"roll_no"    validate:"required"`
	Name      string     `json:"name"       yaml:"name"       validate:"required"`
	Gender    Gender     `json:"gender"     yaml:"gender"     validate:"required,oneof=Male Female other"`
	Marks     *Marks     `json:"marks"      yaml:"marks,omitempty"`
	WeakAreas *WeakAreas `json:"weak_areas" yaml:"weak_areas,omitempty"`
	Guardian  Guardian   `json:"guardian"   yaml:"guardian"`
}

// Record strips the identity off s, deep-copying the nested objects.
func (s Student) Record() Record {
	return Record{
		Name:      s.Name,
		Gender:    s.Gender,
		Marks:     cloneMarks(s.Marks),
		WeakAreas: cloneWeakAreas(s.WeakAreas),
		Guardian:  s.Guardian,
	}
}

// Student attaches rollNo to r, deep-copying the nested objects.
func (r Record) Student(rollNo string) Student {
	return Student{
		RollNo:    rollNo,
		Name:      r.Name,
		Gender:    r.Gender,
		Marks:     cloneMarks(r.Marks),
		WeakAreas: cloneWeakAreas(r.WeakAreas),
		Guardian:  r.Guardian,
	}
}

func cloneMarks(m *Marks) *Marks {
	if m == nil {
		return nil
	}
	out := &Marks{}
	for _, s := range Subjects {
		if v, ok := m.Score(s); ok {
			out.Set(s, v)
		}
	}
	return out
}

func cloneWeakAreas(w *WeakAreas) *WeakAreas {
	if w == nil {
		return nil
	}
	out := w.Clone()
	return &out
}
