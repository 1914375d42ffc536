package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentUpdate_Presence(t *testing.T) {
	var upd StudentUpdate
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Kim",
		"gender": null,
		"marks": {"science": 0},
		"guardian": {"contact": "0987654321"}
	}`), &upd))

	name, ok := upd.Name.Get()
	assert.True(t, ok)
	assert.Equal(t, "Kim", name)

	assert.False(t, upd.Gender.IsSet(), "null is absent")
	assert.False(t, upd.WeakAreas.IsSet())

	marks, ok := upd.Marks.Get()
	require.True(t, ok)
	assert.False(t, marks.Math.IsSet())
	science, ok := marks.Science.Get()
	assert.True(t, ok, "zero is still present")
	assert.Equal(t, 0.0, science)
	assert.False(t, marks.IsEmpty())

	g, ok := upd.Guardian.Get()
	require.True(t, ok)
	assert.False(t, g.Name.IsSet())
	assert.True(t, g.Contact.IsSet())
}

func TestOptional_DecodeError(t *testing.T) {
	var upd StudentUpdate
	assert.Error(t, json.Unmarshal([]byte(`{"marks": {"math": "twenty"}}`), &upd))
}

func TestMarks_Score(t *testing.T) {
	var m Marks
	v, ok := m.Score(SubjectMath)
	assert.False(t, ok)
	assert.Zero(t, v)

	m.Set(SubjectSocial, 44)
	v, ok = m.Score(SubjectSocial)
	assert.True(t, ok)
	assert.Equal(t, 44.0, v)
}

func TestMarks_WithDefaults(t *testing.T) {
	m := Marks{}
	m.Set(SubjectMath, 40)

	out := m.WithDefaults()
	for _, s := range Subjects {
		_, ok := out.Score(s)
		assert.True(t, ok, s)
	}
	v, _ := out.Score(SubjectMath)
	assert.Equal(t, 40.0, v)
	v, _ = out.Score(SubjectScience)
	assert.Zero(t, v)

	out.Set(SubjectMath, 1)
	v, _ = m.Score(SubjectMath)
	assert.Equal(t, 40.0, v, "copy does not share storage")
	assert.Nil(t, m.Science)
}

func TestRecordStudentCopies(t *testing.T) {
	rec := Record{
		Name:      "Alex",
		Gender:    GenderMale,
		WeakAreas: &WeakAreas{Math: []string{"fractions"}},
	}

	st := rec.Student("S001")
	st.WeakAreas.Math[0] = "changed"

	assert.Equal(t, "fractions", rec.WeakAreas.Math[0])
	assert.Equal(t, []string{}, st.WeakAreas.Science)
	assert.Equal(t, "S001", st.RollNo)
	assert.Nil(t, st.Marks)
}
