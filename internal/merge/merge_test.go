package merge

import (
	"encoding/json"
	"testing"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/validation"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func storedRecord() types.Record {
	return types.Record{
		Name:   "Alex",
		Gender: types.GenderMale,
		Marks:  &types.Marks{Math: score(35), Science: score(40), Social: score(22)},
		WeakAreas: &types.WeakAreas{
			Math:    []string{},
			Science: []string{},
			Social:  []string{"civics"},
		},
		Guardian: types.Guardian{Name: "Sam", Relation: "Parent", Contact: "1234567890"},
	}
}

func decodeUpdate(t *testing.T, body string) types.StudentUpdate {
	t.Helper()
	var upd types.StudentUpdate
	require.NoError(t, json.Unmarshal([]byte(body), &upd))
	return upd
}

func TestApply_EmptyUpdateChangesNothing(t *testing.T) {
	rec := storedRecord()
	require.NoError(t, validation.Validate(rec.Student("S001")))

	for _, body := range []string{`{}`, `{"marks":{}}`, `{"weak_areas":{}}`, `{"guardian":{}}`, `{"name":null}`} {
		got := Apply("S001", rec, decodeUpdate(t, body))

		if diff := cmp.Diff(rec.Student("S001"), got); diff != "" {
			t.Errorf("Apply(%s) mismatch (-want +got):\n%s", body, diff)
		}
		assert.NoError(t, validation.Validate(got), body)
	}
}

func TestApply_EmptySubObjectDoesNotCreateIt(t *testing.T) {
	rec := storedRecord()
	rec.Marks = nil
	rec.WeakAreas = nil

	got := Apply("S001", rec, decodeUpdate(t, `{"marks":{},"weak_areas":{}}`))
	assert.Nil(t, got.Marks)
	assert.Nil(t, got.WeakAreas)
}

func TestApply_GuardianIsolation(t *testing.T) {
	rec := storedRecord()

	got := Apply("S001", rec, decodeUpdate(t, `{"guardian":{"name":"Kim"}}`))

	assert.Equal(t, types.Guardian{Name: "Kim", Relation: "Parent", Contact: "1234567890"}, got.Guardian)
	assert.Equal(t, "Sam", rec.Guardian.Name, "existing record must not be modified")
}

func TestApply_MarksKeyByKey(t *testing.T) {
	rec := storedRecord()

	got := Apply("S001", rec, decodeUpdate(t, `{"marks":{"science":12}}`))

	require.NotNil(t, got.Marks)
	want := &types.Marks{Math: score(35), Science: score(12), Social: score(22)}
	if diff := cmp.Diff(want, got.Marks); diff != "" {
		t.Errorf("marks mismatch (-want +got):\n%s", diff)
	}

	v, _ := rec.Marks.Score(types.SubjectScience)
	assert.Equal(t, 40.0, v, "existing marks must not be modified")
}

func TestApply_WeakAreasKeyByKey(t *testing.T) {
	rec := storedRecord()

	got := Apply("S001", rec, decodeUpdate(t, `{"weak_areas":{"math":["fractions","ratios"]}}`))

	require.NotNil(t, got.WeakAreas)
	assert.Equal(t, []string{"fractions", "ratios"}, got.WeakAreas.Math)
	assert.Equal(t, []string{}, got.WeakAreas.Science)
	assert.Equal(t, []string{"civics"}, got.WeakAreas.Social)
	assert.Empty(t, rec.WeakAreas.Math)
}

func TestApply_OntoAbsentSubObjects(t *testing.T) {
	rec := storedRecord()
	rec.Marks = nil
	rec.WeakAreas = nil

	got := Apply("S001", rec, decodeUpdate(t, `{"marks":{"math":20},"weak_areas":{"math":["fractions"]}}`))

	require.NotNil(t, got.Marks)
	v, ok := got.Marks.Score(types.SubjectMath)
	assert.True(t, ok)
	assert.Equal(t, 20.0, v)
	_, ok = got.Marks.Score(types.SubjectScience)
	assert.False(t, ok)

	require.NotNil(t, got.WeakAreas)
	assert.Equal(t, []string{"fractions"}, got.WeakAreas.Math)
	assert.Equal(t, []string{}, got.WeakAreas.Social)

	assert.NoError(t, validation.Validate(got))
}

func TestApply_Scalars(t *testing.T) {
	got := Apply("S001", storedRecord(), decodeUpdate(t, `{"name":"Alexis","gender":"other"}`))

	assert.Equal(t, "Alexis", got.Name)
	assert.Equal(t, types.GenderOther, got.Gender)
}

func TestApply_RollNoComesFromPath(t *testing.T) {
	got := Apply("S001", storedRecord(), decodeUpdate(t, `{"roll_no":"S999","name":"Alex"}`))
	assert.Equal(t, "S001", got.RollNo)
}

func TestApply_InvalidMergeIsDetected(t *testing.T) {
	rec := storedRecord()
	rec.WeakAreas = nil
	rec.Marks = &types.Marks{Math: score(35), Science: score(40), Social: score(45)}

	got := Apply("S001", rec, decodeUpdate(t, `{"marks":{"math":20}}`))
	assert.ErrorIs(t, validation.Validate(got), validation.ErrInvalid)
}
