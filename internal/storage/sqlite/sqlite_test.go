package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "students.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_EmptyLoad(t *testing.T) {
	s := newTestDB(t)

	got, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLite_SaveLoad(t *testing.T) {
	s := newTestDB(t)

	records := types.Records{
		"S001": {
			Name:      "Alex",
			Gender:    types.GenderMale,
			Marks:     &types.Marks{Math: score(20), Science: score(31), Social: score(50)},
			WeakAreas: &types.WeakAreas{Math: []string{"fractions"}, Science: []string{}, Social: []string{}},
			Guardian:  types.Guardian{Name: "Sam", Relation: "Parent", Contact: "1234567890"},
		},
		"S002": {
			Name:     "Bea",
			Gender:   types.GenderOther,
			Guardian: types.Guardian{Name: "Lee", Relation: "Aunt", Contact: "0987654321"},
		},
	}
	require.NoError(t, s.Save(records))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, records, got)

	// A second save replaces, never merges.
	require.NoError(t, s.Save(types.Records{"S002": records["S002"]}))
	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, types.Records{"S002": records["S002"]}, got)
}
