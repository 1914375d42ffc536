package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/student-records/internal/records"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alex = `{
	"roll_no": "S001",
	"name": "Alex",
	"gender": "Male",
	"guardian": {"name": "Sam", "relation": "Parent", "contact": "1234567890"}
}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(records.New(memory.New(nil))))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	return resp.StatusCode, raw
}

func message(t *testing.T, raw []byte) string {
	t.Helper()
	var m response.Message
	require.NoError(t, json.Unmarshal(raw, &m))
	return m.Message
}

func errorDetail(t *testing.T, raw []byte) string {
	t.Helper()
	var e response.Response
	require.NoError(t, json.Unmarshal(raw, &e))
	assert.Equal(t, response.StatusError, e.Status)
	assert.Equal(t, e.Error, e.Detail)
	return e.Error
}

func TestInfoRoutes(t *testing.T) {
	srv := newServer(t)

	code, raw := do(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Student Management System API", message(t, raw))

	code, raw = do(t, srv, http.MethodGet, "/about", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "A fully functional API to manage your student performance", message(t, raw))
}

func TestStudentLifecycle(t *testing.T) {
	srv := newServer(t)

	// Create without marks.
	code, raw := do(t, srv, http.MethodPost, "/add", alex)
	require.Equal(t, http.StatusOK, code, string(raw))
	assert.Equal(t, "student added", message(t, raw))

	// Same roll_no again.
	code, raw = do(t, srv, http.MethodPost, "/add", alex)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Already exists", errorDetail(t, raw))

	// Failing mark without weak areas.
	code, raw = do(t, srv, http.MethodPut, "/edit/S001", `{"marks":{"math":20}}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "weak areas must exist for marks less than 30", errorDetail(t, raw))

	// Failing mark with a weak area.
	code, raw = do(t, srv, http.MethodPut, "/edit/S001", `{"marks":{"math":20},"weak_areas":{"math":["fractions"]}}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	assert.Equal(t, "student updated successfully", message(t, raw))

	code, raw = do(t, srv, http.MethodGet, "/student/S001", "")
	require.Equal(t, http.StatusOK, code)

	var rec types.Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	require.NotNil(t, rec.Marks)
	math, ok := rec.Marks.Score(types.SubjectMath)
	assert.True(t, ok)
	assert.Equal(t, 20.0, math)
	_, ok = rec.Marks.Score(types.SubjectScience)
	assert.False(t, ok)
	_, ok = rec.Marks.Score(types.SubjectSocial)
	assert.False(t, ok)
	require.NotNil(t, rec.WeakAreas)
	assert.Equal(t, []string{"fractions"}, rec.WeakAreas.Math)
	assert.Empty(t, rec.WeakAreas.Science)
	assert.Empty(t, rec.WeakAreas.Social)
	assert.Equal(t, "Alex", rec.Name)
	assert.Equal(t, "1234567890", rec.Guardian.Contact)

	// Guardian name only.
	code, _ = do(t, srv, http.MethodPut, "/edit/S001", `{"guardian":{"name":"Kim"}}`)
	require.Equal(t, http.StatusOK, code)
	_, raw = do(t, srv, http.MethodGet, "/student/S001", "")
	rec = types.Record{}
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, types.Guardian{Name: "Kim", Relation: "Parent", Contact: "1234567890"}, rec.Guardian)

	// Delete.
	code, raw = do(t, srv, http.MethodDelete, "/delete/S001", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "student data deleted", message(t, raw))

	code, _ = do(t, srv, http.MethodGet, "/student/S001", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreate_MissingSubjectsDefaultToZero(t *testing.T) {
	srv := newServer(t)

	withMarks := func(rollNo, marks string) string {
		return strings.Replace(strings.Replace(alex, `"S001"`, `"`+rollNo+`"`, 1),
			`"gender": "Male",`, `"gender": "Male", "marks": `+marks+`,`, 1)
	}

	for _, tc := range []struct {
		name   string
		rollNo string
		marks  string
	}{
		{"science and social left out", "S009", `{"math":40}`},
		{"empty marks object", "S010", `{}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, raw := do(t, srv, http.MethodPost, "/add", withMarks(tc.rollNo, tc.marks))
			assert.Equal(t, http.StatusBadRequest, code, string(raw))
			assert.Equal(t, "weak areas must exist for marks less than 30", errorDetail(t, raw))

			code, _ = do(t, srv, http.MethodGet, "/student/"+tc.rollNo, "")
			assert.Equal(t, http.StatusNotFound, code)
		})
	}

	t.Run("defaulted subjects are stored", func(t *testing.T) {
		body := strings.Replace(withMarks("S011", `{"math":40}`),
			`"marks": {"math":40},`, `"marks": {"math":40}, "weak_areas": {"science":["cells"],"social":["maps"]},`, 1)
		code, raw := do(t, srv, http.MethodPost, "/add", body)
		require.Equal(t, http.StatusOK, code, string(raw))

		_, raw = do(t, srv, http.MethodGet, "/student/S011", "")
		var rec map[string]any
		require.NoError(t, json.Unmarshal(raw, &rec))
		assert.Equal(t, map[string]any{"math": 40.0, "science": 0.0, "social": 0.0}, rec["marks"])
	})
}

func TestNotFoundStatuses(t *testing.T) {
	srv := newServer(t)

	code, raw := do(t, srv, http.MethodDelete, "/delete/NOPE", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Student not found", errorDetail(t, raw))

	code, raw = do(t, srv, http.MethodGet, "/student/NOPE", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Student ID not found in DB", errorDetail(t, raw))

	code, raw = do(t, srv, http.MethodPut, "/edit/NOPE", `{"name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "not in data", errorDetail(t, raw))
}

func TestSort(t *testing.T) {
	srv := newServer(t)

	for _, body := range []string{
		strings.Replace(alex, `"Alex"`, `"Bea"`, 1),
		strings.Replace(strings.Replace(alex, `"Alex"`, `"Zed"`, 1), `"S001"`, `"S002"`, 1),
	} {
		code, raw := do(t, srv, http.MethodPost, "/add", body)
		require.Equal(t, http.StatusOK, code, string(raw))
	}

	code, raw := do(t, srv, http.MethodGet, "/sort?sort_by=name&order=desc", "")
	require.Equal(t, http.StatusOK, code)

	var sorted []types.Student
	require.NoError(t, json.Unmarshal(raw, &sorted))
	require.Len(t, sorted, 2)
	assert.Equal(t, "Zed", sorted[0].Name)
	assert.Equal(t, "S002", sorted[0].RollNo)
	assert.Equal(t, "Bea", sorted[1].Name)

	code, raw = do(t, srv, http.MethodGet, "/sort?sort_by=roll_no", "")
	require.Equal(t, http.StatusOK, code)
	sorted = nil
	require.NoError(t, json.Unmarshal(raw, &sorted))
	assert.Equal(t, "S001", sorted[0].RollNo)

	code, _ = do(t, srv, http.MethodGet, "/sort?sort_by=gender&order=asc", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, srv, http.MethodGet, "/sort?sort_by=name&order=sideways", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, srv, http.MethodGet, "/sort", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestView(t *testing.T) {
	srv := newServer(t)

	code, raw := do(t, srv, http.MethodGet, "/view", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{}`, string(raw))

	code, _ = do(t, srv, http.MethodPost, "/add", alex)
	require.Equal(t, http.StatusOK, code)

	_, raw = do(t, srv, http.MethodGet, "/view", "")
	var all map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &all))
	require.Contains(t, all, "S001")
	assert.NotContains(t, all["S001"], "roll_no")
	assert.Equal(t, "Alex", all["S001"]["name"])
}
