// Package merge applies a partial student update onto a stored record.
//
// Only fields present in the update are copied. The nested objects
// (marks, weak_areas, guardian) are merged key by key, so an update that
// sends {"guardian": {"name": "Kim"}} keeps the stored relation and
// contact. The result must be re-validated before it is persisted.
package merge

import "github.com/aanand-mishra/student-records/internal/types"

// Apply returns existing with upd merged in, identified as rollNo.
// existing is not modified.
func Apply(rollNo string, existing types.Record, upd types.StudentUpdate) types.Student {
	// The identity always comes from the lookup key, never the payload.
	merged := existing.Student(rollNo)

	if name, ok := upd.Name.Get(); ok {
		merged.Name = name
	}
	if gender, ok := upd.Gender.Get(); ok {
		merged.Gender = gender
	}
	if m, ok := upd.Marks.Get(); ok {
		merged.Marks = mergeMarks(merged.Marks, m)
	}
	if w, ok := upd.WeakAreas.Get(); ok {
		merged.WeakAreas = mergeWeakAreas(merged.WeakAreas, w)
	}
	if g, ok := upd.Guardian.Get(); ok {
		merged.Guardian = mergeGuardian(merged.Guardian, g)
	}

	return merged
}

// mergeMarks overwrites the supplied subject scores. An empty update
// leaves cur as is, including leaving an absent marks object absent.
func mergeMarks(cur *types.Marks, upd types.MarksUpdate) *types.Marks {
	if upd.IsEmpty() {
		return cur
	}
	if cur == nil {
		cur = &types.Marks{}
	}

	for _, s := range types.Subjects {
		if v, ok := upd.For(s).Get(); ok {
			cur.Set(s, v)
		}
	}
	return cur
}

func mergeWeakAreas(cur *types.WeakAreas, upd types.WeakAreasUpdate) *types.WeakAreas {
	if upd.IsEmpty() {
		return cur
	}

	var out types.WeakAreas
	if cur != nil {
		out = *cur
	}

	if v, ok := upd.Math.Get(); ok {
		out.Math = v
	}
	if v, ok := upd.Science.Get(); ok {
		out.Science = v
	}
	if v, ok := upd.Social.Get(); ok {
		out.Social = v
	}

	out = out.Clone()
	return &out
}

func mergeGuardian(cur types.Guardian, upd types.GuardianUpdate) types.Guardian {
	if v, ok := upd.Name.Get(); ok {
		cur.Name = v
	}
	if v, ok := upd.Relation.Get(); ok {
		cur.Relation = v
	}
	if v, ok := upd.Contact.Get(); ok {
		cur.Contact = v
	}
	return cur
}
