package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefUnmarshalRawID(t *testing.T) {
	var ref Ref
	require.NoError(t, json.Unmarshal([]byte(`"c1"`), &ref))
	assert.Equal(t, "c1", ref.ID)
	assert.Nil(t, ref.Populated)
}

func TestRefUnmarshalPopulated(t *testing.T) {
	var ref Ref
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"c1","title":"Go Basics"}`), &ref))
	assert.Equal(t, "c1", ref.ID)

	var course Course
	ok, err := ref.Decode(&course)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Go Basics", course.Title)
}

func TestRefUnmarshalNull(t *testing.T) {
	var ref Ref
	require.NoError(t, json.Unmarshal([]byte(`null`), &ref))
	assert.True(t, ref.IsZero())
}

func TestRefBothShapesInOnePayload(t *testing.T) {
	// The same field may arrive populated or not depending on the query.
	var recs []CompletedCourse
	payload := `[
		{"courseId":"c1","points":20},
		{"courseId":{"_id":"c2","title":"Advanced Go"},"points":null}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &recs))
	assert.Equal(t, "c1", recs[0].Course.ID)
	assert.Equal(t, "c2", recs[1].Course.ID)
	assert.Nil(t, recs[1].Points)
	assert.NotNil(t, recs[1].Course.Populated)
}

func TestRefMarshalRoundTrip(t *testing.T) {
	blob, err := json.Marshal(Ref{ID: "m1"})
	require.NoError(t, err)
	assert.JSONEq(t, `"m1"`, string(blob))

	var ref Ref
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"m2"}`), &ref))
	blob, err = json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"m2"}`, string(blob))
}

func TestUserEnrollmentHelpers(t *testing.T) {
	usr := User{
		EnrolledCourses:     []Ref{{ID: "c1"}},
		EnrolledProfessions: []Ref{{ID: "p1"}},
		CompletedCourses:    []CompletedCourse{{Course: Ref{ID: "c9"}}},
	}
	assert.True(t, usr.IsEnrolledInCourse("c1"))
	assert.False(t, usr.IsEnrolledInCourse("c2"))
	assert.True(t, usr.IsEnrolledInProfession("p1"))
	assert.True(t, usr.HasCompletedCourse("c9"))
	assert.False(t, usr.HasCompletedProfession("p1"))
}
