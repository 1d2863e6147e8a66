package table

import (
	"fmt"
	"testing"

	"github.com/jonathan/hiring-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	ID   string
	Name string
	City string
}

func personColumns(p person) map[string]string {
	return map[string]string{"id": p.ID, "name": p.Name, "city": p.City}
}

func people() []person {
	return []person{
		{"1", "Citra", "Bandung"},
		{"2", "asep", "Jakarta"},
		{"3", "Budi", "Bandung"},
		{"4", "Dewi", "Surabaya"},
		{"5", "Eka", "Bandung"},
	}
}

func names(ps []person) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestFilter_EmptyQueryMatchesEverything(t *testing.T) {
	records := people()
	assert.Equal(t, records, Filter(records, personColumns, "", nil))
}

func TestFilter_IsSubset(t *testing.T) {
	records := people()
	for _, q := range []string{"a", "BAND", "zzz", "1", "e", " "} {
		got := Filter(records, personColumns, q, nil)
		for _, p := range got {
			assert.Contains(t, records, p, "query %q", q)
		}
		assert.LessOrEqual(t, len(got), len(records))
	}
}

func TestFilter_CaseInsensitiveAnyField(t *testing.T) {
	got := Filter(people(), personColumns, "BANDUNG", nil)
	assert.Equal(t, []string{"Citra", "Budi", "Eka"}, names(got))

	got = Filter(people(), personColumns, "ASEP", nil)
	assert.Equal(t, []string{"asep"}, names(got))
}

func TestFilter_CategoricalIsAnded(t *testing.T) {
	got := Filter(people(), personColumns, "i", map[string]string{"city": "Bandung"})
	// "i" also matches Dewi, but she is not in Bandung.
	assert.Equal(t, []string{"Citra", "Budi"}, names(got))

	got = Filter(people(), personColumns, "", map[string]string{"city": "all"})
	assert.Len(t, got, 5)
}

func TestSort_Lexicographic(t *testing.T) {
	got := Sort(people(), personColumns, "name", Asc)
	// byte-wise comparison: upper case sorts before lower case
	assert.Equal(t, []string{"Budi", "Citra", "Dewi", "Eka", "asep"}, names(got))

	got = Sort(people(), personColumns, "name", Desc)
	assert.Equal(t, []string{"asep", "Eka", "Dewi", "Citra", "Budi"}, names(got))
}

func TestSort_StableOnTies(t *testing.T) {
	got := Sort(people(), personColumns, "city", Asc)
	assert.Equal(t, []string{"Citra", "Budi", "Eka", "asep", "Dewi"}, names(got))
}

func TestSort_NoKeyKeepsOrder(t *testing.T) {
	assert.Equal(t, people(), Sort(people(), personColumns, "", Asc))
}

func TestSort_Idempotent(t *testing.T) {
	once := Sort(people(), personColumns, "city", Desc)
	twice := Sort(once, personColumns, "city", Desc)
	assert.Equal(t, once, twice)
}

func TestSortState_Toggle(t *testing.T) {
	s := SortState{}
	s = s.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Direction: Asc}, s)
	s = s.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Direction: Desc}, s)
	s = s.Toggle("name")
	assert.Equal(t, SortState{Key: "name", Direction: Asc}, s)
	s = s.Toggle("name").Toggle("city")
	assert.Equal(t, SortState{Key: "city", Direction: Asc}, s)
}

func TestToggleTwiceRestoresOrder(t *testing.T) {
	records := people()
	s := SortState{}.Toggle("id")
	first := Sort(records, personColumns, s.Key, s.Direction)
	s = s.Toggle("id").Toggle("id")
	again := Sort(records, personColumns, s.Key, s.Direction)
	assert.Equal(t, first, again)
}

func TestView_Pagination(t *testing.T) {
	var records []person
	for i := 1; i <= 12; i++ {
		records = append(records, person{ID: fmt.Sprintf("%02d", i), Name: fmt.Sprintf("P%02d", i)})
	}

	for _, size := range []int{1, 3, 5, 12, 20} {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			first := View(records, personColumns, Query{SortKey: "name", Direction: Desc, Page: 1, PageSize: size})
			assert.Equal(t, (12+size-1)/size, first.TotalPages)

			var all []person
			for p := 1; p <= first.TotalPages; p++ {
				page := View(records, personColumns, Query{SortKey: "name", Direction: Desc, Page: p, PageSize: size})
				all = append(all, page.Items...)
			}
			assert.Equal(t, Sort(records, personColumns, "name", Desc), all)
		})
	}
}

func TestView_TwelveCandidatesSevenMatches(t *testing.T) {
	var candidates []types.Candidate
	for i := 1; i <= 12; i++ {
		city := "Jakarta"
		if i%2 == 0 || i == 11 {
			city = "Bandung"
		}
		candidates = append(candidates, types.Candidate{
			ID:    fmt.Sprintf("cand_%02d", i),
			JobID: "job_1",
			Fields: map[string]any{
				"full_name": fmt.Sprintf("Kandidat %02d", 13-i),
				"domicile":  city,
			},
		})
	}

	page := View(candidates, CandidateColumns, Query{
		Search:    "bandung",
		SortKey:   "full_name",
		Direction: Asc,
		Page:      1,
		PageSize:  DefaultPageSize,
	})

	assert.Equal(t, 7, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 5)

	matching := Filter(candidates, CandidateColumns, "bandung", nil)
	sorted := Sort(matching, CandidateColumns, "full_name", Asc)
	assert.Equal(t, sorted[:5], page.Items)

	second := View(candidates, CandidateColumns, Query{Search: "bandung", SortKey: "full_name", Direction: Asc, Page: 2})
	assert.Equal(t, sorted[5:], second.Items)
}

func TestView_ClampsPage(t *testing.T) {
	page := View(people(), personColumns, Query{Page: 99, PageSize: 2})
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, []string{"Eka"}, names(page.Items))

	page = View(people(), personColumns, Query{Page: -3, PageSize: 2})
	assert.Equal(t, 1, page.Page)
}

func TestView_EmptyResult(t *testing.T) {
	page := View(people(), personColumns, Query{Search: "nobody", Page: 1})
	assert.True(t, page.Empty)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestView_DefaultPageSize(t *testing.T) {
	page := View(people(), personColumns, Query{})
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, 5)
}

func TestView_SearchIn(t *testing.T) {
	q := Query{Search: "bandung", SearchIn: []string{"name"}}
	assert.True(t, View(people(), personColumns, q).Empty)

	q.SearchIn = []string{"name", "city"}
	assert.Equal(t, 3, View(people(), personColumns, q).TotalCount)
}

func TestJobListing_SearchesTitleAndDepartment(t *testing.T) {
	jobs := []types.Job{
		{ID: "1", Title: "Backend Engineer", Department: "Engineering", Status: types.JobStatusActive},
		{ID: "2", Title: "Designer", Department: "Design", Status: types.JobStatusActive},
	}
	page := View(jobs, JobListingColumns, Query{Search: "active", SearchIn: JobSearchColumns})
	assert.True(t, page.Empty)

	page = View(jobs, JobListingColumns, Query{Search: "DESIGN", SearchIn: JobSearchColumns})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2", page.Items[0].ID)
}
