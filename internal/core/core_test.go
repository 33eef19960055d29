package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/rhythmui/internal/model"
	"github.com/jmylchreest/rhythmui/internal/overlay"
)

func testViews() []overlay.NotificationView {
	now := time.Now()
	return []overlay.NotificationView{
		{ID: "a", Text: "Welcome to osu!", Kind: "simple", Important: true, Read: true, PostedAt: now.Add(-3 * time.Minute)},
		{ID: "b", Text: "Import failed!", Kind: "error", Important: true, PostedAt: now.Add(-2 * time.Minute)},
		{ID: "c", Text: "Uploading to BSS...", Kind: "simple", Important: true, PostedAt: now.Add(-time.Minute), State: "active", Progress: 0.5},
		{ID: "d", Text: "Skin reloaded.", Kind: "background", PostedAt: now},
	}
}

func ids(views []overlay.NotificationView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		expr    string
		want    []string
		wantErr bool
	}{
		{"", []string{"a", "b", "c", "d"}, false},
		{"kind=error", []string{"b"}, false},
		{"kind!=simple", []string{"b", "d"}, false},
		{"text~upload", []string{"c"}, false},
		{"text~=^Im", []string{"b"}, false},
		{"read=false,important=true", []string{"b", "c"}, false},
		{"progress>=0.5", []string{"c"}, false},
		{"progress<0.5", []string{"a", "b", "d"}, false},
		{"state=active", []string{"c"}, false},
		{"kind=loud", nil, true},
		{"colour=red", nil, true},
		{"progress>half", nil, true},
		{"text~=(", nil, true},
		{"kind", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			expr, err := ParseFilter(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(Filter(testViews(), expr, 0)))
		})
	}
}

func TestFilter_Limit(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ids(Filter(testViews(), nil, 2)))
	assert.Len(t, Filter(testViews(), nil, 0), 4)
	assert.Empty(t, Filter(nil, nil, 3))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Error ")
	require.NoError(t, err)
	assert.Equal(t, model.KindError, k)

	_, err = ParseKind("urgent")
	assert.Error(t, err)
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		opts SortOptions
		want []string
	}{
		{"default newest first", DefaultSortOptions(), []string{"d", "c", "b", "a"}},
		{"posted asc", SortOptions{SortByPosted, SortAsc}, []string{"a", "b", "c", "d"}},
		{"kind asc is stable", SortOptions{SortByKind, SortAsc}, []string{"d", "b", "a", "c"}},
		{"kind desc is stable", SortOptions{SortByKind, SortDesc}, []string{"a", "c", "b", "d"}},
		{"text asc", SortOptions{SortByText, SortAsc}, []string{"b", "d", "c", "a"}},
		{"progress desc", SortOptions{SortByProgress, SortDesc}, []string{"c", "a", "b", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views := testViews()
			Sort(views, tt.opts)
			assert.Equal(t, tt.want, ids(views))
		})
	}
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortByKind, ParseSortField("kind"))
	assert.Equal(t, SortByText, ParseSortField("T"))
	assert.Equal(t, SortByProgress, ParseSortField("progress"))
	assert.Equal(t, SortByPosted, ParseSortField("whatever"))

	assert.Equal(t, SortAsc, ParseSortOrder("ascending"))
	assert.Equal(t, SortDesc, ParseSortOrder("desc"))
	assert.Equal(t, SortDesc, ParseSortOrder(""))
}

func TestLookup(t *testing.T) {
	views := testViews()

	require.NotNil(t, LookupByID(views, "c"))
	assert.Equal(t, "Uploading to BSS...", LookupByID(views, "c").Text)
	assert.Nil(t, LookupByID(views, "zzz"))

	require.NotNil(t, LookupByIndex(views, 1))
	assert.Equal(t, "a", LookupByIndex(views, 1).ID)
	assert.Nil(t, LookupByIndex(views, 0))
	assert.Nil(t, LookupByIndex(views, 5))

	assert.Equal(t, "b", Lookup(views, "2").ID)
	assert.Equal(t, "d", Lookup(views, "d").ID)
	assert.Nil(t, Lookup(views, "9"))
}

func TestSearch(t *testing.T) {
	views := testViews()

	assert.Len(t, Search(views, ""), 4)
	assert.Equal(t, []string{"a"}, ids(Search(views, "OSU")))
	assert.Empty(t, Search(views, "nothing"))
}
