// Copyright 2026 The csvwidgets Authors
// SPDX-License-Identifier: MIT

package param

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinition() *Definition {
	return Composite("root", "Root",
		String("title", "Title").WithDefault("Chart Title"),
		String("fieldSeparator", "Field Separator").WithDefault(",").KeepWhitespace(),
		Date("from", "From"),
		Int("year", "Year"),
		Enum("scale", "Scale", "day", "week", "month", "year").WithDefault("month"),
		Multi("series", "Series",
			String("name", "Name"),
			String("dataKey", "Data Key"),
		),
	)
}

func TestStr_DefaultWhenMissing(t *testing.T) {
	v := Bind(testDefinition(), map[string]any{})

	title, ok := v.Get("title").Str().Get()
	assert.True(t, ok)
	assert.Equal(t, "Chart Title", title)
}

func TestStr_BlankCountsAsAbsent(t *testing.T) {
	v := Bind(testDefinition(), map[string]any{"title": "   "})
	assert.Equal(t, "Chart Title", v.Get("title").Str().OrElse(""))

	v = Bind(Composite("root", "Root", String("name", "Name")), map[string]any{"name": " \t"})
	assert.False(t, v.Get("name").Str().Present())
}

func TestStr_VerbatimKeepsTab(t *testing.T) {
	v := Bind(testDefinition(), map[string]any{"fieldSeparator": "\t"})
	sep, err := v.Get("fieldSeparator").Str().Required()
	require.NoError(t, err)
	assert.Equal(t, "\t", sep)
}

func TestRequired_ErrorNamesLabel(t *testing.T) {
	v := Bind(testDefinition(), nil)

	_, err := v.Get("from").Str().Required()
	require.Error(t, err)
	assert.True(t, IsRequired(err))
	assert.Equal(t, "Parameter 'From' is required", err.Error())
}

func TestDate_ParsesStringAndTime(t *testing.T) {
	v := Bind(testDefinition(), map[string]any{"from": "2024-03-05"})
	d, err := v.Get("from").Date(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d.OrElse(time.Time{}))

	loc := time.FixedZone("x", 3600)
	v = Bind(testDefinition(), map[string]any{"from": time.Date(2024, 3, 5, 22, 0, 0, 0, time.UTC)})
	d, err = v.Get("from").Date(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, loc), d.OrElse(time.Time{}))
}

func TestDate_InvalidIsError(t *testing.T) {
	v := Bind(testDefinition(), map[string]any{"from": "05/03/2024"})
	_, err := v.Get("from").Date(time.UTC)
	require.Error(t, err)
	assert.False(t, IsRequired(err))
	assert.Contains(t, err.Error(), "From")
}

func TestInt(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int
		present bool
		wantErr bool
	}{
		{name: "int", raw: 2024, want: 2024, present: true},
		{name: "int64", raw: int64(2023), want: 2023, present: true},
		{name: "string", raw: " 2022 ", want: 2022, present: true},
		{name: "missing", raw: nil},
		{name: "garbage", raw: "twenty", wantErr: true},
		{name: "fraction", raw: 2024.5, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Bind(testDefinition(), map[string]any{"year": tt.raw})
			got, err := v.Get("year").Int()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.present, got.Present())
			assert.Equal(t, tt.want, got.OrElse(0))
		})
	}
}

func TestEnum_CanonicalizesCase(t *testing.T) {
	v := Bind(testDefinition(), map[string]any{"scale": "WEEK"})
	got, err := v.Get("scale").Enum()
	require.NoError(t, err)
	assert.Equal(t, "week", got.OrElse(""))

	v = Bind(testDefinition(), map[string]any{"scale": "fortnight"})
	_, err = v.Get("scale").Enum()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fortnight")
}

func TestItems_PreservesOrder(t *testing.T) {
	raw := map[string]any{
		"series": []any{
			map[string]any{"name": "a", "dataKey": "x"},
			map[string]any{"name": "b"},
		},
	}
	items := Bind(testDefinition(), raw).Get("series").Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Get("name").Str().OrElse(""))
	assert.Equal(t, "x", items[0].Get("dataKey").Str().OrElse(""))
	assert.False(t, items[1].Get("dataKey").Str().Present())
	assert.Equal(t, "Data Key", items[1].Get("dataKey").Label())
}

func TestItems_AcceptsTOMLTables(t *testing.T) {
	raw := map[string]any{
		"series": []map[string]any{{"name": "a"}},
	}
	items := Bind(testDefinition(), raw).Get("series").Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Get("name").Str().OrElse(""))
}

func TestItems_SingleMap(t *testing.T) {
	raw := map[string]any{"series": map[string]any{"name": "solo"}}
	items := Bind(testDefinition(), raw).Get("series").Items()
	require.Len(t, items, 1)
}

func TestUnknown(t *testing.T) {
	raw := map[string]any{
		"title":  "x",
		"colour": "red",
		"series": []any{map[string]any{"name": "a", "key": "b"}},
	}
	assert.Equal(t, []string{"colour", "series.0.key"}, Unknown(testDefinition(), raw))
}

func TestOptional(t *testing.T) {
	s := Some(3, "N")
	v, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, s.OrElse(9))

	n := None[int]("N")
	assert.Equal(t, 9, n.OrElse(9))
	_, err := n.Required()
	var re *RequiredError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "N", re.Label)
}
