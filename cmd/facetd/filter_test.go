package main

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-facet-engine/model"
)

const agencySeed = "../../seed/agency.json"

func TestParseCategoryFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   []string
		want    map[string][]string
		wantErr bool
	}{
		{name: "none", flags: nil, want: nil},
		{name: "single facet", flags: []string{"position=Forward,Winger"}, want: map[string][]string{"position": {"Forward", "Winger"}}},
		{name: "repeated facet", flags: []string{"team=Barcelona", "team=AC Milan"}, want: map[string][]string{"team": {"Barcelona", "AC Milan"}}},
		{name: "missing separator", flags: []string{"position"}, wantErr: true},
		{name: "missing facet", flags: []string{"=Forward"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCategoryFlags(tt.flags)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseCategoryFlags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRangeFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   []string
		want    map[string]model.Range
		wantErr bool
	}{
		{name: "age", flags: []string{"age=24:26"}, want: map[string]model.Range{"age": {Min: 24, Max: 26}}},
		{name: "fractional", flags: []string{"marketValue=12.5:80"}, want: map[string]model.Range{"marketValue": {Min: 12.5, Max: 80}}},
		{name: "missing colon", flags: []string{"age=24"}, wantErr: true},
		{name: "bad number", flags: []string{"age=young:26"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRangeFlags(tt.flags)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseRangeFlags() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"filter", "--seed", agencySeed, "--collection", "athletes", "--range", "age=24:26", "--sort", "age"})
	require.NoError(t, cmd.Execute())

	var result model.FilterResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.ActiveFilterCount)
	ids := make([]string, 0, len(result.Matched))
	for _, record := range result.Matched {
		id, _ := record.GetRecordID()
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"1", "6", "3"}, ids)
}

func TestFilterCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown collection", args: []string{"filter", "--seed", agencySeed, "--collection", "players"}},
		{name: "invalid range", args: []string{"filter", "--seed", agencySeed, "--collection", "athletes", "--range", "age=30:20"}},
		{name: "unknown facet", args: []string{"filter", "--seed", agencySeed, "--collection", "athletes", "--category", "league=Serie A"}},
		{name: "missing collection flag", args: []string{"filter", "--seed", agencySeed}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "facetd version dev\n", out.String())
}
