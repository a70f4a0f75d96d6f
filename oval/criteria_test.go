package oval

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLookup() Lookup {
	return Lookup{
		Objects: map[string]ObjectRecord{
			"obj:1": {Name: "openssl"},
			"obj:2": {Name: "redhat-release"},
		},
		States: map[string]StateRecord{
			"ste:1": {Conditions: []ConditionSpec{
				{Kind: "arch", Operation: "pattern match", Value: "x86_64"},
				{Kind: "evr", Operation: "less than", Value: "1:3.0.7-25.el9_3"},
			}},
			"ste:2": {Conditions: []ConditionSpec{
				{Kind: "version", Operation: "pattern match", Value: "^9"},
			}},
			// zero conditions are never stored by buildStates but must still vanish
			"ste:empty": {},
		},
		Tests: map[string]TestRecord{
			"tst:1":          {ObjectRef: "obj:1", StateRef: "ste:1", Check: "at least one"},
			"tst:none":       {ObjectRef: "obj:2", StateRef: "ste:2", Check: "none satisfy"},
			"tst:all":        {ObjectRef: "obj:2", StateRef: "ste:2", Check: "all"},
			"tst:unknown":    {ObjectRef: "obj:2", StateRef: "ste:2", Check: "None Satisfy"},
			"tst:no-object":  {ObjectRef: "obj:404", StateRef: "ste:1", Check: "at least one"},
			"tst:no-state":   {ObjectRef: "obj:1", StateRef: "ste:404", Check: "at least one"},
			"tst:empty":      {ObjectRef: "obj:1", StateRef: "ste:empty", Check: "at least one"},
			"tst:none-empty": {ObjectRef: "obj:1", StateRef: "ste:empty", Check: "none satisfy"},
		},
	}
}

func TestLookup_ResolveCriterion(t *testing.T) {
	tests := []struct {
		name    string
		testRef string
		want    Node
		wantOK  bool
	}{
		{
			name:    "at least one",
			testRef: "tst:1",
			want: Clause{Predicates: []Predicate{
				{"arch", "openssl", "pattern match", "x86_64"},
				{"evr", "openssl", "less than", "1:3.0.7-25.el9_3"},
			}},
			wantOK: true,
		},
		{
			name:    "none satisfy",
			testRef: "tst:none",
			want: NegatedClause{Clause: Clause{Predicates: []Predicate{
				{"version", "redhat-release", "pattern match", "^9"},
			}}},
			wantOK: true,
		},
		{
			name:    "other check values are not negated",
			testRef: "tst:all",
			want: Clause{Predicates: []Predicate{
				{"version", "redhat-release", "pattern match", "^9"},
			}},
			wantOK: true,
		},
		{
			name:    "check comparison is case sensitive",
			testRef: "tst:unknown",
			want: Clause{Predicates: []Predicate{
				{"version", "redhat-release", "pattern match", "^9"},
			}},
			wantOK: true,
		},
		{
			name:    "empty test_ref",
			testRef: "",
		},
		{
			name:    "missing test",
			testRef: "tst:404",
		},
		{
			name:    "missing object",
			testRef: "tst:no-object",
		},
		{
			name:    "missing state",
			testRef: "tst:no-state",
		},
		{
			name:    "state without conditions",
			testRef: "tst:empty",
		},
		{
			name:    "negated state without conditions",
			testRef: "tst:none-empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := testLookup().ResolveCriterion(tt.testRef)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_BuildCriteria(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			name: "operator is lower-cased",
			xml:  `<criteria operator="AND"><criterion test_ref="tst:1"/></criteria>`,
			want: `{"and": [{"and": [["arch", "openssl", "pattern match", "x86_64"], ["evr", "openssl", "less than", "1:3.0.7-25.el9_3"]]}]}`,
		},
		{
			name: "nested groups keep document order",
			xml: `<criteria operator="Or">
  <criterion test_ref="tst:none"/>
  <criteria operator="NOT"><criterion test_ref="tst:all"/></criteria>
  <criterion test_ref="tst:1"/>
</criteria>`,
			want: `{"or": [
  {"not": {"and": [["version", "redhat-release", "pattern match", "^9"]]}},
  {"not": [{"and": [["version", "redhat-release", "pattern match", "^9"]]}]},
  {"and": [["arch", "openssl", "pattern match", "x86_64"], ["evr", "openssl", "less than", "1:3.0.7-25.el9_3"]]}
]}`,
		},
		{
			name: "unresolvable children are dropped",
			xml: `<criteria operator="and">
  <criterion test_ref="tst:404"/>
  <criterion test_ref="tst:empty"/>
  <criterion/>
  <extend_definition definition_ref="def:1"/>
  <criteria operator="or"><criterion test_ref="tst:no-state"/></criteria>
</criteria>`,
			want: `{"and": [{"or": []}]}`,
		},
		{
			name: "operator is passed through verbatim",
			xml:  `<criteria operator="XOR"/>`,
			want: `{"xor": []}`,
		},
		{
			name: "missing operator",
			xml:  `<criteria><criterion test_ref="tst:none"/></criteria>`,
			want: `{"": [{"not": {"and": [["version", "redhat-release", "pattern match", "^9"]]}}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := xmlquery.Parse(strings.NewReader(tt.xml))
			require.NoError(t, err)
			root := xmlquery.FindOne(doc, "/criteria")
			require.NotNil(t, root)

			got, err := testLookup().BuildCriteria(root).MarshalJSON()
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestParseCriteria(t *testing.T) {
	doc, err := xmlquery.Parse(strings.NewReader(`<criteria operator="OR">
  <criterion comment="first" test_ref="tst:1"/>
  <extend_definition definition_ref="def:1"/>
  <criteria operator="AND">
    <criterion test_ref="tst:2"/>
  </criteria>
  <criterion/>
</criteria>`))
	require.NoError(t, err)

	want := criteriaGroup{
		Operator: "or",
		Children: []criteriaElement{
			criterionRef{TestRef: "tst:1"},
			criteriaGroup{
				Operator: "and",
				Children: []criteriaElement{criterionRef{TestRef: "tst:2"}},
			},
			criterionRef{},
		},
	}
	assert.Equal(t, want, parseCriteria(xmlquery.FindOne(doc, "/criteria")))
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"/etc/redhat-release": "redhat-release",
		"redhat-release":      "redhat-release",
		"/etc/":               "",
		"":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, baseName(in), in)
	}
}
