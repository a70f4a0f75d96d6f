package oval

import (
	"encoding/json"
)

const (
	defaultOperation = "equals"
	defaultCheck     = "at least one"
	checkNoneSatisfy = "none satisfy"

	operatorAnd = "and"
	operatorNot = "not"
)

// ObjectRecord : >objects>*
type ObjectRecord struct {
	Name string
}

// ConditionSpec : >states>*>*
type ConditionSpec struct {
	Kind      string
	Operation string
	Value     string
}

// StateRecord : >states>*
// A stored state always has at least one condition.
type StateRecord struct {
	Conditions []ConditionSpec
}

// TestRecord : >tests>*
// A stored test always has both references.
type TestRecord struct {
	ObjectRef string
	StateRef  string
	Check     string
}

// Document is the converter output.
type Document struct {
	Advisories []Advisory `json:"advisory"`
}

// Advisory : >definitions>definition
type Advisory struct {
	Title       string   `json:"title"`
	FixesCVE    []string `json:"fixes_cve"`
	Severity    string   `json:"severity"`
	AffectedCPE []string `json:"affected_cpe"`
	Criteria    []Node   `json:"criteria"`
}

// Node is a resolved condition tree node: Clause, NegatedClause or Group.
type Node interface {
	json.Marshaler
	node()
}

// Predicate is the atomic [kind, subject, operation, value] unit.
type Predicate [4]string

// Clause is the conjunction of every condition in one resolved state.
type Clause struct {
	Predicates []Predicate
}

func (Clause) node() {}

func (c Clause) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]Predicate{operatorAnd: c.Predicates})
}

// NegatedClause is produced for tests whose check is "none satisfy".
type NegatedClause struct {
	Clause Clause
}

func (NegatedClause) node() {}

func (n NegatedClause) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]Clause{operatorNot: n.Clause})
}

// Group is a logical grouping keyed by its lower-cased operator.
// Operator is passed through verbatim, so non-standard keys are possible.
type Group struct {
	Operator string
	Children []Node
}

func (Group) node() {}

func (g Group) MarshalJSON() ([]byte, error) {
	children := g.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(map[string][]Node{g.Operator: children})
}
