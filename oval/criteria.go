package oval

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// criteriaElement is a child of a criteria element: criteriaGroup or criterionRef.
type criteriaElement interface {
	isCriteriaElement()
}

// criteriaGroup : >criteria
type criteriaGroup struct {
	Operator string
	Children []criteriaElement
}

// criterionRef : >criteria>criterion
type criterionRef struct {
	TestRef string
}

func (criteriaGroup) isCriteriaElement() {}
func (criterionRef) isCriteriaElement() {}

// parseCriteria converts a criteria element into a criteriaGroup.
// Children other than criteria and criterion (e.g. extend_definition) are ignored.
func parseCriteria(n *xmlquery.Node) criteriaGroup {
	group := criteriaGroup{Operator: strings.ToLower(n.SelectAttr("operator"))}
	for _, child := range childElements(n) {
		switch child.Data {
		case "criteria":
			group.Children = append(group.Children, parseCriteria(child))
		case "criterion":
			group.Children = append(group.Children, criterionRef{TestRef: child.SelectAttr("test_ref")})
		}
	}
	return group
}

// buildGroup rebuilds the boolean tree of a criteria group.
// Unresolvable children are dropped, so the group may end up empty.
func (l Lookup) buildGroup(g criteriaGroup) Group {
	group := Group{
		Operator: g.Operator,
		Children: []Node{},
	}
	for _, child := range g.Children {
		var (
			n  Node
			ok bool
		)
		switch c := child.(type) {
		case criteriaGroup:
			n, ok = l.buildGroup(c), true
		case criterionRef:
			n, ok = l.ResolveCriterion(c.TestRef)
		}
		if ok {
			group.Children = append(group.Children, n)
		}
	}
	return group
}

// ResolveCriterion joins a test reference through the tests, objects and states
// tables. It returns false when any reference is missing or the state has no
// conditions.
func (l Lookup) ResolveCriterion(testRef string) (Node, bool) {
	if testRef == "" {
		return nil, false
	}
	test, ok := l.Tests[testRef]
	if !ok {
		return nil, false
	}
	object, ok := l.Objects[test.ObjectRef]
	if !ok {
		return nil, false
	}
	state, ok := l.States[test.StateRef]
	if !ok {
		return nil, false
	}

	var predicates []Predicate
	for _, cond := range state.Conditions {
		predicates = append(predicates, Predicate{cond.Kind, object.Name, cond.Operation, cond.Value})
	}
	if len(predicates) == 0 {
		return nil, false
	}

	clause := Clause{Predicates: predicates}
	if test.Check == checkNoneSatisfy {
		return NegatedClause{Clause: clause}, true
	}
	return clause, true
}

// BuildCriteria resolves a criteria element into a Group.
func (l Lookup) BuildCriteria(n *xmlquery.Node) Group {
	return l.buildGroup(parseCriteria(n))
}
