package oval

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

const (
	rpminfoObject       = "rpminfo_object"
	rpmverifyfileObject = "rpmverifyfile_object"
)

// Lookup holds the objects, states and tests of one document.
// It is built once per document and is read-only afterwards.
type Lookup struct {
	Objects map[string]ObjectRecord
	States  map[string]StateRecord
	Tests   map[string]TestRecord
}

// NewLookup scans the whole document and builds all three tables.
func NewLookup(doc *xmlquery.Node) Lookup {
	return Lookup{
		Objects: buildObjects(xmlquery.QuerySelectorAll(doc, objectsExpr)),
		States:  buildStates(xmlquery.QuerySelectorAll(doc, statesExpr)),
		Tests:   buildTests(xmlquery.QuerySelectorAll(doc, testsExpr)),
	}
}

func buildObjects(nodes []*xmlquery.Node) map[string]ObjectRecord {
	objects := map[string]ObjectRecord{}
	for _, n := range nodes {
		id := n.SelectAttr("id")
		if id == "" {
			continue
		}
		if name := objectName(n); name != "" {
			objects[id] = ObjectRecord{Name: name}
		}
	}
	return objects
}

func objectName(n *xmlquery.Node) string {
	switch {
	case strings.HasSuffix(n.Data, rpminfoObject):
		if nameNode := xmlquery.QuerySelector(n, objectNameExpr); nameNode != nil {
			return nameNode.InnerText()
		}
	case strings.HasSuffix(n.Data, rpmverifyfileObject):
		if pathNode := xmlquery.QuerySelector(n, objectFilepathExpr); pathNode != nil {
			return baseName(pathNode.InnerText())
		}
	}
	return ""
}

// baseName returns everything after the last slash, "" for a trailing slash.
func baseName(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

func buildStates(nodes []*xmlquery.Node) map[string]StateRecord {
	states := map[string]StateRecord{}
	for _, n := range nodes {
		id := n.SelectAttr("id")
		if id == "" {
			continue
		}

		var conditions []ConditionSpec
		for _, child := range childElements(n) {
			operation := child.SelectAttr("operation")
			if operation == "" {
				operation = defaultOperation
			}
			conditions = append(conditions, ConditionSpec{
				Kind:      strings.ReplaceAll(child.Data, "keyid", "_keyid"),
				Operation: operation,
				Value:     child.InnerText(),
			})
		}

		if len(conditions) > 0 {
			states[id] = StateRecord{Conditions: conditions}
		}
	}
	return states
}

func buildTests(nodes []*xmlquery.Node) map[string]TestRecord {
	tests := map[string]TestRecord{}
	for _, n := range nodes {
		id := n.SelectAttr("id")
		if id == "" {
			continue
		}

		var objectRef, stateRef string
		if o := xmlquery.QuerySelector(n, testObjectExpr); o != nil {
			objectRef = o.SelectAttr("object_ref")
		}
		if s := xmlquery.QuerySelector(n, testStateExpr); s != nil {
			stateRef = s.SelectAttr("state_ref")
		}
		if objectRef == "" || stateRef == "" {
			continue
		}

		check := n.SelectAttr("check")
		if check == "" {
			check = defaultCheck
		}
		tests[id] = TestRecord{
			ObjectRef: objectRef,
			StateRef:  stateRef,
			Check:     check,
		}
	}
	return tests
}

// childElements returns the direct element children of n in document order.
func childElements(n *xmlquery.Node) []*xmlquery.Node {
	var children []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			children = append(children, c)
		}
	}
	return children
}
