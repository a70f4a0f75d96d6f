package oval

import (
	"fmt"

	"github.com/antchfx/xpath"
)

// Namespaces maps the prefixes used in XPath expressions to the OVAL namespace URIs.
// Documents may declare these namespaces with any prefix; matching is by URI.
var Namespaces = map[string]string{
	"oval-def": "http://oval.mitre.org/XMLSchema/oval-definitions-5",
	"oval":     "http://oval.mitre.org/XMLSchema/oval-common-5",
	"unix-def": "http://oval.mitre.org/XMLSchema/oval-definitions-5#unix",
	"red-def":  "http://oval.mitre.org/XMLSchema/oval-definitions-5#linux",
	"ind-def":  "http://oval.mitre.org/XMLSchema/oval-definitions-5#independent",
	"xsi":      "http://www.w3.org/2001/XMLSchema-instance",
}

var (
	objectsExpr     = mustCompile("//oval-def:objects/*")
	statesExpr      = mustCompile("//oval-def:states/*")
	testsExpr       = mustCompile("//oval-def:tests/*")
	definitionsExpr = mustCompile("/oval-def:oval_definitions/oval-def:definitions/oval-def:definition")

	objectNameExpr     = mustCompile("red-def:name")
	objectFilepathExpr = mustCompile("red-def:filepath")
	testObjectExpr     = mustCompile(".//red-def:object")
	testStateExpr      = mustCompile(".//red-def:state")

	metadataExpr    = mustCompile("oval-def:metadata")
	advisoryExpr    = mustCompile("oval-def:advisory")
	titleExpr       = mustCompile("oval-def:title")
	severityExpr    = mustCompile("oval-def:severity")
	referenceExpr   = mustCompile("oval-def:reference[@source='CVE']")
	topCriteriaExpr = mustCompile("oval-def:criteria")

	// cpe is in the definitions namespace in Red Hat feeds and in oval-common elsewhere
	cpeExpr = mustCompile("oval-def:affected_cpe_list/*[local-name()='cpe']")
)

func mustCompile(expr string) *xpath.Expr {
	e, err := xpath.CompileWithNS(expr, Namespaces)
	if err != nil {
		panic(fmt.Sprintf("invalid XPath %q: %s", expr, err))
	}
	return e
}
