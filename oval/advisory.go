package oval

import (
	"github.com/antchfx/xmlquery"
	"github.com/samber/lo"
)

// assembleAdvisory builds one advisory from a definition element.
// It returns false for definitions without metadata.
func (l Lookup) assembleAdvisory(def *xmlquery.Node) (Advisory, bool) {
	metadata := xmlquery.QuerySelector(def, metadataExpr)
	if metadata == nil {
		return Advisory{}, false
	}
	advisory := xmlquery.QuerySelector(metadata, advisoryExpr)

	cves := lo.Map(xmlquery.QuerySelectorAll(metadata, referenceExpr), func(n *xmlquery.Node, _ int) string {
		return n.SelectAttr("ref_id")
	})

	adv := Advisory{
		Title:       innerText(xmlquery.QuerySelector(metadata, titleExpr)),
		FixesCVE:    cves,
		AffectedCPE: []string{},
		Criteria:    []Node{},
	}
	if advisory != nil {
		adv.Severity = innerText(xmlquery.QuerySelector(advisory, severityExpr))
		adv.AffectedCPE = lo.Map(xmlquery.QuerySelectorAll(advisory, cpeExpr), func(n *xmlquery.Node, _ int) string {
			return n.InnerText()
		})
	}
	if criteria := xmlquery.QuerySelector(def, topCriteriaExpr); criteria != nil {
		adv.Criteria = append(adv.Criteria, l.BuildCriteria(criteria))
	}
	return adv, true
}

func innerText(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return n.InnerText()
}
