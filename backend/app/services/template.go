package services

import (
	"net/url"
	"strings"
)

// QueryPlaceholder is replaced by the raw search query.
const QueryPlaceholder = "{query}"

// ValidateTemplate requires exactly one placeholder and an absolute http(s)
// URL once a query is substituted.
func ValidateTemplate(tmpl string) error {
	if strings.Count(tmpl, QueryPlaceholder) != 1 {
		return ErrInvalidTemplate
	}
	u, err := url.Parse(ExpandTemplate(tmpl, "q"))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidTemplate
	}
	if strings.ContainsAny(tmpl, " \t\r\n") {
		return ErrInvalidTemplate
	}
	return nil
}

// ExpandTemplate substitutes query verbatim; no escaping is applied.
func ExpandTemplate(tmpl, query string) string {
	return strings.Replace(tmpl, QueryPlaceholder, query, 1)
}
