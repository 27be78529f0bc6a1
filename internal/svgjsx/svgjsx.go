// Package svgjsx rewrites SVG markup into JSX that React accepts: dashed
// and namespaced attribute names become camelCase and inline styles become
// style objects.
package svgjsx

import (
	"fmt"
	"regexp"
	"strings"
)

var renames = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\bclass=`), "className="},
	{regexp.MustCompile(`\bstroke-width=`), "strokeWidth="},
	{regexp.MustCompile(`\bfill-opacity=`), "fillOpacity="},
	{regexp.MustCompile(`\bstroke-opacity=`), "strokeOpacity="},
	{regexp.MustCompile(`\bxlink:href`), "xlinkHref"},
	{regexp.MustCompile(`\bxmlns:xlink`), "xmlnsXlink"},
}

var (
	attrName  = regexp.MustCompile(`(\s)([a-zA-Z][\w:.-]*)(\s*=)`)
	dashLower = regexp.MustCompile(`([a-z])-([a-z])`)
	styleAttr = regexp.MustCompile(`style="([^"]*)"`)
	dashAny   = regexp.MustCompile(`-([a-z])`)
)

// ToJSX converts SVG markup to JSX. Attributes starting with data- or
// aria- keep their dashes, as React expects.
func ToJSX(svg string) string {
	out := svg
	for _, r := range renames {
		out = r.re.ReplaceAllString(out, r.repl)
	}

	out = attrName.ReplaceAllStringFunc(out, func(m string) string {
		g := attrName.FindStringSubmatch(m)
		name := g[2]
		if strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-") {
			return m
		}
		return g[1] + camel(dashLower, name) + g[3]
	})

	out = styleAttr.ReplaceAllStringFunc(out, func(m string) string {
		return "style={{ " + styleObject(styleAttr.FindStringSubmatch(m)[1]) + " }}"
	})

	return strings.TrimSpace(out)
}

func camel(re *regexp.Regexp, s string) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		g := re.FindStringSubmatch(m)
		if len(g) == 3 {
			return g[1] + strings.ToUpper(g[2])
		}
		return strings.ToUpper(g[1])
	})
}

// styleObject turns "font-size: 12px; fill: red" into
// "fontSize: '12px', fill: 'red'".
func styleObject(css string) string {
	var props []string
	for _, decl := range strings.Split(css, ";") {
		if strings.TrimSpace(decl) == "" {
			continue
		}
		prop, value, _ := strings.Cut(decl, ":")
		prop = camel(dashAny, strings.TrimSpace(prop))
		value = strings.ReplaceAll(strings.TrimSpace(value), "'", `\'`)
		props = append(props, fmt.Sprintf("%s: '%s'", prop, value))
	}
	return strings.Join(props, ", ")
}
