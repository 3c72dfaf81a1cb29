// Package routes holds the static route authorization table consulted by the
// gateway after token verification. Rules are ordered, first match wins, and
// the table is immutable once built.
package routes

import "strings"

// Rule maps a path pattern to the roles allowed through it. A trailing "/**"
// matches the prefix itself and everything under it. Public rules skip
// authentication entirely; a non-public rule with no roles admits any
// authenticated caller.
type Rule struct {
	Pattern string
	Roles   []string
	Public  bool
}

type Table struct {
	rules []Rule
}

// New builds a table from ordered rules and appends the catch-all rule
// requiring an authenticated caller of any role.
func New(rules []Rule) *Table {
	all := make([]Rule, 0, len(rules)+1)
	all = append(all, rules...)
	all = append(all, Rule{Pattern: "/**"})
	return &Table{rules: all}
}

// Default mirrors the platform's route map: auth, public catalog, health,
// docs and metrics are open; admin, doctor and patient areas are scoped to
// their role; everything else needs a valid token.
func Default() *Table {
	return New([]Rule{
		{Pattern: "/api/auth/**", Public: true},
		{Pattern: "/api/services/public/**", Public: true},
		{Pattern: "/health/**", Public: true},
		{Pattern: "/api/docs/**", Public: true},
		{Pattern: "/metrics", Public: true},

		{Pattern: "/api/users/admin/**", Roles: []string{"ADMIN"}},

		{Pattern: "/api/users/doctors/**", Roles: []string{"DOCTOR"}},
		{Pattern: "/api/appointments/doctor/**", Roles: []string{"DOCTOR"}},

		{Pattern: "/api/appointments/patient/**", Roles: []string{"PATIENT"}},
	})
}

// Match returns the first rule whose pattern covers path. The catch-all
// guarantees there always is one.
func (t *Table) Match(path string) Rule {
	for _, r := range t.rules {
		if matchPattern(r.Pattern, path) {
			return r
		}
	}
	return Rule{Pattern: "/**"}
}

// Allows reports whether a caller holding the given roles may pass this rule.
func (r Rule) Allows(roles []string) bool {
	if r.Public || len(r.Roles) == 0 {
		return true
	}
	for _, have := range roles {
		for _, want := range r.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		if prefix == "" {
			return true
		}
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
