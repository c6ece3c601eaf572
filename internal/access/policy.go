// Package access decides, per route, whether a caller must present a valid
// session cookie.
package access

import (
	"fmt"
	"sort"
	"strings"
)

type Level int

const (
	Public Level = iota
	Authenticated
)

func (l Level) String() string {
	if l == Public {
		return "public"
	}
	return "authenticated"
}

// ParseLevel accepts "public" or "authenticated" (also "auth", "required").
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public", "none":
		return Public, nil
	case "authenticated", "auth", "required":
		return Authenticated, nil
	}
	return Public, fmt.Errorf("unknown access level %q", s)
}

// Route is a method plus a gin path pattern, e.g. {"PUT", "/foods/:id"}.
type Route struct {
	Method string
	Path   string
}

func (r Route) String() string { return r.Method + " " + r.Path }

// Policy maps every registered route to its level.
type Policy map[Route]Level

// ownerScoped routes read the caller's identity and can never be public.
var ownerScoped = map[Route]bool{
	{"GET", "/requests"}: true,
	{"POST", "/images"}:  true,
}

// Default mirrors the access table the web client was built against.
func Default() Policy {
	return Policy{
		{"GET", "/"}:                 Public,
		{"POST", "/jwt"}:             Public,
		{"GET", "/logout"}:           Public,
		{"GET", "/foods"}:            Public,
		{"GET", "/foods/:id"}:        Public,
		{"POST", "/foods"}:           Authenticated,
		{"PUT", "/foods/:id"}:        Public,
		{"DELETE", "/foods/:id"}:     Authenticated,
		{"POST", "/requests"}:        Authenticated,
		{"GET", "/requests"}:         Authenticated,
		{"GET", "/requests/:FoodId"}: Authenticated,
		{"PATCH", "/requests/:id"}:   Authenticated,
		{"DELETE", "/requests/:id"}:  Authenticated,
		{"POST", "/images"}:          Authenticated,
		{"GET", "/images/:key"}:      Public,
	}
}

// Level returns the configured level for a route. Routes missing from the
// policy are treated as Authenticated.
func (p Policy) Level(method, path string) Level {
	if l, ok := p[Route{method, path}]; ok {
		return l
	}
	return Authenticated
}

// ParseOverrides reads a comma separated list of "METHOD /path=level".
func ParseOverrides(s string) (map[Route]Level, error) {
	out := map[Route]Level{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		lhs, rhs, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("access override %q: missing '='", item)
		}
		fields := strings.Fields(lhs)
		if len(fields) != 2 {
			return nil, fmt.Errorf("access override %q: want \"METHOD /path=level\"", item)
		}
		lvl, err := ParseLevel(rhs)
		if err != nil {
			return nil, fmt.Errorf("access override %q: %w", item, err)
		}
		out[Route{strings.ToUpper(fields[0]), fields[1]}] = lvl
	}
	return out, nil
}

// With returns a copy of p with overrides applied. Unknown routes and
// owner-scoped routes made public are rejected.
func (p Policy) With(overrides map[Route]Level) (Policy, error) {
	out := make(Policy, len(p))
	for r, l := range p {
		out[r] = l
	}
	for r, l := range overrides {
		if _, ok := p[r]; !ok {
			return nil, fmt.Errorf("access override for unknown route %s", r)
		}
		if l == Public && ownerScoped[r] {
			return nil, fmt.Errorf("route %s reads the caller identity and cannot be public", r)
		}
		out[r] = l
	}
	return out, nil
}

// FromConfig builds the default policy with a raw ACCESS_POLICY value applied.
func FromConfig(raw string) (Policy, error) {
	ov, err := ParseOverrides(raw)
	if err != nil {
		return nil, err
	}
	return Default().With(ov)
}

// Routes lists the policy in a stable order, for startup logging.
func (p Policy) Routes() []string {
	out := make([]string, 0, len(p))
	for r, l := range p {
		out = append(out, r.String()+"="+l.String())
	}
	sort.Strings(out)
	return out
}
