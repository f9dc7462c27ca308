// Package ident generates row identifiers for elements that do not supply one.
package ident

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MaxLength is the longest identifier the generator emits.
const MaxLength = 72

// namespace seeds the name-based digests so they never collide with
// digests produced by other tools from the same input.
var namespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("iismap.ident"))

// Generator hands out identifiers that are unique per table.
// The same sequence of calls always yields the same identifiers.
type Generator struct {
	used map[string]map[string]struct{}
}

// NewGenerator creates an empty generator.
func NewGenerator() *Generator {
	return &Generator{used: map[string]map[string]struct{}{}}
}

// Reserve records an author-supplied identifier so generated ones avoid it.
// It reports false if id was already taken in table.
func (g *Generator) Reserve(table, id string) bool {
	taken := g.table(table)
	if _, ok := taken[id]; ok {
		return false
	}

	taken[id] = struct{}{}

	return true
}

// Generate returns prefix_basis with basis sanitized into identifier
// characters. An empty or oversized basis is replaced by a digest of the
// table and basis. Collisions get a _2, _3, ... suffix, trimming the base
// so the result stays within MaxLength.
func (g *Generator) Generate(table, prefix string, basis ...string) string {
	base := prefix + "_" + Sanitize(strings.Join(basis, "_"))
	if strings.Trim(base[len(prefix)+1:], "_") == "" || len(base) > MaxLength {
		base = prefix + "_" + digest(table, basis)
	}

	taken := g.table(table)

	id := base
	for n := 2; ; n++ {
		if _, ok := taken[id]; !ok {
			break
		}

		suffix := "_" + strconv.Itoa(n)
		id = base[:min(len(base), MaxLength-len(suffix))] + suffix
	}

	taken[id] = struct{}{}

	return id
}

// Sanitize maps s onto identifier characters: runs of anything other than
// letters, digits, underscore and dot become a single underscore.
func Sanitize(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	pending := false

	for _, r := range s {
		if isIdentRune(r) {
			if pending && sb.Len() > 0 {
				sb.WriteByte('_')
			}

			pending = false

			sb.WriteRune(r)

			continue
		}

		pending = true
	}

	return sb.String()
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '.' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func digest(table string, basis []string) string {
	u := uuid.NewSHA1(namespace, []byte(table+"\x00"+strings.Join(basis, "\x00")))
	return strings.ReplaceAll(u.String(), "-", "")
}

func (g *Generator) table(name string) map[string]struct{} {
	taken, ok := g.used[name]
	if !ok {
		taken = map[string]struct{}{}
		g.used[name] = taken
	}

	return taken
}
