// Package render fills HTML, spreadsheet and word-processor templates from
// an assembled context and emits output files atomically. PDF conversion is
// delegated to an external engine.
package render

import (
	"strings"

	"github.com/diewo77/exportdocs/internal/docctx"
	"github.com/diewo77/exportdocs/internal/docerr"
)

// resolver maps one placeholder token to its value. The bool mirrors map
// lookup semantics: false means the token is unknown.
type resolver func(token string) (string, bool)

// contextResolver routes UPPER_SNAKE tokens to the flat placeholder map and
// dotted paths to the nested context.
func contextResolver(ctx *docctx.Context) resolver {
	return func(token string) (string, bool) {
		if isUpperToken(token) {
			v, ok := ctx.Placeholders[token]
			return v, ok
		}
		return ctx.Lookup(token)
	}
}

func isUpperToken(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// Substitute replaces every "{{ expr }}" occurrence in input. An expression
// is a token optionally followed by the single supported filter,
// `| default: "..."`. Unknown tokens render empty, or fail in strict mode;
// any other filter always fails.
func Substitute(input string, resolve resolver, strict bool) (string, error) {
	var b strings.Builder
	for {
		i := strings.Index(input, "{{")
		if i < 0 {
			b.WriteString(input)
			return b.String(), nil
		}
		b.WriteString(input[:i])
		rest := input[i+2:]
		j := strings.Index(rest, "}}")
		if j < 0 {
			if strict {
				return "", docerr.New(docerr.Template, "unterminated placeholder")
			}
			b.WriteString(input[i:])
			return b.String(), nil
		}
		expr := strings.TrimSpace(rest[:j])
		input = rest[j+2:]
		v, err := evalExpr(expr, resolve, strict)
		if err != nil {
			return "", err
		}
		b.WriteString(v)
	}
}

func evalExpr(expr string, resolve resolver, strict bool) (string, error) {
	token := expr
	def := ""
	hasDefault := false
	if k := strings.IndexByte(expr, '|'); k >= 0 {
		token = strings.TrimSpace(expr[:k])
		filter := strings.TrimSpace(expr[k+1:])
		rest, ok := strings.CutPrefix(filter, "default:")
		if !ok {
			return "", docerr.New(docerr.Template, "unsupported filter: "+filter)
		}
		q := strings.TrimSpace(rest)
		if len(q) < 2 || (q[0] != '"' && q[0] != '\'') || q[len(q)-1] != q[0] {
			return "", docerr.New(docerr.Template, "default filter requires a quoted string")
		}
		def = q[1 : len(q)-1]
		hasDefault = true
	}
	v, ok := resolve(token)
	switch {
	case !ok && hasDefault:
		return def, nil
	case !ok && strict:
		return "", docerr.New(docerr.Template, "unknown placeholder: "+token)
	case !ok:
		return "", nil
	case v == "" && hasDefault:
		return def, nil
	default:
		return v, nil
	}
}
