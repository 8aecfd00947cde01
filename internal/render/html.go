package render

import "github.com/diewo77/exportdocs/internal/docctx"

// FillHTML substitutes all placeholders of an HTML template against the
// context. The operation is pure; rendering twice yields identical bytes.
func FillHTML(tpl []byte, ctx *docctx.Context, strict bool) ([]byte, error) {
	out, err := Substitute(string(tpl), contextResolver(ctx), strict)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
