package semantic

import (
	"github.com/bahasapas-lang/bahasapasc/internal/parsetree"
	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

// firstPos returns the position of the leftmost leaf token under node,
// used to anchor diagnostics raised while resolving a subtree that has no
// decorated ast.Node of its own yet (e.g. during constant folding).
func firstPos(node *parsetree.Node) token.Position {
	if node.IsLeaf() {
		return node.Token.Pos
	}
	for _, c := range node.Children {
		if c == nil {
			continue
		}
		return firstPos(c)
	}
	return token.Position{}
}
