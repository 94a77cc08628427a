package parsec

// Visit is called once per visited node, in pre-order: a node before its
// children, children before the node's next sibling. ctx is threaded
// through unchanged — visitors that need accumulation close over their own
// state instead.
type Visit func(node *AST, ctx interface{})

// Walk traverses ast pre-order (node, then Child's subtree, then Next's
// subtree), calling visit on every node except Nil. Nil carries no
// information and is never itself visited, matching how combinators treat
// it as "absent" rather than "present but empty".
func Walk(ast *AST, visit Visit, ctx interface{}) {
	if ast == nil || ast == Nil {
		return
	}
	visit(ast, ctx)
	if ast.Child != nil {
		Walk(ast.Child, visit, ctx)
	}
	if ast.Next != nil {
		Walk(ast.Next, visit, ctx)
	}
}
