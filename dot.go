package pavl

import (
	"fmt"
	"io"

	"github.com/npillmayer/pavl/avl"
)

// Dot outputs the internal structure of the version at ts in Graphviz DOT
// format (for debugging purposes). Nodes are labeled with their item and
// height; the arena handle is used as node ID, so copies made by copying
// backends show up as distinct nodes across versions.
func (t *Tree[E]) Dot(ts Timestamp, w io.Writer) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	root, at := t.rootAt(ts)
	header := fmt.Sprintf("strict digraph {\n\tlabel=\"%s @%d\";\n", t.store.Kind(), at)
	header += "\tnode [fontname=Arial,fontsize=12];\n"
	nodelist, edgelist := "", ""
	nilid := 0
	var walk func(n avl.Node)
	walk = func(n avl.Node) {
		label := fmt.Sprintf("%v\\nh=%d", t.datum(n), t.store.Height(n, at))
		nodelist += fmt.Sprintf("\t\"%d\" [label=\"%s\" %s];\n", n, label, nodeDotStyles(n == root))
		for _, child := range []avl.Node{t.store.Left(n, at), t.store.Right(n, at)} {
			if child == avl.NoNode {
				nilid--
				nodelist += fmt.Sprintf("\t\"%d\" %s;\n", nilid, emptyNode())
				edgelist += fmt.Sprintf("\t\"%d\" -> \"%d\";\n", n, nilid)
				continue
			}
			edgelist += fmt.Sprintf("\t\"%d\" -> \"%d\";\n", n, child)
			walk(child)
		}
	}
	if root != avl.NoNode {
		walk(root)
	}
	for _, part := range []string{header, nodelist, edgelist, "}\n"} {
		if _, err := io.WriteString(w, part); err != nil {
			T().Errorf("pavl DOT: %s", err.Error())
			return err
		}
	}
	return nil
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=point,width=.1]"
}

func nodeDotStyles(isRoot bool) string {
	s := ",style=filled,shape=circle,color=black"
	if isRoot {
		s += ",fillcolor=\"#FFBB88\""
	} else {
		s += ",fillcolor=\"#a3d7e4\""
	}
	return s
}
