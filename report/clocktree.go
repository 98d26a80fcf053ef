package report

import (
	"encoding/json"
	"io"

	"sasic/cts"
)

type clockNode struct {
	ID       string       `json:"id"`
	XUm      int32        `json:"x_um"`
	YUm      int32        `json:"y_um"`
	Children []*clockNode `json:"children,omitempty"`
}

// WriteClockTree writes the nested clock tree JSON record: for each
// node, {"id", "x_um", "y_um", "children":[...]}, where "children"
// holds the child node records themselves and is omitted on leaf
// buffers (§6 "Clock tree").
func WriteClockTree(w io.Writer, tree *cts.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toClockNode(tree.Root))
}

func toClockNode(n *cts.Node) *clockNode {
	out := &clockNode{ID: n.ID, XUm: n.X, YUm: n.Y}
	for _, c := range n.Children {
		out.Children = append(out.Children, toClockNode(c))
	}
	return out
}
