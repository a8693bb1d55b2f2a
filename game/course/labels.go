package course

import (
	"sort"

	"github.com/bytearena/pendulum/common/types"
	"github.com/bytearena/pendulum/common/utils/vector"
	"github.com/dhconnelly/rtreego"
)

// labels are anchored at their top-left corner; the index only needs a tiny
// box around the anchor
const labelExtent = 0.01

// Label is a piece of text placed on the course.
type Label struct {
	Position vector.Vector2
	Text     string
	seq      int
}

func (label *Label) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(
		rtreego.Point{label.Position.X, label.Position.Y},
		[]float64{labelExtent, labelExtent},
	)
	return rect
}

type labelIndex struct {
	tree   *rtreego.Rtree
	labels []*Label
}

func newLabelIndex() *labelIndex {
	return &labelIndex{
		tree:   rtreego.NewTree(2, 25, 50),
		labels: make([]*Label, 0),
	}
}

func (index *labelIndex) add(position vector.Vector2, text string) *Label {
	label := &Label{
		Position: position,
		Text:     text,
		seq:      len(index.labels),
	}

	index.tree.Insert(label)
	index.labels = append(index.labels, label)

	return label
}

func (index *labelIndex) Len() int {
	return len(index.labels)
}

// within returns the labels anchored inside [min, max], in placement order.
func (index *labelIndex) within(min, max vector.Vector2) []*Label {
	rect, err := rtreego.NewRect(
		rtreego.Point{min.X, min.Y},
		[]float64{max.X - min.X, max.Y - min.Y},
	)
	if err != nil {
		return []*Label{}
	}

	spatials := index.tree.SearchIntersect(rect)
	res := make([]*Label, 0, len(spatials))
	for _, spatial := range spatials {
		res = append(res, spatial.(*Label))
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].seq < res[j].seq
	})

	return res
}

func (label *Label) viz() types.VizText {
	return types.VizText{
		Position: label.Position,
		Text:     label.Text,
	}
}
