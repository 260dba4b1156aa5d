package quadtree

import (
	"reflect"
	"testing"
)

func TestCoverExpandsAroundPoints(t *testing.T) {
	tr := New[int, int]()
	tr.Insert(0, 0, 0)
	tr.Insert(2, 2, 1)
	tr.Insert(-1, -1, 2)

	min, max := tr.Extent()
	if min != [2]int64{-4, -4} || max != [2]int64{4, 4} {
		t.Fatalf("extent = %v..%v, want [-4,-4]..[4,4]", min, max)
	}
}

func TestCoverDoesNotWrapLeafRoot(t *testing.T) {
	tr := New[int, int]()
	tr.Cover(0, 0)
	if tr.root != nil {
		t.Fatalf("expected no root after bare Cover call")
	}
	tr.Insert(0, 0, 0)
	if tr.root == nil || tr.root.kind != leafKind {
		t.Fatalf("expected leaf root")
	}
	tr.Cover(100, 100)
	if tr.root.kind != leafKind {
		t.Fatalf("Cover must not wrap a leaf root in place")
	}
}

func TestCoverPanicsOnNaN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on NaN coordinate")
		}
	}()
	tr := New[int, int]()
	tr.Insert(0, 0, 0)
	nan := 0.0
	nan /= nan
	tr.Cover(nan, 0)
}

func extentOf(e Extent) [4]float64 {
	return [4]float64{e.X0, e.Y0, e.X1, e.Y1}
}

func TestVisitPreOrderOnTwoByTwoGrid(t *testing.T) {
	tr := New[int, int]()
	tr.Insert(0, 0, 0)
	tr.Insert(1, 0, 1)
	tr.Insert(0, 1, 2)
	tr.Insert(1, 1, 3)

	var got [][4]float64
	tr.Visit(func(q Quad[int, int]) Visit {
		got = append(got, extentOf(q.Extent()))
		return Continue
	})

	want := [][4]float64{
		{0, 0, 2, 2},
		{0, 0, 1, 1},
		{1, 0, 2, 1},
		{0, 1, 1, 2},
		{1, 1, 2, 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("visit order = %v, want %v", got, want)
	}
}

func TestVisitSkipPrunesSubtree(t *testing.T) {
	tr := New[int, int]()
	tr.Insert(0, 0, 0)
	tr.Insert(1, 0, 1)
	tr.Insert(0, 1, 2)
	tr.Insert(1, 1, 3)

	var got [][4]float64
	tr.Visit(func(q Quad[int, int]) Visit {
		got = append(got, extentOf(q.Extent()))
		if q.IsInternal() {
			return Skip
		}
		return Continue
	})

	if len(got) != 1 {
		t.Fatalf("expected traversal to stop after the root, got %v", got)
	}
}

func TestVisitAfterPostOrderOnTwoByTwoGrid(t *testing.T) {
	tr := New[int, int]()
	tr.Insert(0, 0, 0)
	tr.Insert(1, 0, 1)
	tr.Insert(0, 1, 2)
	tr.Insert(1, 1, 3)

	var got [][4]float64
	tr.VisitAfter(func(q Quad[int, int]) {
		got = append(got, extentOf(q.Extent()))
	})

	want := [][4]float64{
		{0, 0, 1, 1},
		{1, 0, 2, 1},
		{0, 1, 1, 2},
		{1, 1, 2, 2},
		{0, 0, 2, 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("visit-after order = %v, want %v", got, want)
	}
}

func TestVisitAfterAccumulatesCounts(t *testing.T) {
	tr := New[int, int]()
	for i, pt := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.9, 0.9}} {
		tr.Insert(pt[0], pt[1], i)
	}

	tr.VisitAfter(func(q Quad[int, int]) {
		if q.IsLeaf() {
			_, _, _, others := q.Leaf()
			*q.Value() = 1 + len(others)
			return
		}
		sum := 0
		for _, c := range q.Children() {
			if c != nil {
				sum += *c
			}
		}
		*q.Value() = sum
	})

	if *tr.store.get(tr.root.handle) != 5 {
		t.Fatalf("root count = %d, want 5", *tr.store.get(tr.root.handle))
	}
}

func TestInsertCoincidentPointsOverflow(t *testing.T) {
	tr := New[int, int]()
	tr.Insert(1, 1, 10)
	tr.Insert(1, 1, 20)
	tr.Insert(1, 1, 30)

	if tr.root.kind != leafKind {
		t.Fatalf("expected a single leaf for coincident points")
	}
	_, _, data, others := Quad[int, int]{store: &tr.store, node: tr.root, extent: Extent{}}.Leaf()
	vals := append([]int{data}, others...)
	if !reflect.DeepEqual(vals, []int{10, 20, 30}) {
		t.Fatalf("overflow list = %v, want [10 20 30]", vals)
	}
}
