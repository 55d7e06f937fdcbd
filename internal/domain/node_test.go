package domain

import "testing"

func TestSortChildren(t *testing.T) {
	node := &Node{IsDir: true, Children: []*Node{
		{Name: "b", Size: 10},
		{Name: "a", Size: 30},
		{Name: "c", Size: 20},
	}}
	node.SortChildren()
	want := []string{"a", "c", "b"}
	for i, child := range node.Children {
		if child.Name != want[i] {
			t.Fatalf("order %v, want %v", node.Children, want)
		}
	}
}

func TestAttachParents(t *testing.T) {
	grand := &Node{Name: "grand"}
	child := &Node{Name: "child", Children: []*Node{grand}}
	root := &Node{Name: "root", Children: []*Node{child}}
	root.AttachParents()
	if child.Parent != root || grand.Parent != child {
		t.Error("parents not attached to the containing nodes")
	}
	if grand.Root() != root {
		t.Error("Root should follow parents to the top")
	}
	if grand.Depth() != 2 || root.Depth() != 0 {
		t.Errorf("depths = %d/%d, want 2/0", grand.Depth(), root.Depth())
	}
}

func TestAdoptChildren(t *testing.T) {
	node := &Node{Name: "sub", IsDir: true, Size: 100, FileCount: 2}
	fresh := &Node{Name: "sub", IsDir: true, Size: 600, FileCount: 3, DirCount: 1, FullyLoaded: true, Children: []*Node{
		{Name: "a", Size: 500},
		{Name: "b", Size: 100},
	}}
	node.AdoptChildren(fresh)
	if node.Size != 100 {
		t.Errorf("size = %d; adoption must keep the original measurement", node.Size)
	}
	if node.FileCount != 3 || node.DirCount != 1 || !node.FullyLoaded {
		t.Errorf("counts not taken from the fresh subtree: %+v", node)
	}
	for _, child := range node.Children {
		if child.Parent != node {
			t.Errorf("child %s not re-pointed at the adopting node", child.Name)
		}
	}
}

func TestNewScanResultMirrorsRoot(t *testing.T) {
	root := &Node{Name: "r", Size: 42, FileCount: 3, DirCount: 1}
	result := NewScanResult("/tmp/r", root)
	if result.TotalSize != 42 || result.TotalFiles != 3 || result.TotalDirs != 1 {
		t.Errorf("totals %+v do not mirror the root", result)
	}
	if result.ScanTime.IsZero() {
		t.Error("scan time not stamped")
	}
}
