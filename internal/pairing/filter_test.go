package pairing_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"immichstack/internal/pairing"
)

func asset(id, path string) pairing.Asset {
	return pairing.Asset{ID: id, OriginalPath: path}
}

func TestFilterDupePairsEndToEnd(t *testing.T) {
	groups := []pairing.Group{
		{Assets: []pairing.Asset{asset("A", "a.jpg"), asset("B", "a.raw")}},
		{Assets: []pairing.Asset{asset("C", "b.jpg")}},
		{Assets: []pairing.Asset{asset("D", "c.jpg"), asset("E", "c.jpg")}},
	}

	pairs := pairing.FilterDupePairs(groups)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d: %+v", len(pairs), pairs)
	}
	want := pairing.Pair{
		IDs:   [2]string{"A", "B"},
		Paths: [2]string{"a.jpg", "a.raw"},
		Exts:  [2]string{".jpg", ".raw"},
	}
	if !reflect.DeepEqual(pairs[0], want) {
		t.Fatalf("unexpected pair: got %+v want %+v", pairs[0], want)
	}
}

func TestFilterDupePairsReordersToJPEG(t *testing.T) {
	groups := []pairing.Group{
		{Key: "dup-1", Assets: []pairing.Asset{asset("raw", "/lib/IMG_0001.CR2"), asset("jpg", "/lib/IMG_0001.JPG")}},
	}
	pairs := pairing.FilterDupePairs(groups)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	got := pairs[0]
	if got.Primary() != "jpg" {
		t.Fatalf("expected jpg primary, got %q", got.Primary())
	}
	if got.Paths != [2]string{"/lib/IMG_0001.JPG", "/lib/IMG_0001.CR2"} {
		t.Fatalf("paths not reordered with ids: %v", got.Paths)
	}
	if got.Exts != [2]string{".jpg", ".cr2"} {
		t.Fatalf("exts not reordered with ids: %v", got.Exts)
	}
	if got.Key != "dup-1" {
		t.Fatalf("expected key to carry over, got %q", got.Key)
	}
	if req := got.StackRequest(); !reflect.DeepEqual(req, []string{"jpg", "raw"}) {
		t.Fatalf("unexpected stack request: %v", req)
	}
}

func TestFilterDupePairsSkipsWrongSizedGroups(t *testing.T) {
	groups := []pairing.Group{
		{},
		{Assets: []pairing.Asset{asset("1", "x.jpg")}},
		{Assets: []pairing.Asset{asset("2", "y.jpg"), asset("3", "y.dng"), asset("4", "y.tif")}},
		{Assets: []pairing.Asset{asset("5", "z.dng"), asset("6", "z.jpg")}},
	}
	pairs := pairing.FilterDupePairs(groups)
	if len(pairs) != 1 || pairs[0].IDs != [2]string{"6", "5"} {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
}

func TestFilterDupePairsPreservesGroupOrder(t *testing.T) {
	groups := []pairing.Group{
		{Assets: []pairing.Asset{asset("b1", "b.jpg"), asset("b2", "b.nef")}},
		{Assets: []pairing.Asset{asset("x1", "x.jpg"), asset("x2", "y.nef")}},
		{Assets: []pairing.Asset{asset("a1", "a.jpg"), asset("a2", "a.nef")}},
	}
	pairs := pairing.FilterDupePairs(groups)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Primary() != "b1" || pairs[1].Primary() != "a1" {
		t.Fatalf("expected source order b then a, got %q then %q", pairs[0].Primary(), pairs[1].Primary())
	}
}

func TestFilterDupePairsNameFallback(t *testing.T) {
	groups := []pairing.Group{
		{Assets: []pairing.Asset{
			{ID: "1", OriginalFileName: "IMG_9.HEIC"},
			{ID: "2", Filename: "IMG_9.jpg"},
		}},
		{Assets: []pairing.Asset{
			{ID: "3"},
			{ID: "4", Filename: "IMG_10.jpg"},
		}},
	}
	pairs := pairing.FilterDupePairs(groups)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %+v", pairs)
	}
	if pairs[0].IDs != [2]string{"2", "1"} {
		t.Fatalf("expected jpg primary via filename fallback, got %v", pairs[0].IDs)
	}
}

func TestAssetNamePrefersOriginalPath(t *testing.T) {
	a := pairing.Asset{OriginalPath: "/p/x.jpg", OriginalFileName: "y.jpg", Filename: "z.jpg"}
	if a.Name() != "/p/x.jpg" {
		t.Fatalf("unexpected name %q", a.Name())
	}
	a.OriginalPath = ""
	if a.Name() != "y.jpg" {
		t.Fatalf("unexpected name %q", a.Name())
	}
	a.OriginalFileName = ""
	if a.Name() != "z.jpg" {
		t.Fatalf("unexpected name %q", a.Name())
	}
	a.Filename = ""
	if a.Name() != "" {
		t.Fatalf("expected empty name, got %q", a.Name())
	}
}

func TestEvaluateGroupReasons(t *testing.T) {
	cases := []struct {
		group pairing.Group
		want  pairing.Reason
	}{
		{group: pairing.Group{Assets: []pairing.Asset{asset("1", "a.jpg")}}, want: pairing.ReasonNotPair},
		{group: pairing.Group{Assets: []pairing.Asset{asset("1", ""), asset("2", "a.jpg")}}, want: pairing.ReasonEmptyBasename},
		{group: pairing.Group{Assets: []pairing.Asset{asset("1", "a.jpg"), asset("2", "b.dng")}}, want: pairing.ReasonBasenameMismatch},
		{group: pairing.Group{Assets: []pairing.Asset{asset("1", "a.jpg"), asset("2", "A.JPG")}}, want: pairing.ReasonBasenameMismatch},
		{group: pairing.Group{Assets: []pairing.Asset{asset("1", "a.jpg"), asset("2", "dir/a.JPG")}}, want: pairing.ReasonSameExtension},
		{group: pairing.Group{Assets: []pairing.Asset{asset("1", "a.jpg"), asset("2", "a.dng")}}, want: pairing.ReasonMatched},
	}
	for i, tc := range cases {
		if _, got := pairing.EvaluateGroup(tc.group); got != tc.want {
			t.Fatalf("case %d: got %q want %q", i, got, tc.want)
		}
	}
}

func TestFilterDupePairsConcurrentMatchesSequential(t *testing.T) {
	groups := make([]pairing.Group, 0, 200)
	for i := 0; i < 200; i++ {
		stem := fmt.Sprintf("IMG_%04d", i)
		switch i % 4 {
		case 0:
			groups = append(groups, pairing.Group{Assets: []pairing.Asset{asset(stem+"-r", stem+".dng"), asset(stem+"-j", stem+".jpg")}})
		case 1:
			groups = append(groups, pairing.Group{Assets: []pairing.Asset{asset(stem+"-a", stem+".jpg"), asset(stem+"-b", stem+".jpg")}})
		case 2:
			groups = append(groups, pairing.Group{Assets: []pairing.Asset{asset(stem, stem+".jpg")}})
		default:
			groups = append(groups, pairing.Group{Assets: []pairing.Asset{asset(stem+"-t", stem+"-edit.tif"), asset(stem+"-n", stem+".nef")}})
		}
	}

	want := pairing.FilterDupePairs(groups)
	got, err := pairing.FilterDupePairsConcurrent(context.Background(), groups, 8)
	if err != nil {
		t.Fatalf("concurrent filter: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("concurrent output differs from sequential output")
	}
	if len(want) != 100 {
		t.Fatalf("expected 100 pairs, got %d", len(want))
	}
}

func TestFilterDupePairsConcurrentHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	groups := []pairing.Group{{Assets: []pairing.Asset{asset("1", "a.jpg"), asset("2", "a.dng")}}}
	if _, err := pairing.FilterDupePairsConcurrent(ctx, groups, 4); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestEvaluateGroupsKeepsOrderAndReasons(t *testing.T) {
	groups := []pairing.Group{
		{Key: "g0", Assets: []pairing.Asset{asset("1", "a.jpg"), asset("2", "a.jpg")}},
		{Key: "g1", Assets: []pairing.Asset{asset("3", "b.cr2"), asset("4", "b.jpeg")}},
		{Key: "g2", Assets: []pairing.Asset{asset("5", "c.jpg")}},
		{Key: "g3", Assets: []pairing.Asset{asset("6", "d.jpg"), asset("7", "e.dng")}},
	}
	want := []pairing.Reason{
		pairing.ReasonSameExtension,
		pairing.ReasonMatched,
		pairing.ReasonNotPair,
		pairing.ReasonBasenameMismatch,
	}
	for _, workers := range []int{1, 3} {
		decisions, err := pairing.EvaluateGroups(context.Background(), groups, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(decisions) != len(groups) {
			t.Fatalf("workers=%d: expected %d decisions, got %d", workers, len(groups), len(decisions))
		}
		for i, d := range decisions {
			if d.Group.Key != groups[i].Key || d.Reason != want[i] {
				t.Fatalf("workers=%d decision %d: got %s/%s", workers, i, d.Group.Key, d.Reason)
			}
		}
		if !decisions[1].Matched() || decisions[1].Pair.IDs != [2]string{"4", "3"} {
			t.Fatalf("workers=%d: unexpected pair %+v", workers, decisions[1].Pair)
		}
	}
}

func TestAdjacentGroups(t *testing.T) {
	assets := []pairing.Asset{
		asset("3", "/album/c.jpg"),
		asset("1", "/album/a.jpg"),
		asset("2", "/album/a.cr2"),
		asset("4", "/album/c.dng"),
	}
	groups := pairing.AdjacentGroups("album", assets)
	if len(groups) != len(assets)-1 {
		t.Fatalf("expected %d groups, got %d", len(assets)-1, len(groups))
	}
	var order []string
	for _, g := range groups {
		if len(g.Assets) != 2 {
			t.Fatalf("expected two assets per group, got %d", len(g.Assets))
		}
		order = append(order, g.Assets[0].ID+g.Assets[1].ID)
	}
	if !reflect.DeepEqual(order, []string{"21", "14", "43"}) {
		t.Fatalf("unexpected adjacency order: %v", order)
	}
	if groups[0].Key != "album[0]" {
		t.Fatalf("unexpected key %q", groups[0].Key)
	}
	if assets[0].ID != "3" {
		t.Fatal("input slice must not be reordered")
	}

	pairs := pairing.FilterDupePairs(groups)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs from album, got %+v", pairs)
	}
	if pairs[0].IDs != [2]string{"1", "2"} || pairs[1].IDs != [2]string{"3", "4"} {
		t.Fatalf("unexpected album pairs: %+v", pairs)
	}
}

func TestAdjacentGroupsTooSmall(t *testing.T) {
	if groups := pairing.AdjacentGroups("a", nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
	if groups := pairing.AdjacentGroups("a", []pairing.Asset{asset("1", "x.jpg")}); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}
