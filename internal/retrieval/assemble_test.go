package retrieval

import "testing"

func TestAssembleContextDedupBySection(t *testing.T) {
	candidates := []Candidate{
		{ChunkID: "a", DocTitle: "Session 1", Heading: "The Ambush"},
		{ChunkID: "b", DocTitle: "Session 1", Heading: "The Ambush"}, // overlapping window, dropped
		{ChunkID: "c", DocTitle: "Session 1", Heading: "Camp"},
		{ChunkID: "d", DocTitle: "Session 2", Heading: "The Ambush"}, // same heading, different doc
	}

	selected := AssembleContext(candidates, 8)

	if len(selected) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(selected))
	}
	if selected[0].ChunkID != "a" || selected[1].ChunkID != "c" || selected[2].ChunkID != "d" {
		t.Errorf("unexpected selection order: %s %s %s",
			selected[0].ChunkID, selected[1].ChunkID, selected[2].ChunkID)
	}
}

func TestAssembleContextCap(t *testing.T) {
	var candidates []Candidate
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		candidates = append(candidates, Candidate{ChunkID: id, DocTitle: id, Heading: "h"})
	}

	selected := AssembleContext(candidates, 2)
	if len(selected) != 2 {
		t.Fatalf("expected cap of 2, got %d", len(selected))
	}
	if selected[0].ChunkID != "a" || selected[1].ChunkID != "b" {
		t.Errorf("cap should keep the highest-ranked blocks, got %s %s",
			selected[0].ChunkID, selected[1].ChunkID)
	}
}

func TestAssembleContextEmptyHeadingsDistinctByDoc(t *testing.T) {
	candidates := []Candidate{
		{ChunkID: "a", DocTitle: "Kaela", Heading: ""},
		{ChunkID: "b", DocTitle: "Duskhaven", Heading: ""},
		{ChunkID: "c", DocTitle: "Kaela", Heading: ""},
	}

	selected := AssembleContext(candidates, 8)
	if len(selected) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(selected))
	}
}

func TestAssembleContextEmptyInput(t *testing.T) {
	if got := AssembleContext(nil, 8); len(got) != 0 {
		t.Fatalf("expected no blocks, got %d", len(got))
	}
}
