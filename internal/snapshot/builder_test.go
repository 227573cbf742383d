package snapshot_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nyxhub/content-sync/internal/domain"
	"github.com/nyxhub/content-sync/internal/snapshot"
)

func items(n int) []*domain.ContentItem {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]*domain.ContentItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &domain.ContentItem{
			ID:          int64(i + 1),
			ContentType: "article",
			Title:       "Post " + string(rune('A'+i)),
			Body:        "Body of the post.",
			Published:   true,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
			UpdatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestBuild_DocumentShape(t *testing.T) {
	doc := snapshot.NewBuilder().Build("article", items(3), nil)

	if doc.ContentType != "article" {
		t.Fatalf("unexpected content type %q", doc.ContentType)
	}
	if !strings.HasPrefix(doc.Body, "# Article\n") {
		t.Fatalf("document must open with the content type heading, got %q",
			doc.Body[:min(40, len(doc.Body))])
	}
	if !strings.Contains(doc.Body, "**Total de itens:** 3") {
		t.Fatal("missing item count header")
	}
	for _, anchor := range []string{`<a id="node-1">`, `<a id="node-2">`, `<a id="node-3">`} {
		if !strings.Contains(doc.Body, anchor) {
			t.Fatalf("missing anchor %s", anchor)
		}
	}
	// Index entries link to the anchors.
	if !strings.Contains(doc.Body, "- [Post A](#node-1)") {
		t.Fatal("missing index entry for first item")
	}
}

func TestBuild_ItemsAppearInGivenOrder(t *testing.T) {
	doc := snapshot.NewBuilder().Build("article", items(3), nil)

	first := strings.Index(doc.Body, `<a id="node-1">`)
	second := strings.Index(doc.Body, `<a id="node-2">`)
	third := strings.Index(doc.Body, `<a id="node-3">`)
	if !(first < second && second < third) {
		t.Fatalf("sections out of order: %d %d %d", first, second, third)
	}
}

func TestBuild_Metadata(t *testing.T) {
	doc := snapshot.NewBuilder().Build("article", items(2), map[string]any{
		"triggered_by": int64(9),
	})

	if doc.Metadata["content_type"] != "article" {
		t.Fatalf("unexpected content_type metadata: %v", doc.Metadata["content_type"])
	}
	if doc.Metadata["total_nodes"] != 2 {
		t.Fatalf("unexpected total_nodes: %v", doc.Metadata["total_nodes"])
	}
	if doc.Metadata["triggered_by"] != int64(9) {
		t.Fatalf("extra metadata not merged: %v", doc.Metadata["triggered_by"])
	}
	ids := doc.Metadata["node_ids"].([]int64)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected node_ids: %v", ids)
	}
	if _, ok := doc.Metadata["last_updated"]; !ok {
		t.Fatal("missing last_updated metadata")
	}
}

func TestBuild_EmptySetStillProducesHeader(t *testing.T) {
	doc := snapshot.NewBuilder().Build("article", nil, nil)
	if !strings.Contains(doc.Body, "**Total de itens:** 0") {
		t.Fatal("empty set must still render the header")
	}
	if doc.Metadata["total_nodes"] != 0 {
		t.Fatalf("unexpected total_nodes: %v", doc.Metadata["total_nodes"])
	}
}

func TestBuild_UpdatedLineOnlyWhenChanged(t *testing.T) {
	set := items(1)
	doc := snapshot.NewBuilder().Build("article", set, nil)
	if strings.Contains(doc.Body, "**Atualizado:**") {
		t.Fatal("unchanged item must not render an updated line")
	}

	set[0].UpdatedAt = set[0].CreatedAt.Add(time.Minute)
	doc = snapshot.NewBuilder().Build("article", set, nil)
	if !strings.Contains(doc.Body, "**Atualizado:**") {
		t.Fatal("changed item must render an updated line")
	}
}
