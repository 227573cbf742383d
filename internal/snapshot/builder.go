package snapshot

import (
	"fmt"
	"strings"
	"time"

	"github.com/nyxhub/content-sync/internal/domain"
)

// Document is the full rebuilt representation of every published item of one
// content type at a point in time. It is regenerated from scratch on each
// sync attempt and never diffed against a previous version, which is what
// makes at-least-once job redelivery safe.
type Document struct {
	ContentType string
	Body        string
	Metadata    map[string]any
}

// Builder turns an ordered item set into one consolidated markdown document.
type Builder struct {
	now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// Build assembles the document: a header with the item count, an index with
// per-item anchors, then one section per item in the order given (callers
// pass items ascending by creation time). extra carries event-specific
// metadata tags such as triggered_by or deleted_node_id.
func (b *Builder) Build(contentType string, items []*domain.ContentItem, extra map[string]any) Document {
	now := b.now().UTC()

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", typeLabel(contentType))
	fmt.Fprintf(&md, "**Total de itens:** %d\n", len(items))
	fmt.Fprintf(&md, "**Atualizado em:** %s\n\n---\n\n", now.Format("2006-01-02 15:04:05"))

	md.WriteString("## Índice\n\n")
	for _, item := range items {
		fmt.Fprintf(&md, "- [%s](#node-%d)\n", item.Title, item.ID)
	}
	md.WriteString("\n---\n")

	ids := make([]int64, 0, len(items))
	for i, item := range items {
		if i > 0 {
			md.WriteString("\n---\n")
		}
		writeItem(&md, item)
		ids = append(ids, item.ID)
	}

	metadata := map[string]any{
		"content_type": contentType,
		"total_nodes":  len(items),
		"node_ids":     ids,
		"last_updated": now.Unix(),
	}
	for k, v := range extra {
		metadata[k] = v
	}

	return Document{
		ContentType: contentType,
		Body:        md.String(),
		Metadata:    metadata,
	}
}

func writeItem(md *strings.Builder, item *domain.ContentItem) {
	fmt.Fprintf(md, "\n<a id=\"node-%d\"></a>\n\n", item.ID)
	fmt.Fprintf(md, "## %s\n\n", item.Title)
	fmt.Fprintf(md, "**ID:** %d\n", item.ID)
	fmt.Fprintf(md, "**Criado:** %s\n", item.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	if !item.UpdatedAt.Equal(item.CreatedAt) {
		fmt.Fprintf(md, "**Atualizado:** %s\n", item.UpdatedAt.UTC().Format("2006-01-02 15:04:05"))
	}
	if item.Body != "" {
		fmt.Fprintf(md, "\n%s\n", item.Body)
	}
}

func typeLabel(contentType string) string {
	if contentType == "" {
		return contentType
	}
	return strings.ToUpper(contentType[:1]) + contentType[1:]
}
