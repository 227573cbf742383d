package sync

import (
	"context"

	"go.uber.org/zap"

	"github.com/nyxhub/content-sync/internal/config"
	"github.com/nyxhub/content-sync/internal/domain"
	"github.com/nyxhub/content-sync/internal/hub"
	"github.com/nyxhub/content-sync/internal/repository"
	"github.com/nyxhub/content-sync/internal/snapshot"
)

// Orchestrator decides whether and what to rebuild for a change to one item.
//
// The strategy is always a full rebuild: every sync attempt regenerates the
// complete document for the item's content type from the current published
// set and overwrites the hub-side copy wholesale. There is no diffing or
// versioning, so redelivering the same job simply produces the same document.
type Orchestrator struct {
	hub      hub.Client
	content  repository.ContentRepository
	builder  *snapshot.Builder
	files    *snapshot.FileStore
	settings func() (*config.Settings, error)
	env      func() config.Env
	logger   *zap.Logger
}

func NewOrchestrator(
	hubClient hub.Client,
	content repository.ContentRepository,
	builder *snapshot.Builder,
	files *snapshot.FileStore,
	settings func() (*config.Settings, error),
	env func() config.Env,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		hub:      hubClient,
		content:  content,
		builder:  builder,
		files:    files,
		settings: settings,
		env:      env,
		logger:   logger,
	}
}

// SyncContent rebuilds and uploads the consolidated document for the item's
// content type. The item itself only selects the type and tags the metadata;
// the document always covers the full current published set.
func (o *Orchestrator) SyncContent(ctx context.Context, item *domain.ContentItem) (domain.Result, error) {
	cfg, result, err := o.gate(ctx, item.ContentType)
	if err != nil || result != nil {
		return deref(result), err
	}

	items, err := o.content.ListPublished(ctx, item.ContentType, 0)
	if err != nil {
		return domain.Result{Outcome: domain.OutcomeFailed}, err
	}
	if len(items) == 0 {
		// An existing remote document is left in place here rather than
		// deleted: an empty result may be a transient load problem, and
		// a stale document is recoverable while a deleted one is not.
		o.logger.Warn("no published items for content type, skipping sync",
			zap.String("content_type", item.ContentType))
		return domain.Result{Outcome: domain.OutcomeSkipped, Reason: domain.ReasonNoPublished}, nil
	}

	return o.performSync(ctx, item.ContentType, items, cfg, map[string]any{
		"triggered_by": item.ID,
	})
}

// DeleteContent reconciles the item's content type after the item was
// deleted or unpublished. When other published items remain the document is
// rebuilt without the item; when none remain the remote document is removed
// entirely.
func (o *Orchestrator) DeleteContent(ctx context.Context, item *domain.ContentItem) (domain.Result, error) {
	cfg, result, err := o.gate(ctx, item.ContentType)
	if err != nil || result != nil {
		return deref(result), err
	}

	items, err := o.content.ListPublished(ctx, item.ContentType, item.ID)
	if err != nil {
		return domain.Result{Outcome: domain.OutcomeFailed}, err
	}

	if len(items) == 0 {
		o.logger.Info("last published item of content type removed, deleting remote document",
			zap.String("content_type", item.ContentType))
		ok, err := o.hub.DeleteContent(ctx, cfg.GroupKey, cfg.StoreName, domain.DocumentID(item.ContentType))
		if err != nil {
			return domain.Result{Outcome: domain.OutcomeFailed, Reason: domain.ReasonDeleteFailed}, err
		}
		if !ok {
			return domain.Result{Outcome: domain.OutcomeFailed, Reason: domain.ReasonDeleteFailed}, nil
		}
		return domain.Result{Outcome: domain.OutcomeDeleted}, nil
	}

	return o.performSync(ctx, item.ContentType, items, cfg, map[string]any{
		"action":          "delete_resync",
		"deleted_node_id": item.ID,
	})
}

// gate runs the shared pre-flight checks: enabled mapping, complete resolved
// configuration, and remote store validation. A non-nil Result means the
// caller must stop and return it.
func (o *Orchestrator) gate(ctx context.Context, contentType string) (domain.SyncConfig, *domain.Result, error) {
	settings, err := o.settings()
	if err != nil {
		return domain.SyncConfig{}, nil, err
	}

	if !settings.IsMapped(contentType) {
		return domain.SyncConfig{}, &domain.Result{
			Outcome: domain.OutcomeSkipped, Reason: domain.ReasonNotMapped,
		}, nil
	}

	env := o.env()
	cfg := domain.SyncConfig{
		GroupKey:  config.ResolveGroupKey(env, settings),
		StoreName: settings.StoreFor(contentType),
	}
	if cfg.GroupKey == "" || cfg.StoreName == "" {
		o.logger.Error("incomplete sync configuration",
			zap.String("content_type", contentType))
		return domain.SyncConfig{}, &domain.Result{
			Outcome: domain.OutcomeSkipped, Reason: domain.ReasonIncompleteCfg,
		}, nil
	}

	ok, err := o.hub.ValidateStore(ctx, cfg.GroupKey, cfg.StoreName)
	if err != nil {
		return domain.SyncConfig{}, nil, err
	}
	if !ok {
		o.logger.Error("store rejected for group key",
			zap.String("store", cfg.StoreName))
		return domain.SyncConfig{}, &domain.Result{
			Outcome: domain.OutcomeSkipped, Reason: domain.ReasonStoreRejected,
		}, nil
	}

	return cfg, nil, nil
}

func (o *Orchestrator) performSync(ctx context.Context, contentType string, items []*domain.ContentItem, cfg domain.SyncConfig, extra map[string]any) (domain.Result, error) {
	doc := o.builder.Build(contentType, items, extra)

	if path, err := o.files.Save(doc); err != nil {
		// Audit copy only; the upload proceeds without it.
		o.logger.Error("snapshot file write failed", zap.Error(err))
	} else {
		o.logger.Info("snapshot file written", zap.String("path", path))
	}

	o.logger.Info("syncing content type",
		zap.String("content_type", contentType),
		zap.Int("items", len(items)))

	ok, err := o.hub.UploadContent(ctx, cfg.GroupKey, cfg.StoreName,
		domain.DocumentID(contentType), doc.Body, doc.Metadata)
	if err != nil {
		return domain.Result{Outcome: domain.OutcomeFailed, Reason: domain.ReasonUploadFailed}, err
	}
	if !ok {
		return domain.Result{
			Outcome:   domain.OutcomeFailed,
			Reason:    domain.ReasonUploadFailed,
			ItemCount: len(items),
		}, nil
	}
	return domain.Result{Outcome: domain.OutcomeSynced, ItemCount: len(items)}, nil
}

func deref(r *domain.Result) domain.Result {
	if r == nil {
		return domain.Result{}
	}
	return *r
}
