package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"atlas_travel/internal/domain"
)

// MaxUploadSize is the client-side upload ceiling.
const MaxUploadSize = 5 << 20 // 5 MiB

const bulkDeleteWorkers = 8

var allowedUploadTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// GalleryAdmin is the gallery moderation grid: category-filtered list,
// validated upload, metadata edit, single and bulk delete. Selection is
// purely client-side and resets on every list refresh.
type GalleryAdmin struct {
	api      domain.GalleryAPI
	category *string
	items    []domain.GalleryImage
	selected map[string]struct{}
}

func NewGalleryAdmin(api domain.GalleryAPI) *GalleryAdmin {
	return &GalleryAdmin{api: api, selected: map[string]struct{}{}}
}

func (a *GalleryAdmin) Load(ctx context.Context) error {
	items, err := a.api.ListImages(ctx, a.category)
	if err != nil {
		return err
	}
	a.items = items
	a.selected = map[string]struct{}{}
	return nil
}

func (a *GalleryAdmin) SetCategory(ctx context.Context, category *string) error {
	a.category = category
	return a.Load(ctx)
}

func (a *GalleryAdmin) Items() []domain.GalleryImage { return a.items }

func (a *GalleryAdmin) Select(id string)   { a.selected[id] = struct{}{} }
func (a *GalleryAdmin) Deselect(id string) { delete(a.selected, id) }
func (a *GalleryAdmin) ClearSelection()    { a.selected = map[string]struct{}{} }

func (a *GalleryAdmin) Selected() []string {
	ids := make([]string, 0, len(a.selected))
	for id := range a.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func validateUpload(up domain.GalleryUpload) map[string]string {
	errs := map[string]string{}
	if _, ok := allowedUploadTypes[up.ContentType]; !ok {
		errs["image"] = "Only JPEG, PNG and WebP images are allowed"
	}
	if up.Size > MaxUploadSize {
		errs["image"] = "Image must be 5 MB or smaller"
	}
	if strings.TrimSpace(up.Meta.Category) == "" {
		errs["category"] = "This field is required"
	}
	return errs
}

// Upload validates type, size and required metadata client-side; a failed
// check returns before any network I/O. On success the list is refreshed.
func (a *GalleryAdmin) Upload(ctx context.Context, up domain.GalleryUpload) (domain.GalleryImage, error) {
	if errs := validateUpload(up); len(errs) > 0 {
		return domain.GalleryImage{}, &domain.ValidationError{Fields: errs}
	}
	img, err := a.api.UploadImage(ctx, up)
	if err != nil {
		return domain.GalleryImage{}, err
	}
	return img, a.Load(ctx)
}

// UpdateMeta is the metadata-only edit; same required-field validation as
// upload minus the file.
func (a *GalleryAdmin) UpdateMeta(ctx context.Context, id string, meta domain.GalleryMeta) (domain.GalleryImage, error) {
	if strings.TrimSpace(meta.Category) == "" {
		return domain.GalleryImage{}, &domain.ValidationError{
			Fields: map[string]string{"category": "This field is required"},
		}
	}
	img, err := a.api.UpdateImage(ctx, id, meta)
	if err != nil {
		return domain.GalleryImage{}, err
	}
	return img, a.Load(ctx)
}

// Delete removes one image. The blocking confirmation prompt is the
// caller's concern.
func (a *GalleryAdmin) Delete(ctx context.Context, id string) error {
	if err := a.api.DeleteImage(ctx, id); err != nil {
		return err
	}
	return a.Load(ctx)
}

// BulkDelete fires one delete per selected id concurrently and collects a
// per-item outcome for each, so partial failure is visible to the caller
// instead of being flattened into "some failed". The list is refreshed
// afterwards regardless, to reconcile with actual server state.
func (a *GalleryAdmin) BulkDelete(ctx context.Context) ([]domain.BulkResult, error) {
	ids := a.Selected()
	if len(ids) == 0 {
		return nil, nil
	}

	sem := semaphore.NewWeighted(bulkDeleteWorkers)
	results := make([]domain.BulkResult, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = domain.BulkResult{ID: id, Err: err}
			continue
		}
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = domain.BulkResult{ID: id, Err: a.api.DeleteImage(ctx, id)}
		}(i, id)
	}
	wg.Wait()

	loadErr := a.Load(ctx)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("gallery: %d of %d deletions failed", failed, len(ids))
	}
	return results, loadErr
}
