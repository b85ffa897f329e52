package app

import (
	"context"
	"strings"
	"time"

	"atlas_travel/internal/domain"
	"atlas_travel/internal/shared"
)

// deleteConfirmWindow is how long a first delete click stays armed.
const deleteConfirmWindow = 3 * time.Second

// PackageForm is the admin CRUD form. The list fields arrive as
// newline-delimited textarea values and are split, trimmed and filtered
// into ordered lists on submit.
type PackageForm struct {
	Name        string  `validate:"required"`
	Destination string  `validate:"required"`
	Duration    int     `validate:"required,min=1"`
	Price       float64 `validate:"required,gt=0"`
	Description string
	Itinerary   string
	Inclusions  string
	Exclusions  string
	Images      string
	Thumbnail   string
	Category    string
	Featured    bool
	Active      bool
}

// PackagesAdmin is the admin package CRUD surface. Deletion uses a
// two-click confirm: the first click arms a bounded window ("Confirm?"),
// only a second click inside it deletes, and a late click re-arms. The
// window runs off an injected clock so it is deterministic under test.
type PackagesAdmin struct {
	api     domain.PackageAdminAPI
	catalog domain.CatalogAPI
	cache   domain.Cache
	clock   domain.Clock

	items []domain.Package

	armID     string
	armExpiry time.Time
}

func NewPackagesAdmin(api domain.PackageAdminAPI, catalog domain.CatalogAPI, cache domain.Cache, clock domain.Clock) *PackagesAdmin {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &PackagesAdmin{api: api, catalog: catalog, cache: cache, clock: clock}
}

func (a *PackagesAdmin) Load(ctx context.Context) error {
	items, err := a.catalog.ListPackages(ctx, domain.PackagesQuery{})
	if err != nil {
		return err
	}
	a.items = items
	return nil
}

func (a *PackagesAdmin) Items() []domain.Package { return a.items }

// parseLines turns a newline-delimited textarea value into trimmed,
// non-empty entries, order preserved.
func parseLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (a *PackagesAdmin) toInput(form PackageForm) (domain.PackageInput, map[string]string) {
	if errs := shared.ValidateStruct(form); len(errs) > 0 {
		return domain.PackageInput{}, errs
	}
	in := domain.PackageInput{
		Name:        strings.TrimSpace(form.Name),
		Destination: strings.TrimSpace(form.Destination),
		Duration:    form.Duration,
		Price:       form.Price,
		Description: form.Description,
		Itinerary:   parseLines(form.Itinerary),
		Inclusions:  parseLines(form.Inclusions),
		Exclusions:  parseLines(form.Exclusions),
		Images:      parseLines(form.Images),
		Featured:    form.Featured,
		Active:      form.Active,
	}
	if t := strings.TrimSpace(form.Thumbnail); t != "" {
		in.Thumbnail = &t
	}
	if c := strings.TrimSpace(form.Category); c != "" {
		in.Category = &c
	}
	return in, nil
}

func (a *PackagesAdmin) Create(ctx context.Context, form PackageForm) (domain.Package, error) {
	in, errs := a.toInput(form)
	if errs != nil {
		return domain.Package{}, &domain.ValidationError{Fields: errs}
	}
	p, err := a.api.CreatePackage(ctx, in)
	if err != nil {
		return domain.Package{}, err
	}
	invalidatePackageKeys(ctx, a.cache, p.ID)
	return p, a.Load(ctx)
}

func (a *PackagesAdmin) Update(ctx context.Context, id string, form PackageForm) (domain.Package, error) {
	in, errs := a.toInput(form)
	if errs != nil {
		return domain.Package{}, &domain.ValidationError{Fields: errs}
	}
	p, err := a.api.UpdatePackage(ctx, id, in)
	if err != nil {
		return domain.Package{}, err
	}
	invalidatePackageKeys(ctx, a.cache, id)
	return p, a.Load(ctx)
}

// SetActive and SetFeatured are the immediate toggles; no confirm step.

func (a *PackagesAdmin) SetActive(ctx context.Context, id string, on bool) (domain.Package, error) {
	return a.setFlags(ctx, id, domain.PackageFlags{Active: &on})
}

func (a *PackagesAdmin) SetFeatured(ctx context.Context, id string, on bool) (domain.Package, error) {
	return a.setFlags(ctx, id, domain.PackageFlags{Featured: &on})
}

func (a *PackagesAdmin) setFlags(ctx context.Context, id string, flags domain.PackageFlags) (domain.Package, error) {
	p, err := a.api.SetPackageFlags(ctx, id, flags)
	if err != nil {
		return domain.Package{}, err
	}
	for i := range a.items {
		if a.items[i].ID == id {
			a.items[i] = p
			break
		}
	}
	invalidatePackageKeys(ctx, a.cache, id)
	return p, nil
}

// RequestDelete drives the {Idle → Armed(expiresAt) → Idle} confirm
// machine. It reports whether the delete actually executed.
func (a *PackagesAdmin) RequestDelete(ctx context.Context, id string) (bool, error) {
	now := a.clock.Now()
	if a.armID == id && now.Before(a.armExpiry) {
		a.disarm()
		if err := a.api.DeletePackage(ctx, id); err != nil {
			return false, err
		}
		for i := range a.items {
			if a.items[i].ID == id {
				a.items = append(a.items[:i], a.items[i+1:]...)
				break
			}
		}
		invalidatePackageKeys(ctx, a.cache, id)
		return true, nil
	}
	// First click, a different package, or an expired window: (re)arm.
	a.armID = id
	a.armExpiry = now.Add(deleteConfirmWindow)
	return false, nil
}

// Armed reports whether the "Confirm?" state is showing for id.
func (a *PackagesAdmin) Armed(id string) bool {
	return a.armID == id && a.clock.Now().Before(a.armExpiry)
}

func (a *PackagesAdmin) CancelDelete() { a.disarm() }

func (a *PackagesAdmin) disarm() {
	a.armID = ""
	a.armExpiry = time.Time{}
}
