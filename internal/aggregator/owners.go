package aggregator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/svitlogram/feedgate/internal/api"
	"github.com/svitlogram/feedgate/internal/model"
	"github.com/svitlogram/feedgate/internal/resolver"
)

// DefaultOwnerConcurrency bounds the owner-resolution fan-out so one
// pass cannot overwhelm the upstream API.
const DefaultOwnerConcurrency = 6

// resolveOwners joins every image with its resolved owner. Failed lookups
// degrade the single item to an unresolved marker and never abort the
// batch. Results are index-addressed, so server ordering is preserved and
// no goroutine writes outside its own slot.
func resolveOwners(ctx context.Context, res *resolver.Resolver, images []model.Image, concurrency int) []model.ImageView {
	if concurrency <= 0 {
		concurrency = DefaultOwnerConcurrency
	}

	views := make([]model.ImageView, len(images))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i := range images {
		img := images[i]
		views[i].Image = img

		if !img.HasOwner() {
			views[i].OwnerStatus = model.OwnerNone
			continue
		}

		view := &views[i]
		g.Go(func() error {
			owner, err := res.ByID(ctx, *img.UserID)
			if err != nil {
				view.OwnerStatus = model.OwnerUnresolved
				view.OwnerFailure = api.FailureKind(err)
				return nil
			}
			view.Owner = owner
			view.OwnerStatus = model.OwnerResolved
			return nil
		})
	}

	// Item failures are absorbed above, so Wait only synchronizes.
	g.Wait()

	return views
}
