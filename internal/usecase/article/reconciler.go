package article

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"content-api/internal/domain/entity"
	"content-api/internal/observability/logging"
	"content-api/internal/observability/metrics"
	"content-api/internal/repository"
	"content-api/internal/usecase/category"
)

// Reconciler applies a category resolution plan to one article.
// Its methods must run inside the caller's transaction. Inserts it makes are
// tallied rather than published so that a rolled back attempt is never counted.
type Reconciler struct {
	Categories repository.CategoryRepository
	Assoc      repository.AssociationRepository

	tally Tally
}

// Tally counts by-name category inserts and lost insert races.
type Tally struct {
	Created int
	Races   int
}

// Publish adds the tally to the category counters. Call it once the
// surrounding transaction has committed.
func (t Tally) Publish() {
	for range t.Created {
		metrics.RecordCategoryCreated("by_name")
	}
	for range t.Races {
		metrics.RecordCategoryNameRace()
	}
}

// Tally returns what the reconciler did since the last Reset.
func (r *Reconciler) Tally() Tally { return r.tally }

// Reset clears the tally. A retried transaction calls it before each attempt.
func (r *Reconciler) Reset() { r.tally = Tally{} }

// Diff is the association change applied by Replace.
type Diff struct {
	Added   []string
	Removed []string
}

// Attach links every planned category to a newly created article.
func (r *Reconciler) Attach(ctx context.Context, articleID string, plan category.Plan) error {
	if plan.Empty() {
		return nil
	}
	ids, err := r.Materialize(ctx, plan)
	if err != nil {
		return err
	}
	if _, err := r.Assoc.Link(ctx, articleID, ids); err != nil {
		return fmt.Errorf("link categories: %w", err)
	}
	return nil
}

// Replace makes the article's category set exactly the planned set.
// An empty plan detaches every category.
func (r *Reconciler) Replace(ctx context.Context, articleID string, plan category.Plan) (Diff, error) {
	desired, err := r.Materialize(ctx, plan)
	if err != nil {
		return Diff{}, err
	}
	current, err := r.Assoc.CategoryIDs(ctx, articleID)
	if err != nil {
		return Diff{}, fmt.Errorf("current categories: %w", err)
	}

	d := diffIDs(current, desired)
	if len(d.Removed) > 0 {
		if _, err := r.Assoc.Unlink(ctx, articleID, d.Removed); err != nil {
			return Diff{}, fmt.Errorf("unlink categories: %w", err)
		}
	}
	if len(d.Added) > 0 {
		if _, err := r.Assoc.Link(ctx, articleID, d.Added); err != nil {
			return Diff{}, fmt.Errorf("link categories: %w", err)
		}
	}
	return d, nil
}

// Materialize turns the plan into category IDs, creating named categories
// that do not exist yet. A name may resolve to an ID that is also listed
// explicitly; the result holds it once.
func (r *Reconciler) Materialize(ctx context.Context, plan category.Plan) ([]string, error) {
	ids := make([]string, 0, len(plan.Ops))
	for _, op := range plan.Ops {
		switch op.Kind {
		case category.OpLinkByID:
			ids = append(ids, op.ID)
		case category.OpLinkByNameOrCreate:
			id, err := r.LinkByNameOrCreate(ctx, op.Name)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return entity.UniqueIDs(ids), nil
}

// LinkByNameOrCreate returns the ID of the category named name, inserting it
// when absent. Losing the insert to a concurrent writer triggers one re-lookup;
// a second miss is a Conflict.
func (r *Reconciler) LinkByNameOrCreate(ctx context.Context, name string) (string, error) {
	c, err := r.Categories.FindByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", opLinkByName, err)
	}
	if c != nil {
		return c.ID, nil
	}

	id, created, err := r.Categories.InsertIfAbsent(ctx, name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", opLinkByName, err)
	}
	if created {
		r.tally.Created++
		return id, nil
	}

	r.tally.Races++
	logging.FromContext(ctx).Debug("category name taken concurrently, looking up again",
		slog.String("name", name))

	c, err = r.Categories.FindByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", opLinkByName, err)
	}
	if c == nil {
		return "", entity.Conflict(opLinkByName, "category",
			fmt.Sprintf("category %q was claimed concurrently and could not be resolved", name), nil)
	}
	return c.ID, nil
}

// diffIDs returns desired − current as Added and current − desired as Removed, both sorted.
func diffIDs(current, desired []string) Diff {
	cur := make(map[string]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}
	want := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}

	var d Diff
	for id := range want {
		if _, ok := cur[id]; !ok {
			d.Added = append(d.Added, id)
		}
	}
	for id := range cur {
		if _, ok := want[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	return d
}
