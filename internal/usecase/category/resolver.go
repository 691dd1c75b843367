// Package category provides use cases for managing categories and for
// resolving the category references supplied with an article write.
package category

import (
	"context"
	"fmt"
	"strings"

	"content-api/internal/domain/entity"
	"content-api/internal/repository"
)

// OpKind selects how a planned operation obtains its category ID.
type OpKind int

const (
	// OpLinkByID links a category already known to exist.
	OpLinkByID OpKind = iota + 1
	// OpLinkByNameOrCreate links the category with Name, creating it first when absent.
	OpLinkByNameOrCreate
)

// Op is one entry of a resolution plan.
type Op struct {
	Kind OpKind
	ID   string // set for OpLinkByID
	Name string // set for OpLinkByNameOrCreate
}

// LinkByID returns an operation linking an existing category.
func LinkByID(id string) Op { return Op{Kind: OpLinkByID, ID: id} }

// LinkByNameOrCreate returns an operation resolved by name at write time.
func LinkByNameOrCreate(name string) Op { return Op{Kind: OpLinkByNameOrCreate, Name: name} }

// Plan is the resolved set of category operations for one article write.
type Plan struct {
	Ops []Op
}

// Empty reports whether the plan links no category at all.
func (p Plan) Empty() bool { return len(p.Ops) == 0 }

// IDs returns the IDs of the OpLinkByID entries.
func (p Plan) IDs() []string {
	var ids []string
	for _, op := range p.Ops {
		if op.Kind == OpLinkByID {
			ids = append(ids, op.ID)
		}
	}
	return ids
}

// Names returns the names of the OpLinkByNameOrCreate entries.
func (p Plan) Names() []string {
	var names []string
	for _, op := range p.Ops {
		if op.Kind == OpLinkByNameOrCreate {
			names = append(names, op.Name)
		}
	}
	return names
}

// Resolver validates the category references of an article write.
type Resolver struct {
	Repo repository.CategoryRepository
}

// Resolve checks every existing ID in one batch lookup and builds the plan.
// Missing IDs are reported together in a single NotFound error.
// Names are trimmed, validated and de-duplicated; their existence is
// decided later, inside the write transaction.
func (r *Resolver) Resolve(ctx context.Context, existingIDs []string, newNames []string) (Plan, error) {
	const op = "resolve categories"

	ids := entity.UniqueIDs(existingIDs)
	if err := entity.ValidateIDs("categoryIds", ids); err != nil {
		return Plan{}, err
	}

	var plan Plan
	if len(ids) > 0 {
		found, err := r.Repo.ExistingIDs(ctx, ids)
		if err != nil {
			return Plan{}, fmt.Errorf("%s: %w", op, err)
		}
		if missing := entity.MissingIDs(ids, found); len(missing) > 0 {
			return Plan{}, entity.NotFound(op, "category", missing...)
		}
		for _, id := range ids {
			plan.Ops = append(plan.Ops, LinkByID(id))
		}
	}

	names, err := normalizeNames(newNames)
	if err != nil {
		return Plan{}, err
	}
	for _, name := range names {
		plan.Ops = append(plan.Ops, LinkByNameOrCreate(name))
	}
	return plan, nil
}

func normalizeNames(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if err := entity.ValidateLength("newCategories.name", name, entity.CategoryNameMinLen, entity.CategoryNameMaxLen); err != nil {
			return nil, err
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}
