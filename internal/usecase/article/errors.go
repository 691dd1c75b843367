// Package article provides use cases for managing article entities.
// It reconciles each article's category set, runs the all-or-nothing bulk
// operations and serves paginated reads.
package article

// Operation names carried by classified errors and log lines.
const (
	opCreate         = "create article"
	opList           = "list articles"
	opGet            = "get article"
	opUpdate         = "update article"
	opDelete         = "delete article"
	opRemoveBulk     = "bulk delete articles"
	opAssignCategory = "bulk assign category"
	opLinkByName     = "link category by name"
)
