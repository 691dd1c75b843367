package metrics

import "time"

// UpdateArticlesTotal updates the total count of articles in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateArticlesTotal(count int64) {
	ArticlesTotal.Set(float64(count))
}

// UpdateCategoriesTotal updates the total count of categories in the database.
func UpdateCategoriesTotal(count int64) {
	CategoriesTotal.Set(float64(count))
}

// UpdateCommentsTotal updates the total count of comments in the database.
func UpdateCommentsTotal(count int64) {
	CommentsTotal.Set(float64(count))
}

// RecordArticleWrite records a successful single-article write.
// Operation should be one of "create", "update", "delete".
func RecordArticleWrite(operation string) {
	ArticleWritesTotal.WithLabelValues(operation).Inc()
}

// RecordBulkOperation records the outcome of one bulk batch.
// Result should be "success", "rejected" (validation or missing IDs) or "failure".
// affected is only counted for successful batches.
func RecordBulkOperation(operation, result string, affected int64) {
	BulkOperationsTotal.WithLabelValues(operation, result).Inc()
	if result == "success" && affected > 0 {
		BulkItemsAffected.WithLabelValues(operation).Add(float64(affected))
	}
}

// RecordCategoryCreated records a category insert.
// Origin is "explicit" for the category API and "by_name" for connect-or-create.
func RecordCategoryCreated(origin string) {
	CategoriesCreatedTotal.WithLabelValues(origin).Inc()
}

// RecordCategoryNameRace records a connect-or-create insert that found the name taken.
func RecordCategoryNameRace() {
	CategoryNameRacesTotal.Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "list_articles", "count_articles").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
