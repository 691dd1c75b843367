// Package resilience groups the fault tolerance used around PostgreSQL.
//
// circuitbreaker fails transactions fast while the database is down;
// retry re-runs a transaction that lost a serialization or deadlock race.
// Both are composed by db.Transactor:
//
//	tx := db.NewTransactor(pool)
//	err := tx.WithinTx(ctx, func(ctx context.Context) error { ... })
package resilience
