// Package mongo connects to MongoDB with the official v2 driver.
//
// All settings come from MONGODB_* environment variables through Config.
// New retries the initial ping with exponential backoff; NewWithDatabase
// returns the configured database, which session.NewMongoBackend uses for the
// user_sessions collection.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
package mongo
