// cmd/reconcile/main.go
//
// One-shot ownership reconciliation, safe to run repeatedly (e.g. from cron).
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/bazaarhq/bazaar-backend/internal/config"
	"github.com/bazaarhq/bazaar-backend/internal/database"
	"github.com/bazaarhq/bazaar-backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	result, err := services.NewOwnershipService(db).Reconcile()
	if err != nil {
		logrus.Fatalf("Reconciliation failed: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"mapped":     result.Mapped,
		"fallback":   result.Fallback,
		"unassigned": result.Unassigned,
		"failed":     result.Failed,
	}).Info("Ownership reconciliation complete")
}
