package calculation

import (
	"time"

	"github.com/google/uuid"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// idFunc returns a new report identifier (override for deterministic snapshots).
var idFunc = uuid.New

// SetIDFunc overrides the report ID provider (use only in tests).
func SetIDFunc(f func() uuid.UUID) { idFunc = f }
