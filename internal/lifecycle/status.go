package lifecycle

import (
	"fmt"

	"github.com/lifeplanapp/lifeplan-backend/internal/apperror"
	"github.com/lifeplanapp/lifeplan-backend/internal/models"
)

// DeriveStatus maps a progress percentage to its lifecycle status. Status is
// a pure function of progress; every code path that writes progress must
// persist the status this returns alongside it.
func DeriveStatus(progress int) string {
	switch {
	case progress == 100:
		return models.StatusCompleted
	case progress > 0:
		return models.StatusInProgress
	default:
		return models.StatusNotStarted
	}
}

// CheckProgress rejects progress values outside [0,100] as a caller
// contract violation.
func CheckProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return apperror.InvalidArgument(fmt.Sprintf("progress must be between 0 and 100, got %d", progress))
	}
	return nil
}
