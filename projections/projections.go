package projections

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"example.com/worklog/domain"
)

// ErrMissingReferenceData is returned when a projection insert needs a
// foreign row that does not exist, e.g. a work-log entry whose member has
// no organization. The save transaction rolls back so the event log and
// the projection never diverge.
var ErrMissingReferenceData = errors.New("missing reference data for projection")

// Projector applies one appended event to a projection table. It runs on
// the save transaction handle; any error rolls back the event append.
//
// Unlike the codec, projectors treat unrecognized event variants as
// no-ops so that newer event types do not break older read models.
type Projector interface {
	Project(ctx context.Context, tx *gorm.DB, event domain.Event) error
}
