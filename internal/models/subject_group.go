package models

import "time"

// SubjectGroup bundles alternative subjects that share a timeslot, e.g. Religion
// taught in parallel to different children of the same group. Every subject in
// a bundle is expected to carry the same WeeklyHours (enforced by the snapshot
// loader, not here).
type SubjectGroup struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectGroupDetail extends SubjectGroup with its resolved members for responses.
type SubjectGroupDetail struct {
	SubjectGroup
	Subjects []Subject `json:"subjects"`
}
