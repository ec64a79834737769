package db

import (
	"fmt"

	"gorm.io/gorm"
)

// bookingConstraintSQL makes the store reject overlapping active
// appointments on the same date. Times are stored as "HH:MM" text, so they
// are mapped to minutes for the range comparison.
var bookingConstraintSQL = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE OR REPLACE FUNCTION hm_minutes(t text) RETURNS integer
		LANGUAGE sql IMMUTABLE STRICT
		AS $$ SELECT split_part(t, ':', 1)::int * 60 + split_part(t, ':', 2)::int $$`,
	`DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
		) THEN
			ALTER TABLE appointments
				ADD CONSTRAINT appointments_no_overlap
				EXCLUDE USING gist (
					date WITH =,
					int4range(hm_minutes(start_time), hm_minutes(end_time)) WITH &&
				)
				WHERE (status <> 'cancelled');
		END IF;
	END $$`,
}

// EnsureBookingConstraint installs the overlap constraint. Without it the
// booking writer's own pre-insert overlap read is the only guard, which
// does not hold under concurrent writes.
func EnsureBookingConstraint(db *gorm.DB) error {
	for _, stmt := range bookingConstraintSQL {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("booking overlap constraint: %w", err)
		}
	}
	return nil
}
