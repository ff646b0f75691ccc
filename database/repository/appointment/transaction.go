package appointmentRepo

import (
	"context"
	"fmt"

	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithConflictCheck re-runs the overlap query and inserts the
// appointment inside one Mongo transaction. Two bookings racing on the same
// doctor-time window both pass the advisory pre-check the service runs on a
// snapshot; only the first transaction to commit wins, the second sees the
// fresh row here and fails with ErrSchedulingConflict.
func (repo *MongoAppointmentRepo) CreateWithConflictCheck(ctx context.Context, appt *models.Appointment, excludeStatuses []string) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := overlapFilter(appt.DoctorID, appt.ScheduledStart, appt.ScheduledEnd, excludeStatuses)
		count, err := repo.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("conflict re-check failed: %w", err)
		}
		if count > 0 {
			return ErrSchedulingConflict
		}
		if _, err := repo.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSchedulingConflict {
			return err
		}
		return fmt.Errorf("appointment transaction failed: %w", err)
	}
	return nil
}
