package repositories

import (
	"context"
	"errors"

	"licentra/internal/common"
	"licentra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ActivationRepository interface {
	GetByLicenseAndUser(ctx context.Context, tenantID, licenseID, userID uuid.UUID) (*models.Activation, error)
	ListByLicense(ctx context.Context, tenantID, licenseID uuid.UUID) ([]*models.Activation, error)
	CountByLicense(ctx context.Context, tenantID, licenseID uuid.UUID) (int, error)
	// Record performs the seat check-then-act atomically: it locks the license row,
	// touches the existing activation if one exists, otherwise counts occupied seats
	// and inserts. Returns common.ErrSeatLimitExceeded without writing when the
	// license is full. The bool reports whether a new activation was created.
	Record(ctx context.Context, tenantID, licenseID, userID uuid.UUID, maxSeats *int) (*models.Activation, bool, error)
}

type activationRepo struct {
	db Database
}

func NewActivationRepo(db Database) ActivationRepository {
	return &activationRepo{db: db}
}

const activationColumns = `id, tenant_id, license_id, user_id, activated_at, last_checked_at`

func (r *activationRepo) GetByLicenseAndUser(ctx context.Context, tenantID, licenseID, userID uuid.UUID) (*models.Activation, error) {
	activation := &models.Activation{}
	query := `
		SELECT ` + activationColumns + `
		FROM activations
		WHERE tenant_id = $1 AND license_id = $2 AND user_id = $3
	`
	err := r.db.QueryRow(ctx, query, tenantID, licenseID, userID).Scan(&activation.ID, &activation.TenantID, &activation.LicenseID, &activation.UserID, &activation.ActivatedAt, &activation.LastCheckedAt)
	if err != nil {
		return nil, err
	}
	return activation, nil
}

func (r *activationRepo) ListByLicense(ctx context.Context, tenantID, licenseID uuid.UUID) ([]*models.Activation, error) {
	query := `
		SELECT ` + activationColumns + `
		FROM activations
		WHERE tenant_id = $1 AND license_id = $2
		ORDER BY activated_at ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, licenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activations []*models.Activation
	for rows.Next() {
		activation := &models.Activation{}
		if err := rows.Scan(&activation.ID, &activation.TenantID, &activation.LicenseID, &activation.UserID, &activation.ActivatedAt, &activation.LastCheckedAt); err != nil {
			return nil, err
		}
		activations = append(activations, activation)
	}
	return activations, nil
}

func (r *activationRepo) CountByLicense(ctx context.Context, tenantID, licenseID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(DISTINCT user_id)
		FROM activations
		WHERE tenant_id = $1 AND license_id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, licenseID).Scan(&count)
	return count, err
}

func (r *activationRepo) Record(ctx context.Context, tenantID, licenseID, userID uuid.UUID, maxSeats *int) (*models.Activation, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	// Lock the license row so concurrent first-time activations serialize here.
	// A cancelled context aborts the transaction with nothing written.
	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM licenses WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, tenantID, licenseID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, common.ErrNotFound
		}
		return nil, false, err
	}

	activation := &models.Activation{}
	err = tx.QueryRow(ctx, `
		SELECT `+activationColumns+`
		FROM activations
		WHERE tenant_id = $1 AND license_id = $2 AND user_id = $3
	`, tenantID, licenseID, userID).Scan(&activation.ID, &activation.TenantID, &activation.LicenseID, &activation.UserID, &activation.ActivatedAt, &activation.LastCheckedAt)
	switch {
	case err == nil:
		// Already seated: idempotent, only last_checked_at moves.
		err = tx.QueryRow(ctx, `
			UPDATE activations
			SET last_checked_at = NOW()
			WHERE id = $1
			RETURNING last_checked_at
		`, activation.ID).Scan(&activation.LastCheckedAt)
		if err != nil {
			return nil, false, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, false, err
		}
		return activation, false, nil
	case errors.Is(err, pgx.ErrNoRows):
		// First activation for this user, fall through to the seat check.
	default:
		return nil, false, err
	}

	if maxSeats != nil {
		var count int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(DISTINCT user_id)
			FROM activations
			WHERE tenant_id = $1 AND license_id = $2
		`, tenantID, licenseID).Scan(&count)
		if err != nil {
			return nil, false, err
		}
		if count >= *maxSeats {
			return nil, false, common.ErrSeatLimitExceeded
		}
	}

	activation = &models.Activation{
		ID:        uuid.New(),
		TenantID:  tenantID,
		LicenseID: licenseID,
		UserID:    userID,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO activations (id, tenant_id, license_id, user_id, activated_at, last_checked_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING activated_at, last_checked_at
	`, activation.ID, tenantID, licenseID, userID).Scan(&activation.ActivatedAt, &activation.LastCheckedAt)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return activation, true, nil
}
