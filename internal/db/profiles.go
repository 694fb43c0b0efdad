package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-agent/internal/types"
)

// CreateProfile stores a new candidate profile and returns its assigned ID.
// Profile IDs are immutable once assigned; there is no deletion path.
func (db *DB) CreateProfile(ctx context.Context, p types.Profile) (string, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles
		   (name, email, phone, years_experience, locations, roles, skills, portals, resume_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		p.Name, p.Email, p.Phone, p.YearsExperience,
		p.Locations, p.Roles, p.Skills, p.Portals, p.ResumeText,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create profile: %w", err)
	}
	return id.String(), nil
}

// GetProfile retrieves a profile by ID. Returns nil without error when the
// ID does not resolve to a stored profile.
func (db *DB) GetProfile(ctx context.Context, id string) (*types.Profile, error) {
	profileID, err := uuid.Parse(id)
	if err != nil {
		// An unparseable ID cannot resolve to a stored profile.
		return nil, nil
	}

	var p types.Profile
	var pid uuid.UUID
	err = db.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, years_experience, locations, roles, skills, portals, resume_text
		 FROM profiles WHERE id = $1`,
		profileID,
	).Scan(&pid, &p.Name, &p.Email, &p.Phone, &p.YearsExperience,
		&p.Locations, &p.Roles, &p.Skills, &p.Portals, &p.ResumeText)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.ID = pid.String()
	return &p, nil
}
