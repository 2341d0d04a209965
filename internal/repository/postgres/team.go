package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/team"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
)

// TeamRepository implements team.Repository
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *sql.DB) team.Repository {
	return &TeamRepository{db: db}
}

// CreateWithOwner creates the team and its owner membership in one transaction
func (r *TeamRepository) CreateWithOwner(ctx context.Context, t *team.Team) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to start transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO teams (name, description, owner_id, subscription_plan, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.Name, nullIfEmpty(t.Description), t.OwnerID, t.SubscriptionPlan, t.IsActive, now.Unix(), now.Unix())
	if err != nil {
		return errors.DatabaseError("Failed to create team", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get team ID", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO team_memberships (team_id, user_id, role, status, joined_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, t.OwnerID, team.RoleOwner, team.MembershipActive, now.Unix(), now.Unix())
	if err != nil {
		return errors.DatabaseError("Failed to create owner membership", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit team creation", err)
	}

	t.ID = id
	return nil
}

func scanTeam(row rowScanner) (*team.Team, error) {
	var t team.Team
	var description sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(
		&t.ID, &t.Name, &description, &t.OwnerID,
		&t.SubscriptionPlan, &t.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		t.Description = description.String
	}
	t.CreatedAt = time.Unix(createdAt, 0)
	t.UpdatedAt = time.Unix(updatedAt, 0)

	return &t, nil
}

const teamColumns = `id, name, description, owner_id, subscription_plan, is_active, created_at, updated_at`

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*team.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = ?`

	t, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Team")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get team", err)
	}

	return t, nil
}

// CountActiveOwnedBy counts active teams owned by the user
func (r *TeamRepository) CountActiveOwnedBy(ctx context.Context, ownerID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM teams WHERE owner_id = ? AND is_active = ?`,
		ownerID, true,
	).Scan(&count)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count teams", err)
	}

	return count, nil
}

// ListByUser retrieves teams where the user holds an active membership
func (r *TeamRepository) ListByUser(ctx context.Context, userID int64) ([]*team.Team, error) {
	query := `
		SELECT t.id, t.name, t.description, t.owner_id, t.subscription_plan, t.is_active, t.created_at, t.updated_at
		FROM teams t
		INNER JOIN team_memberships m ON m.team_id = t.id
		WHERE m.user_id = ? AND m.status = ?
		ORDER BY t.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, team.MembershipActive)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list teams", err)
	}
	defer rows.Close()

	var teams []*team.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan team", err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate teams", err)
	}

	return teams, nil
}

// Update updates a team
func (r *TeamRepository) Update(ctx context.Context, t *team.Team) error {
	t.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, `
		UPDATE teams
		SET name = ?, description = ?, subscription_plan = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`, t.Name, nullIfEmpty(t.Description), t.SubscriptionPlan, t.IsActive, t.UpdatedAt.Unix(), t.ID)
	if err != nil {
		return errors.DatabaseError("Failed to update team", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("Team")
	}

	return nil
}

func scanMembership(row rowScanner) (*team.Membership, error) {
	var m team.Membership
	var joinedAt sql.NullInt64
	var createdAt int64

	err := row.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &joinedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	if joinedAt.Valid {
		t := time.Unix(joinedAt.Int64, 0)
		m.JoinedAt = &t
	}
	m.CreatedAt = time.Unix(createdAt, 0)

	return &m, nil
}

// GetMembership retrieves the membership row for the team and user, any status
func (r *TeamRepository) GetMembership(ctx context.Context, teamID, userID int64) (*team.Membership, error) {
	query := `
		SELECT id, team_id, user_id, role, status, joined_at, created_at
		FROM team_memberships
		WHERE team_id = ? AND user_id = ?
	`

	m, err := scanMembership(r.db.QueryRowContext(ctx, query, teamID, userID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Membership")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get membership", err)
	}

	return m, nil
}

// ListMembers retrieves memberships of a team with user details
func (r *TeamRepository) ListMembers(ctx context.Context, teamID int64) ([]*team.Membership, error) {
	query := `
		SELECT m.id, m.team_id, m.user_id, m.role, m.status, m.joined_at, m.created_at,
			u.email, u.name
		FROM team_memberships m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.team_id = ?
		ORDER BY m.id
	`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list members", err)
	}
	defer rows.Close()

	var members []*team.Membership
	for rows.Next() {
		var m team.Membership
		var joinedAt sql.NullInt64
		var createdAt int64
		var userName sql.NullString

		err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &joinedAt, &createdAt,
			&m.UserEmail, &userName)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan member", err)
		}

		if joinedAt.Valid {
			t := time.Unix(joinedAt.Int64, 0)
			m.JoinedAt = &t
		}
		if userName.Valid {
			m.UserName = userName.String
		}
		m.CreatedAt = time.Unix(createdAt, 0)

		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate members", err)
	}

	return members, nil
}

// DeleteMembership removes a membership row
func (r *TeamRepository) DeleteMembership(ctx context.Context, membershipID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team_memberships WHERE id = ?`, membershipID)
	if err != nil {
		return errors.DatabaseError("Failed to delete membership", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("Membership")
	}

	return nil
}

// HasActiveMembership reports whether the user is an active member of the team
func (r *TeamRepository) HasActiveMembership(ctx context.Context, teamID, userID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM team_memberships WHERE team_id = ? AND user_id = ? AND status = ?`,
		teamID, userID, team.MembershipActive,
	).Scan(&count)
	if err != nil {
		return false, errors.DatabaseError("Failed to check membership", err)
	}

	return count > 0, nil
}

// CreateInvitation inserts a pending invitation, replacing any previous
// pending invitation for the same team and email
func (r *TeamRepository) CreateInvitation(ctx context.Context, inv *team.Invitation) error {
	now := time.Now()
	inv.CreatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to start transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM team_invitations WHERE team_id = ? AND LOWER(email) = LOWER(?) AND status = ?`,
		inv.TeamID, inv.Email, team.InvitationPending,
	)
	if err != nil {
		return errors.DatabaseError("Failed to replace invitation", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO team_invitations (team_id, email, token, invited_by, status, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, inv.TeamID, inv.Email, inv.Token, inv.InvitedBy, inv.Status, inv.ExpiresAt.Unix(), now.Unix())
	if err != nil {
		return errors.DatabaseError("Failed to create invitation", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get invitation ID", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit invitation", err)
	}

	inv.ID = id
	return nil
}

func scanInvitation(row rowScanner) (*team.Invitation, error) {
	var inv team.Invitation
	var expiresAt, createdAt int64

	err := row.Scan(&inv.ID, &inv.TeamID, &inv.Email, &inv.Token, &inv.InvitedBy,
		&inv.Status, &expiresAt, &createdAt, &inv.TeamName)
	if err != nil {
		return nil, err
	}

	inv.ExpiresAt = time.Unix(expiresAt, 0)
	inv.CreatedAt = time.Unix(createdAt, 0)

	return &inv, nil
}

const invitationQuery = `
	SELECT i.id, i.team_id, i.email, i.token, i.invited_by, i.status, i.expires_at, i.created_at,
		t.name
	FROM team_invitations i
	INNER JOIN teams t ON t.id = i.team_id
`

// GetInvitationByToken retrieves an invitation by its token
func (r *TeamRepository) GetInvitationByToken(ctx context.Context, token string) (*team.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRowContext(ctx, invitationQuery+` WHERE i.token = ?`, token))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Invitation")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get invitation", err)
	}

	return inv, nil
}

// GetInvitationByID retrieves an invitation by ID
func (r *TeamRepository) GetInvitationByID(ctx context.Context, id int64) (*team.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRowContext(ctx, invitationQuery+` WHERE i.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Invitation")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get invitation", err)
	}

	return inv, nil
}

// ListInvitations retrieves pending invitations of a team
func (r *TeamRepository) ListInvitations(ctx context.Context, teamID int64) ([]*team.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		invitationQuery+` WHERE i.team_id = ? AND i.status = ? ORDER BY i.id`,
		teamID, team.InvitationPending,
	)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list invitations", err)
	}
	defer rows.Close()

	var invitations []*team.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan invitation", err)
		}
		invitations = append(invitations, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate invitations", err)
	}

	return invitations, nil
}

// DeleteInvitation removes an invitation row
func (r *TeamRepository) DeleteInvitation(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team_invitations WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete invitation", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("Invitation")
	}

	return nil
}

// AcceptInvitation atomically marks the invitation accepted and inserts an
// active membership for the user
func (r *TeamRepository) AcceptInvitation(ctx context.Context, invitationID int64, userID int64) error {
	now := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to start transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE team_invitations SET status = ? WHERE id = ? AND status = ?`,
		team.InvitationAccepted, invitationID, team.InvitationPending,
	)
	if err != nil {
		return errors.DatabaseError("Failed to accept invitation", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Invitation")
	}

	var teamID int64
	err = tx.QueryRowContext(ctx,
		`SELECT team_id FROM team_invitations WHERE id = ?`, invitationID,
	).Scan(&teamID)
	if err != nil {
		return errors.DatabaseError("Failed to read invitation", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO team_memberships (team_id, user_id, role, status, joined_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, teamID, userID, team.RoleMember, team.MembershipActive, now.Unix(), now.Unix())
	if err != nil {
		return errors.DatabaseError("Failed to create membership", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit acceptance", err)
	}

	return nil
}
