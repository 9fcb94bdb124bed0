package sqlite

import (
	"context"

	"github.com/wattlehq/gatepass/internal/invitation/domain"
)

type groupsRepo struct {
	db dbtx
}

func (r *groupsRepo) CreateGroup(ctx context.Context, g domain.Group) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_groups (id, name, created_at)
		VALUES (?, ?, ?)`, g.ID, g.Name, g.CreatedAt)
	return mapConflict(err)
}

func (r *groupsRepo) GetGroupByName(ctx context.Context, name string) (domain.Group, error) {
	var g domain.Group
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM user_groups WHERE name = ?`, name).Scan(
		&g.ID, &g.Name, &g.CreatedAt,
	)
	if err != nil {
		return domain.Group{}, mapNotFound(err)
	}
	return g, nil
}

func (r *groupsRepo) AddMember(ctx context.Context, groupID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_group_members (group_id, user_id)
		VALUES (?, ?)
		ON CONFLICT (group_id, user_id) DO NOTHING`, groupID, userID)
	return err
}

func (r *groupsRepo) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM user_group_members
		WHERE group_id = ? AND user_id = ?`, groupID, userID).Scan(&n)
	return n > 0, err
}
