package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/tournament-portal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
)

type UpdateSeedsParams struct {
	TournamentID uuid.UUID
	Seeds        []uuid.UUID
}

// TournamentRepository reads and updates tournaments. Every call is a fresh round trip.
//
// Driver errors are returned as is; callers must not rely on their shape.
type TournamentRepository interface {
	// FindByID returns (nil, nil) when the tournament does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	// FindByNameForURL matches name_for_url case-insensitively. name_for_url is not unique.
	FindByNameForURL(ctx context.Context, name string) ([]models.PublicTournament, error)
	// FindByNameForURLWithInviteCodes exposes invite codes; authorize the caller first.
	FindByNameForURLWithInviteCodes(ctx context.Context, name string) ([]models.InviteCodeTournament, error)
	// UpdateSeeds replaces the seed order without checking team membership.
	UpdateSeeds(ctx context.Context, params UpdateSeedsParams) (*models.Tournament, error)
	UpdateBannerBackground(ctx context.Context, id uuid.UUID, background string) error
	BracketsByTournamentID(ctx context.Context, id uuid.UUID) ([]models.Bracket, error)
}

type postgresTournamentRepository struct {
	db SQLExecutor
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `
	t.id, t.name, t.name_for_url, t.description, t.start_time, t.check_in_start_time,
	t.banner_background, t.banner_text_hsl_args, t.seeds, t.organizer_id`

func scanTournament(row interface{ Scan(dest ...any) error }, t *models.Tournament, extra ...any) error {
	var seeds []string
	dest := []any{
		&t.ID, &t.Name, &t.NameForURL, &t.Description, &t.StartTime, &t.CheckInStartTime,
		&t.BannerBackground, &t.BannerTextHSLArgs, pq.Array(&seeds), &t.OrganizerID,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	parsed, err := stringsToUUIDs(seeds)
	if err != nil {
		return err
	}
	t.Seeds = parsed
	return nil
}

func (r *postgresTournamentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	query := `
		SELECT` + tournamentColumns + `,
			o.id, o.name, o.discord_invite, o.twitter, o.name_for_url, o.owner_id
		FROM tournaments t
		JOIN organizations o ON o.id = t.organizer_id
		WHERE t.id = $1`

	t := &models.Tournament{}
	o := &models.Organizer{}
	err := scanTournament(r.db.QueryRowContext(ctx, query, id), t,
		&o.ID, &o.Name, &o.DiscordInvite, &o.Twitter, &o.NameForURL, &o.OwnerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.Organizer = o

	teams, err := r.teamsWithMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Teams = teams
	return t, nil
}

func (r *postgresTournamentRepository) teamsWithMembers(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error) {
	teamRows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, checked_in_time, invite_code, tournament_id
		FROM tournament_teams
		WHERE tournament_id = $1
		ORDER BY created_at, id`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer teamRows.Close()

	teams := make([]models.Team, 0)
	index := make(map[uuid.UUID]int)
	for teamRows.Next() {
		var team models.Team
		if err := teamRows.Scan(
			&team.ID, &team.Name, &team.CreatedAt, &team.CheckedInTime, &team.InviteCode, &team.TournamentID,
		); err != nil {
			return nil, err
		}
		team.Members = make([]models.TeamMember, 0)
		index[team.ID] = len(teams)
		teams = append(teams, team)
	}
	if err := teamRows.Err(); err != nil {
		return nil, err
	}

	memberRows, err := r.db.QueryContext(ctx, `
		SELECT team_id, member_id, tournament_id, captain
		FROM tournament_team_members
		WHERE tournament_id = $1
		ORDER BY team_id, member_id`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var m models.TeamMember
		if err := memberRows.Scan(&m.TeamID, &m.MemberID, &m.TournamentID, &m.Captain); err != nil {
			return nil, err
		}
		if i, ok := index[m.TeamID]; ok {
			teams[i].Members = append(teams[i].Members, m)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *postgresTournamentRepository) FindByNameForURL(ctx context.Context, name string) ([]models.PublicTournament, error) {
	query := `
		SELECT
			t.id, t.name, t.description, t.start_time, t.check_in_start_time,
			t.banner_background, t.banner_text_hsl_args, t.seeds,
			o.name, o.discord_invite, o.twitter, o.name_for_url, o.owner_id
		FROM tournaments t
		JOIN organizations o ON o.id = t.organizer_id
		WHERE t.name_for_url = $1
		ORDER BY t.start_time, t.id`

	rows, err := r.db.QueryContext(ctx, query, strings.ToLower(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.PublicTournament, 0)
	for rows.Next() {
		var t models.PublicTournament
		var seeds []string
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.StartTime, &t.CheckInStartTime,
			&t.BannerBackground, &t.BannerTextHSLArgs, pq.Array(&seeds),
			&t.Organizer.Name, &t.Organizer.DiscordInvite, &t.Organizer.Twitter, &t.Organizer.NameForURL, &t.Organizer.OwnerID,
		); err != nil {
			return nil, err
		}
		if t.Seeds, err = stringsToUUIDs(seeds); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tournaments) == 0 {
		return tournaments, nil
	}

	ids := make([]uuid.UUID, len(tournaments))
	for i, t := range tournaments {
		ids[i] = t.ID
	}
	rel, err := r.loadRelations(ctx, ids, relationOptions{mapPool: true, brackets: true})
	if err != nil {
		return nil, err
	}

	for i := range tournaments {
		t := &tournaments[i]
		t.MapPool = orEmpty(rel.mapPool[t.ID])
		t.Brackets = make([]models.PublicBracket, 0, len(rel.brackets[t.ID]))
		for _, bt := range rel.brackets[t.ID] {
			t.Brackets = append(t.Brackets, models.PublicBracket{Type: bt})
		}
		t.Teams = make([]models.PublicTeam, 0, len(rel.teams[t.ID]))
		for _, team := range rel.teams[t.ID] {
			pt := models.PublicTeam{
				CheckedInTime: team.checkedInTime,
				ID:            team.id,
				Name:          team.name,
				CreatedAt:     team.createdAt,
				Members:       make([]models.PublicMember, 0, len(rel.members[team.id])),
			}
			for _, m := range rel.members[team.id] {
				pt.Members = append(pt.Members, models.PublicMember{Captain: m.captain, Member: m.profile})
			}
			t.Teams = append(t.Teams, pt)
		}
	}

	return tournaments, nil
}

func (r *postgresTournamentRepository) FindByNameForURLWithInviteCodes(ctx context.Context, name string) ([]models.InviteCodeTournament, error) {
	query := `
		SELECT t.id, t.start_time, o.name_for_url, o.owner_id
		FROM tournaments t
		JOIN organizations o ON o.id = t.organizer_id
		WHERE t.name_for_url = $1
		ORDER BY t.start_time, t.id`

	rows, err := r.db.QueryContext(ctx, query, strings.ToLower(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	tournaments := make([]models.InviteCodeTournament, 0)
	for rows.Next() {
		var id uuid.UUID
		var t models.InviteCodeTournament
		if err := rows.Scan(&id, &t.StartTime, &t.Organizer.NameForURL, &t.Organizer.OwnerID); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(tournaments) == 0 {
		return tournaments, nil
	}

	rel, err := r.loadRelations(ctx, ids, relationOptions{inviteCodes: true})
	if err != nil {
		return nil, err
	}

	for i, id := range ids {
		t := &tournaments[i]
		t.Teams = make([]models.InviteCodeTeam, 0, len(rel.teams[id]))
		for _, team := range rel.teams[id] {
			it := models.InviteCodeTeam{
				ID:            team.id,
				Name:          team.name,
				InviteCode:    team.inviteCode,
				CheckedInTime: team.checkedInTime,
				Members:       make([]models.InviteCodeMember, 0, len(rel.members[team.id])),
			}
			for _, m := range rel.members[team.id] {
				it.Members = append(it.Members, models.InviteCodeMember{
					Captain: m.captain,
					Member: models.InviteCodeMemberProfile{
						ID:            m.profile.ID,
						DiscordAvatar: m.profile.DiscordAvatar,
						DiscordName:   m.profile.DiscordName,
						DiscordID:     m.profile.DiscordID,
					},
				})
			}
			t.Teams = append(t.Teams, it)
		}
	}

	return tournaments, nil
}

func (r *postgresTournamentRepository) UpdateSeeds(ctx context.Context, params UpdateSeedsParams) (*models.Tournament, error) {
	query := `
		UPDATE tournaments t SET seeds = $1
		WHERE t.id = $2
		RETURNING` + tournamentColumns

	t := &models.Tournament{}
	err := scanTournament(
		r.db.QueryRowContext(ctx, query, pq.Array(uuidsToStrings(params.Seeds)), params.TournamentID),
		t,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) UpdateBannerBackground(ctx context.Context, id uuid.UUID, background string) error {
	query := `UPDATE tournaments SET banner_background = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, background, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament banner background: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) BracketsByTournamentID(ctx context.Context, id uuid.UUID) ([]models.Bracket, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type
		FROM tournament_brackets
		WHERE tournament_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament brackets: %w", err)
	}
	defer rows.Close()

	brackets := make([]models.Bracket, 0)
	for rows.Next() {
		var b models.Bracket
		if err := rows.Scan(&b.ID, &b.Type); err != nil {
			return nil, err
		}
		brackets = append(brackets, b)
	}
	return brackets, rows.Err()
}

type relationOptions struct {
	mapPool     bool
	brackets    bool
	inviteCodes bool
}

type teamRow struct {
	id            uuid.UUID
	tournamentID  uuid.UUID
	name          string
	createdAt     time.Time
	checkedInTime *time.Time
	inviteCode    string
}

type memberRow struct {
	teamID  uuid.UUID
	captain bool
	profile models.MemberProfile
}

type tournamentRelations struct {
	mapPool  map[uuid.UUID][]models.MapPoolEntry
	brackets map[uuid.UUID][]models.BracketType
	teams    map[uuid.UUID][]teamRow
	members  map[uuid.UUID][]memberRow
}

// loadRelations fetches the relations of several tournaments concurrently.
func (r *postgresTournamentRepository) loadRelations(ctx context.Context, ids []uuid.UUID, opts relationOptions) (*tournamentRelations, error) {
	rel := &tournamentRelations{}
	idArg := pq.Array(uuidsToStrings(ids))

	g, gCtx := errgroup.WithContext(ctx)

	if opts.mapPool {
		g.Go(func() error {
			var err error
			rel.mapPool, err = r.mapPools(gCtx, idArg)
			if err != nil {
				return fmt.Errorf("failed to load map pools: %w", err)
			}
			return nil
		})
	}
	if opts.brackets {
		g.Go(func() error {
			var err error
			rel.brackets, err = r.bracketTypes(gCtx, idArg)
			if err != nil {
				return fmt.Errorf("failed to load brackets: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		rel.teams, err = r.teamRows(gCtx, idArg, opts.inviteCodes)
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rel.members, err = r.memberRows(gCtx, idArg)
		if err != nil {
			return fmt.Errorf("failed to load team members: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rel, nil
}

func (r *postgresTournamentRepository) mapPools(ctx context.Context, ids interface{}) (map[uuid.UUID][]models.MapPoolEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT mp.tournament_id, m.id, m.mode, m.name
		FROM tournament_map_pool mp
		JOIN map_modes m ON m.id = mp.map_mode_id
		WHERE mp.tournament_id = ANY($1::uuid[])
		ORDER BY m.id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.MapPoolEntry)
	for rows.Next() {
		var tournamentID uuid.UUID
		var m models.MapPoolEntry
		if err := rows.Scan(&tournamentID, &m.ID, &m.Mode, &m.Name); err != nil {
			return nil, err
		}
		out[tournamentID] = append(out[tournamentID], m)
	}
	return out, rows.Err()
}

func (r *postgresTournamentRepository) bracketTypes(ctx context.Context, ids interface{}) (map[uuid.UUID][]models.BracketType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tournament_id, type
		FROM tournament_brackets
		WHERE tournament_id = ANY($1::uuid[])
		ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.BracketType)
	for rows.Next() {
		var tournamentID uuid.UUID
		var bt models.BracketType
		if err := rows.Scan(&tournamentID, &bt); err != nil {
			return nil, err
		}
		out[tournamentID] = append(out[tournamentID], bt)
	}
	return out, rows.Err()
}

func (r *postgresTournamentRepository) teamRows(ctx context.Context, ids interface{}, withInviteCodes bool) (map[uuid.UUID][]teamRow, error) {
	// invite_code is only selected for the organizer projection.
	inviteCodeColumn := "''"
	if withInviteCodes {
		inviteCodeColumn = "invite_code"
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tournament_id, name, created_at, checked_in_time, `+inviteCodeColumn+`
		FROM tournament_teams
		WHERE tournament_id = ANY($1::uuid[])
		ORDER BY created_at, id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]teamRow)
	for rows.Next() {
		var t teamRow
		if err := rows.Scan(&t.id, &t.tournamentID, &t.name, &t.createdAt, &t.checkedInTime, &t.inviteCode); err != nil {
			return nil, err
		}
		out[t.tournamentID] = append(out[t.tournamentID], t)
	}
	return out, rows.Err()
}

func (r *postgresTournamentRepository) memberRows(ctx context.Context, ids interface{}) (map[uuid.UUID][]memberRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tm.team_id, tm.captain,
			u.id, u.discord_avatar, u.discord_name, u.discord_id, u.discord_discriminator
		FROM tournament_team_members tm
		JOIN users u ON u.id = tm.member_id
		WHERE tm.tournament_id = ANY($1::uuid[])
		ORDER BY tm.captain DESC, u.id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]memberRow)
	for rows.Next() {
		var m memberRow
		if err := rows.Scan(
			&m.teamID, &m.captain,
			&m.profile.ID, &m.profile.DiscordAvatar, &m.profile.DiscordName, &m.profile.DiscordID, &m.profile.DiscordDiscriminator,
		); err != nil {
			return nil, err
		}
		out[m.teamID] = append(out[m.teamID], m)
	}
	return out, rows.Err()
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return make([]T, 0)
	}
	return s
}
