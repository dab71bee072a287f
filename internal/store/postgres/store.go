package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathewar/apty/internal/domain"
)

type Store struct {
	pool          *pgxpool.Pool
	building      *BuildingRepo
	units         *UnitRepo
	residents     *ResidentRepo
	announcements *AnnouncementRepo
	documents     *DocumentRepo
	maintenance   *MaintenanceRepo
	finance       *FinanceRepo
	users         *UserRepo
	audit         *AuditRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:          pool,
		building:      NewBuildingRepo(pool),
		units:         NewUnitRepo(pool),
		residents:     NewResidentRepo(pool),
		announcements: NewAnnouncementRepo(pool),
		documents:     NewDocumentRepo(pool),
		maintenance:   NewMaintenanceRepo(pool),
		finance:       NewFinanceRepo(pool),
		users:         NewUserRepo(pool),
		audit:         NewAuditRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Building() domain.BuildingRepository          { return s.building }
func (s *Store) Units() domain.UnitRepository                 { return s.units }
func (s *Store) Residents() domain.ResidentRepository         { return s.residents }
func (s *Store) Announcements() domain.AnnouncementRepository { return s.announcements }
func (s *Store) Documents() domain.DocumentRepository         { return s.documents }
func (s *Store) Maintenance() domain.MaintenanceRepository    { return s.maintenance }
func (s *Store) Finance() domain.FinanceRepository            { return s.finance }
func (s *Store) Users() domain.UserRepository                 { return s.users }
func (s *Store) Audit() domain.AuditRepository                { return s.audit }
