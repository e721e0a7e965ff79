package components

import (
	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/infra/readstore"
	"badminton-booking/internal/infra/uow"
	"badminton-booking/internal/usecase/queries"
	"badminton-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		NewCommandReads,
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityViewRepo)),
		),
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogViewRepo)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewCommandReads exposes the pool-backed read side used by quote
// queries outside any transaction.
func NewCommandReads(u shared.UnitOfWork) shared.CommandReads {
	return u.CommandReads()
}
