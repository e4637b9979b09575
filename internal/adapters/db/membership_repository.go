// internal/adapters/db/membership_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pvginkel/electronics-inventory/internal/core/domain"
	"github.com/pvginkel/electronics-inventory/internal/core/ports"
)

// membershipRepository implements ports.MembershipRepository
type membershipRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *Database, logger *slog.Logger) ports.MembershipRepository {
	return &membershipRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "membership")),
	}
}

// FindByPartIDs fetches all membership rows for the given part ids with a
// single join over lines, lists and sellers. This is the one round trip the
// bulk lookup performs regardless of batch size. Ordering is left to the
// service layer so the single and bulk paths share one sort rule.
func (r *membershipRepository) FindByPartIDs(ctx context.Context, partIDs []int64, includeDone bool) ([]domain.MembershipRow, error) {
	qb := squirrel.Select(
		"l.part_id", "l.id", "l.status", "l.quantity", "l.unit_price", "l.note",
		"l.created_at", "l.updated_at",
		"sl.id", "sl.name", "sl.status", "sl.updated_at",
		"s.name", "s.website",
	).From("shopping_list_lines l").
		Join("shopping_lists sl ON sl.id = l.shopping_list_id").
		LeftJoin("sellers s ON s.id = l.seller_id").
		Where(squirrel.Eq{"l.part_id": partIDs}).
		PlaceholderFormat(squirrel.Dollar)

	if !includeDone {
		qb = qb.Where(squirrel.NotEq{"l.status": domain.StatusDone}).
			Where(squirrel.NotEq{"sl.status": domain.StatusDone})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build membership query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query membership rows: %w", err)
	}
	defer rows.Close()

	var result []domain.MembershipRow
	for rows.Next() {
		var row domain.MembershipRow
		var unitPrice pgtype.Numeric
		var note, sellerName, sellerWebsite sql.NullString

		err := rows.Scan(
			&row.PartID, &row.LineID, &row.LineStatus, &row.Quantity, &unitPrice, &note,
			&row.LineCreatedAt, &row.LineUpdatedAt,
			&row.ListID, &row.ListName, &row.ListStatus, &row.ListUpdatedAt,
			&sellerName, &sellerWebsite,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}

		// Handle nullable fields
		row.Note = note.String
		row.SellerName = sellerName.String
		row.SellerWebsite = sellerWebsite.String
		row.UnitPrice = numericToDecimal(unitPrice)

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	r.logger.DebugContext(ctx, "membership rows fetched",
		slog.Int("part_ids", len(partIDs)),
		slog.Int("rows", len(result)),
		slog.Bool("include_done", includeDone))

	return result, nil
}

// numericToDecimal converts a nullable pgtype.Numeric into a decimal pointer
func numericToDecimal(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}

	v, err := n.Value()
	if err != nil || v == nil {
		return nil
	}

	switch t := v.(type) {
	case string:
		if d, err := decimal.NewFromString(t); err == nil {
			return &d
		}
	case []byte:
		if d, err := decimal.NewFromString(string(t)); err == nil {
			return &d
		}
	case float64:
		d := decimal.NewFromFloat(t)
		return &d
	case int64:
		d := decimal.NewFromInt(t)
		return &d
	default:
		if d, err := decimal.NewFromString(fmt.Sprint(v)); err == nil {
			return &d
		}
	}

	return nil
}
