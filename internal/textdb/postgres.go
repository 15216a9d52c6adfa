package textdb

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metdatasystem/cwa/pkg/cwa"
)

//go:embed schema.sql
var schema string

const productColumns = `id, product_id, created_at, issued, expires, source, data, wmo, awips, transmit_id, bbb, hazard, series, operational`

// PostgresStore is the text database backed by the cwa.products table.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewDatabasePool connects to the database and checks it is reachable.
func NewDatabasePool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// Migrate creates the schema and table when missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create text database schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Latest(ctx context.Context, awips string) (*Product, error) {
	row := s.db.QueryRow(ctx, `
	SELECT `+productColumns+` FROM cwa.products WHERE awips = $1 ORDER BY created_at DESC, id DESC LIMIT 1;
	`, awips)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *PostgresStore) Insert(ctx context.Context, product *Product) (*Product, error) {
	if product.Data == "" {
		return nil, ErrEmptyProduct
	}

	rows, err := s.db.Query(ctx, `
	INSERT INTO cwa.products (product_id, issued, expires, source, data, wmo, awips, transmit_id, bbb, hazard, series, operational) VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_at;
	`, product.ProductID, product.Issued, product.Expires, product.Source, product.Data, product.WMO, product.AWIPS,
		product.TransmitID, product.BBB, string(product.Hazard), product.Series, product.Operational)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.Scan(&product.ID, &product.CreatedAt)
		return product, err
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return nil, errors.New("no rows returned when inserting product " + product.ProductID)
}

func (s *PostgresStore) Issued(ctx context.Context, from, to time.Time) ([]*Product, error) {
	rows, err := s.db.Query(ctx, `
	SELECT `+productColumns+` FROM cwa.products WHERE issued >= $1 AND issued < $2 ORDER BY issued, id;
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (s *PostgresStore) Purge(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM cwa.products WHERE created_at < $1;`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var product Product
	var hazard string
	err := row.Scan(&product.ID, &product.ProductID, &product.CreatedAt, &product.Issued, &product.Expires,
		&product.Source, &product.Data, &product.WMO, &product.AWIPS, &product.TransmitID, &product.BBB,
		&hazard, &product.Series, &product.Operational)
	if err != nil {
		return nil, err
	}
	product.Hazard = cwa.Hazard(hazard)
	return &product, nil
}
