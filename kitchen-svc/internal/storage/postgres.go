package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"cloud-kitchen/kitchen-svc/internal/domain"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const productColumns = "id, name, description, price, category, image_url, available, sizes, badges"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// Migrate applies the embedded schema migrations.
func (r *PostgresRepository) Migrate() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(r.DB, &postgres.Config{
		MigrationsTable: "kitchen_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.ImageURL, &p.Available, &p.Sizes, &p.Badges); err != nil {
		return nil, err
	}
	if p.Badges == nil {
		p.Badges = domain.Badges{}
	}
	return &p, nil
}

// ListProducts returns the catalog ordered by category then id. An empty
// category matches every product.
func (r *PostgresRepository) ListProducts(ctx context.Context, category string, availableOnly bool) ([]domain.Product, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE ($1 = '' OR category = $1) AND (NOT $2 OR available)
		ORDER BY category, id`, category, availableOnly)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// GetProductsByIDs loads every listed product in one query. Unknown ids are
// simply absent from the result.
func (r *PostgresRepository) GetProductsByIDs(ctx context.Context, ids []int) (map[int]domain.Product, error) {
	products := make(map[int]domain.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ANY($1)", pq.Array(toInt64s(ids)))
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products[p.ID] = *p
	}
	return products, rows.Err()
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.Badges == nil {
		p.Badges = domain.Badges{}
	}
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, category, image_url, available, sizes, badges)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.Available, p.Sizes, p.Badges).
		Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct applies a partial update; nil patch fields keep the stored
// value.
func (r *PostgresRepository) UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx, `
		UPDATE products SET
			name        = COALESCE($1, name),
			description = COALESCE($2, description),
			price       = COALESCE($3, price),
			category    = COALESCE($4, category),
			image_url   = COALESCE($5, image_url),
			available   = COALESCE($6, available),
			sizes       = COALESCE($7, sizes),
			badges      = COALESCE($8, badges)
		WHERE id = $9
		RETURNING `+productColumns,
		patch.Name, patch.Description, patch.Price, patch.Category, patch.ImageURL,
		patch.Available, patch.Sizes, patch.Badges, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return p, nil
}

func (r *PostgresRepository) DeleteProduct(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *PostgresRepository) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func toInt64s(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
