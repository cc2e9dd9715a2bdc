package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
	"github.com/jhoicas/logbook-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL.
type InventoryItemRepo struct {
	db Querier
}

// NewInventoryItemRepository construye el adaptador de persistencia para artículos.
func NewInventoryItemRepository(db Querier) *InventoryItemRepo {
	return &InventoryItemRepo{db: db}
}

const inventoryItemColumns = `id, category, sub_category, brand, model,
	quantity_in_stock, low_quantity_alert, status, created_at, updated_at`

// Create persiste un artículo. ErrDuplicate si la clave ya existe.
func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		it.ID, it.Category, it.SubCategory, it.Brand, it.Model,
		it.QuantityInStock, it.LowQuantityAlert, string(it.Status), it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetByKeyForUpdate busca por la clave compuesta y bloquea la fila.
func (r *InventoryItemRepo) GetByKeyForUpdate(ctx context.Context, key entity.ItemKey) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items
		WHERE category = $1 AND sub_category = $2 AND brand = $3 AND model = $4
		FOR UPDATE`
	return r.getOne(ctx, query, key.Category, key.SubCategory, key.Brand, key.Model)
}

func (r *InventoryItemRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InventoryItem, error) {
	it, err := scanInventoryItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// UpdateStock fija la cantidad y el estado derivado.
func (r *InventoryItemRepo) UpdateStock(ctx context.Context, id string, quantity int, status entity.StockStatus) error {
	query := `
		UPDATE inventory_items SET quantity_in_stock = $2, status = $3, updated_at = NOW()
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id, quantity, string(status))
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista artículos ordenados por su clave.
func (r *InventoryItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items
		ORDER BY category, sub_category, brand, model LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InventoryItem, 0, limit)
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Count total de artículos.
func (r *InventoryItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inventory items: %w", err)
	}
	return n, nil
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	var status string
	if err := row.Scan(
		&it.ID, &it.Category, &it.SubCategory, &it.Brand, &it.Model,
		&it.QuantityInStock, &it.LowQuantityAlert, &status, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	it.Status = entity.StockStatus(status)
	return &it, nil
}
