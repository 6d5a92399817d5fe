package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/crucial707/equipment-registry/internal/models"
)

// ErrNotFound is returned when no equipment row matches the given id.
var ErrNotFound = errors.New("equipment not found")

// Querier is the subset of *sql.DB and *sql.Tx the repository needs.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const equipmentTable = "equipment"

var equipmentColumns = []string{
	"id",
	"asset_tag",
	"categoria",
	"objeto",
	"modelo",
	"data_aquisicao",
	"nota_fiscal",
	"valor",
	"estado_conservacao",
	"setor_alocado",
	"responsavel_operador",
	"data_entrega",
	"COALESCE(manutencao_dada, '')",
	"COALESCE(servico_realizado, '')",
}

// searchColumns are matched with LIKE by Search, OR-ed together.
var searchColumns = []string{"objeto", "categoria", "setor_alocado", "responsavel_operador"}

// ========================
// REPOSITORY STRUCT
// ========================

// EquipmentRepo reads and writes the equipment table. Every method takes the
// Querier to run on so callers choose between the pool and a transaction.
type EquipmentRepo struct {
	builder sq.StatementBuilderType
}

func NewEquipmentRepo() *EquipmentRepo {
	return &EquipmentRepo{builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

// ========================
// CREATE EQUIPMENT
// ========================

func (r *EquipmentRepo) Create(ctx context.Context, q Querier, e models.Equipment) (models.Equipment, error) {
	err := q.QueryRowContext(ctx,
		`INSERT INTO equipment (asset_tag, categoria, objeto, modelo, data_aquisicao, nota_fiscal, valor,
		 estado_conservacao, setor_alocado, responsavel_operador, data_entrega, manutencao_dada, servico_realizado)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		writeArgs(e)...,
	).Scan(&e.ID)
	if err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

// ========================
// GET EQUIPMENT BY ID
// ========================

func (r *EquipmentRepo) GetByID(ctx context.Context, q Querier, id int) (models.Equipment, error) {
	query := `SELECT ` + strings.Join(equipmentColumns, ", ") + ` FROM equipment WHERE id = $1`
	e, err := scanEquipment(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Equipment{}, ErrNotFound
	}
	return e, err
}

// ========================
// UPDATE EQUIPMENT BY ID
// ========================

// Update overwrites every column of the row with id.
func (r *EquipmentRepo) Update(ctx context.Context, q Querier, id int, e models.Equipment) (models.Equipment, error) {
	args := append(writeArgs(e), id)
	err := q.QueryRowContext(ctx,
		`UPDATE equipment
		 SET asset_tag = $1, categoria = $2, objeto = $3, modelo = $4, data_aquisicao = $5, nota_fiscal = $6,
		     valor = $7, estado_conservacao = $8, setor_alocado = $9, responsavel_operador = $10,
		     data_entrega = $11, manutencao_dada = $12, servico_realizado = $13
		 WHERE id = $14
		 RETURNING id`,
		args...,
	).Scan(&e.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Equipment{}, ErrNotFound
	}
	if err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

// ========================
// DELETE EQUIPMENT BY ID
// ========================

func (r *EquipmentRepo) Delete(ctx context.Context, q Querier, id int) error {
	result, err := q.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ========================
// LIST ALL EQUIPMENT
// ========================

func (r *EquipmentRepo) List(ctx context.Context, q Querier) ([]models.Equipment, error) {
	query, args, err := r.builder.
		Select(equipmentColumns...).
		From(equipmentTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	return queryEquipment(ctx, q, query, args...)
}

// ========================
// SEARCH EQUIPMENT
// ========================

// Search returns rows where any of the search columns contains term.
// LIKE wildcards in term are escaped, so term always matches literally.
func (r *EquipmentRepo) Search(ctx context.Context, q Querier, term string) ([]models.Equipment, error) {
	pattern := "%" + escapeLike(term) + "%"
	or := sq.Or{}
	for _, col := range searchColumns {
		or = append(or, sq.Like{col: pattern})
	}

	query, args, err := r.builder.
		Select(equipmentColumns...).
		From(equipmentTable).
		Where(or).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	return queryEquipment(ctx, q, query, args...)
}

func queryEquipment(ctx context.Context, q Querier, query string, args ...any) ([]models.Equipment, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEquipment(row rowScanner) (models.Equipment, error) {
	var (
		e         models.Equipment
		delivered sql.NullTime
	)
	err := row.Scan(
		&e.ID,
		&e.AssetTag,
		&e.Category,
		&e.Object,
		&e.Model,
		&e.AcquiredOn,
		&e.InvoiceNumber,
		&e.Value,
		&e.Condition,
		&e.Sector,
		&e.Operator,
		&delivered,
		&e.Maintenance,
		&e.ServicePerformed,
	)
	if err != nil {
		return models.Equipment{}, err
	}
	if delivered.Valid {
		d := delivered.Time
		e.DeliveredOn = &d
	}
	return e, nil
}

// writeArgs returns the 13 insert/update arguments in column order.
// Empty optional text is stored as NULL.
func writeArgs(e models.Equipment) []any {
	var delivered any
	if e.DeliveredOn != nil {
		delivered = *e.DeliveredOn
	}
	return []any{
		e.AssetTag,
		string(e.Category),
		e.Object,
		e.Model,
		e.AcquiredOn,
		e.InvoiceNumber,
		e.Value,
		string(e.Condition),
		e.Sector,
		e.Operator,
		delivered,
		nullIfEmpty(e.Maintenance),
		nullIfEmpty(e.ServicePerformed),
	}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
