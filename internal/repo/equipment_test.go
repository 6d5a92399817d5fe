package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/equipment-registry/internal/models"
)

var rowColumns = []string{
	"id", "asset_tag", "categoria", "objeto", "modelo", "data_aquisicao", "nota_fiscal", "valor",
	"estado_conservacao", "setor_alocado", "responsavel_operador", "data_entrega", "manutencao_dada",
	"servico_realizado",
}

var acquired = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func notebook() models.Equipment {
	return models.Equipment{
		AssetTag:      "BEM001",
		Category:      models.CategoryInformatics,
		Object:        "Notebook Dell",
		Model:         "Inspiron 15",
		AcquiredOn:    acquired,
		InvoiceNumber: "NF123456",
		Value:         2500.00,
		Condition:     models.ConditionNew,
		Sector:        "TI",
		Operator:      "Ana",
	}
}

func TestEquipmentRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO equipment \(asset_tag, categoria, objeto`).
		WithArgs("BEM001", "Informática", "Notebook Dell", "Inspiron 15", acquired, "NF123456", 2500.00,
			"Novo", "TI", "Ana", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	repo := NewEquipmentRepo()
	e, err := repo.Create(context.Background(), db, notebook())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID != 42 || e.AssetTag != "BEM001" || e.Object != "Notebook Dell" {
		t.Errorf("unexpected equipment: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEquipmentRepo_Create_OptionalFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	delivered := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	in := notebook()
	in.DeliveredOn = &delivered
	in.Maintenance = "Preventiva"
	in.ServicePerformed = "Troca de teclado"

	mock.ExpectQuery(`INSERT INTO equipment`).
		WithArgs("BEM001", "Informática", "Notebook Dell", "Inspiron 15", acquired, "NF123456", 2500.00,
			"Novo", "TI", "Ana", delivered, "Preventiva", "Troca de teclado").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	repo := NewEquipmentRepo()
	if _, err := repo.Create(context.Background(), db, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEquipmentRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	delivered := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, asset_tag, (.+) FROM equipment WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(1, "BEM001", "Informática", "Notebook Dell", "Inspiron 15", acquired, "NF123456", 2500.00,
				"Novo", "TI", "Ana", delivered, "Preventiva", ""))

	repo := NewEquipmentRepo()
	e, err := repo.GetByID(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if e.ID != 1 || e.Category != models.CategoryInformatics || e.Condition != models.ConditionNew {
		t.Errorf("unexpected equipment: %+v", e)
	}
	if e.DeliveredOn == nil || !e.DeliveredOn.Equal(delivered) || e.Maintenance != "Preventiva" {
		t.Errorf("optional fields not scanned: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEquipmentRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM equipment WHERE id = \$1`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	repo := NewEquipmentRepo()
	_, err = repo.GetByID(context.Background(), db, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEquipmentRepo_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	in := notebook()
	in.Condition = models.ConditionRegular

	mock.ExpectQuery(`UPDATE equipment\s+SET asset_tag = \$1`).
		WithArgs("BEM001", "Informática", "Notebook Dell", "Inspiron 15", acquired, "NF123456", 2500.00,
			"Regular", "TI", "Ana", nil, nil, nil, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	repo := NewEquipmentRepo()
	e, err := repo.Update(context.Background(), db, 5, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if e.ID != 5 || e.Condition != models.ConditionRegular {
		t.Errorf("unexpected equipment: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEquipmentRepo_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE equipment`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewEquipmentRepo()
	_, err = repo.Update(context.Background(), db, 404, notebook())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEquipmentRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM equipment WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM equipment WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewEquipmentRepo()
	if err := repo.Delete(context.Background(), db, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(context.Background(), db, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete: expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEquipmentRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, asset_tag, (.+) FROM equipment ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(1, "BEM001", "Informática", "Notebook Dell", "Inspiron 15", acquired, "NF1", 2500.00,
				"Novo", "TI", "Ana", nil, "", "").
			AddRow(2, "BEM002", "Móveis", "Cadeira", "Giratória", acquired, "NF2", 0.0,
				"Bom", "RH", "Bruno", nil, "", ""))

	repo := NewEquipmentRepo()
	list, err := repo.List(context.Background(), db)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].AssetTag != "BEM001" || list[1].Category != models.CategoryFurniture {
		t.Errorf("unexpected list: %+v", list)
	}
	if list[0].DeliveredOn != nil {
		t.Errorf("expected nil delivery date, got %v", list[0].DeliveredOn)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEquipmentRepo_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM equipment WHERE \(objeto LIKE \$1 OR categoria LIKE \$2 OR setor_alocado LIKE \$3 OR responsavel_operador LIKE \$4\) ORDER BY id`).
		WithArgs("%TI%", "%TI%", "%TI%", "%TI%").
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(1, "BEM001", "Informática", "Notebook Dell", "Inspiron 15", acquired, "NF1", 2500.00,
				"Novo", "TI", "Ana", nil, "", ""))

	repo := NewEquipmentRepo()
	list, err := repo.Search(context.Background(), db, "TI")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(list) != 1 || list[0].Sector != "TI" {
		t.Errorf("unexpected list: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEquipmentRepo_Search_EscapesWildcards(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM equipment WHERE`).
		WithArgs(`%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows(rowColumns))

	repo := NewEquipmentRepo()
	list, err := repo.Search(context.Background(), db, "50%_off")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty result, got %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
