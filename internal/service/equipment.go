package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/crucial707/equipment-registry/internal/db"
	"github.com/crucial707/equipment-registry/internal/metrics"
	"github.com/crucial707/equipment-registry/internal/models"
	"github.com/crucial707/equipment-registry/internal/repo"
	"github.com/go-playground/validator/v10"
)

// EquipmentService validates equipment input and runs each write in its own
// transaction. It is safe for concurrent use.
type EquipmentService struct {
	db       *sql.DB
	repo     *repo.EquipmentRepo
	logger   *slog.Logger
	validate *validator.Validate
}

func NewEquipmentService(conn *sql.DB, r *repo.EquipmentRepo, logger *slog.Logger) *EquipmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EquipmentService{
		db:       conn,
		repo:     r,
		logger:   logger,
		validate: newValidator(),
	}
}

// List returns every record ordered by id, or only those whose object,
// category, sector or operator contains query when query is not empty.
// query is matched as given, surrounding spaces included.
func (s *EquipmentService) List(ctx context.Context, query string) ([]models.Equipment, error) {
	var (
		list []models.Equipment
		err  error
	)
	if query == "" {
		list, err = s.repo.List(ctx, s.db)
	} else {
		list, err = s.repo.Search(ctx, s.db, query)
	}
	if err != nil {
		return nil, s.operational(ctx, "list", err)
	}
	return list, nil
}

func (s *EquipmentService) Get(ctx context.Context, id int) (models.Equipment, error) {
	e, err := s.repo.GetByID(ctx, s.db, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Equipment{}, ErrNotFound
	}
	if err != nil {
		return models.Equipment{}, s.operational(ctx, "get", err)
	}
	return e, nil
}

// Create validates in and inserts it. Invalid input returns *ValidationError
// without touching storage.
func (s *EquipmentService) Create(ctx context.Context, in EquipmentInput) (models.Equipment, error) {
	e, err := s.prepare(in)
	if err != nil {
		metrics.RecordOperation("create", metrics.ResultInvalid)
		return models.Equipment{}, err
	}

	var created models.Equipment
	err = db.WithTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		var err error
		created, err = s.repo.Create(ctx, tx, e)
		return err
	})
	if err != nil {
		metrics.RecordOperation("create", metrics.ResultError)
		return models.Equipment{}, s.operational(ctx, "create", err)
	}

	metrics.RecordOperation("create", metrics.ResultOK)
	s.logger.InfoContext(ctx, "equipment created", "id", created.ID, "asset_tag", created.AssetTag)
	return created, nil
}

// Update replaces every field of record id with in. Optional fields left
// empty are cleared. A missing record returns ErrNotFound before in is
// validated.
func (s *EquipmentService) Update(ctx context.Context, id int, in EquipmentInput) (models.Equipment, error) {
	if _, err := s.repo.GetByID(ctx, s.db, id); errors.Is(err, repo.ErrNotFound) {
		metrics.RecordOperation("update", metrics.ResultNotFound)
		return models.Equipment{}, ErrNotFound
	} else if err != nil {
		metrics.RecordOperation("update", metrics.ResultError)
		return models.Equipment{}, s.operational(ctx, "update", err)
	}

	e, err := s.prepare(in)
	if err != nil {
		metrics.RecordOperation("update", metrics.ResultInvalid)
		return models.Equipment{}, err
	}

	var updated models.Equipment
	err = db.WithTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		var err error
		updated, err = s.repo.Update(ctx, tx, id, e)
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		metrics.RecordOperation("update", metrics.ResultNotFound)
		return models.Equipment{}, ErrNotFound
	}
	if err != nil {
		metrics.RecordOperation("update", metrics.ResultError)
		return models.Equipment{}, s.operational(ctx, "update", err)
	}

	metrics.RecordOperation("update", metrics.ResultOK)
	s.logger.InfoContext(ctx, "equipment updated", "id", updated.ID)
	return updated, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id int) error {
	err := db.WithTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if errors.Is(err, repo.ErrNotFound) {
		metrics.RecordOperation("delete", metrics.ResultNotFound)
		return ErrNotFound
	}
	if err != nil {
		metrics.RecordOperation("delete", metrics.ResultError)
		return s.operational(ctx, "delete", err)
	}

	metrics.RecordOperation("delete", metrics.ResultOK)
	s.logger.InfoContext(ctx, "equipment deleted", "id", id)
	return nil
}

// Validate checks in without mapping or storing it.
func (s *EquipmentService) Validate(in EquipmentInput) error {
	_, err := s.prepare(in)
	return err
}

func (s *EquipmentService) prepare(in EquipmentInput) (models.Equipment, error) {
	in = in.trimmed()

	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.Equipment{}, err
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = reason(fe)
		}
		return models.Equipment{}, &ValidationError{Fields: fields}
	}

	return in.toEquipment()
}

func (s *EquipmentService) operational(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, "equipment operation failed", "op", op, "error", err)
	return &OperationalError{Op: op, Err: err}
}
