package equipment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/crucial707/equipment-registry/cmd/cli/output"
	"github.com/crucial707/equipment-registry/internal/models"
	"github.com/crucial707/equipment-registry/internal/service"
	"github.com/spf13/cobra"
)

// Service is what the equipment commands need from service.EquipmentService.
type Service interface {
	List(ctx context.Context, query string) ([]models.Equipment, error)
	Get(ctx context.Context, id int) (models.Equipment, error)
	Create(ctx context.Context, in service.EquipmentInput) (models.Equipment, error)
	Delete(ctx context.Context, id int) error
}

// Opener connects to storage and returns a Service plus a func releasing it.
type Opener func(ctx context.Context) (Service, func() error, error)

var listHeaders = []string{"ID", "Nº do bem", "Categoria", "Objeto", "Modelo", "Aquisição", "Valor", "Estado", "Setor", "Responsável"}

// ==========================
// Init Equipment
// ==========================
func InitEquipment(rootCmd *cobra.Command, open Opener) {
	equipmentCmd := &cobra.Command{
		Use:     "equipment",
		Aliases: []string{"eq"},
		Short:   "Manage equipment records",
	}

	equipmentCmd.AddCommand(
		listCmd(open),
		viewCmd(open),
		deleteCmd(open),
		importCmd(open),
		exportCmd(open),
	)

	rootCmd.AddCommand(equipmentCmd)
}

// withService opens the service for the duration of fn.
func withService(ctx context.Context, open Opener, fn func(Service) error) error {
	svc, closeFn, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(svc)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// ==========================
// LIST
// ==========================
func listCmd(open Opener) *cobra.Command {
	var search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List equipment, optionally filtered by a search term",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), open, func(svc Service) error {
				list, err := svc.List(cmd.Context(), search)
				if err != nil {
					return err
				}
				if asJSON {
					return output.RenderJSON(cmd.OutOrStdout(), list)
				}

				rows := make([][]interface{}, 0, len(list))
				for _, e := range list {
					rows = append(rows, []interface{}{
						e.ID, e.AssetTag, e.Category, e.Object, e.Model, e.AcquiredOnString(),
						fmt.Sprintf("%.2f", e.Value), e.Condition, e.Sector, e.Operator,
					})
				}
				output.RenderTable(cmd.OutOrStdout(), listHeaders, rows)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "match object, category, sector or operator")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// VIEW
// ==========================
func viewCmd(open Opener) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "view ID",
		Short: "Show every field of one equipment record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), open, func(svc Service) error {
				e, err := svc.Get(cmd.Context(), id)
				if errors.Is(err, service.ErrNotFound) {
					return fmt.Errorf("equipment %d not found", id)
				}
				if err != nil {
					return err
				}
				if asJSON {
					return output.RenderJSON(cmd.OutOrStdout(), e)
				}

				output.RenderTable(cmd.OutOrStdout(), []string{"Campo", "Valor"}, [][]interface{}{
					{"ID", e.ID},
					{"Nº do bem", e.AssetTag},
					{"Categoria", e.Category},
					{"Objeto", e.Object},
					{"Modelo", e.Model},
					{"Data aquisição", e.AcquiredOnString()},
					{"Nota fiscal", e.InvoiceNumber},
					{"Valor", fmt.Sprintf("%.2f", e.Value)},
					{"Estado", e.Condition},
					{"Setor", e.Sector},
					{"Responsável", e.Operator},
					{"Data entrega", e.DeliveredOnString()},
					{"Manutenção", e.Maintenance},
					{"Serviço realizado", e.ServicePerformed},
				})
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one equipment record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), open, func(svc Service) error {
				err := svc.Delete(cmd.Context(), id)
				if errors.Is(err, service.ErrNotFound) {
					return fmt.Errorf("equipment %d not found", id)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Equipamento removido com sucesso!")
				return nil
			})
		},
	}
}
