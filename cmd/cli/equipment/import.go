package equipment

import (
	"errors"
	"fmt"
	"os"

	"github.com/crucial707/equipment-registry/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// importFile is the YAML layout accepted by import:
//
//	equipment:
//	  - asset_tag: BEM001
//	    categoria: Informática
//	    ...
type importFile struct {
	Equipment []service.EquipmentInput `yaml:"equipment"`
}

func readImportFile(path string) ([]service.EquipmentInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file importFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file.Equipment, nil
}

// ==========================
// IMPORT
// ==========================
func importCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.yaml",
		Short: "Create equipment records from a YAML file",
		Long: "Create every entry of a YAML file through the same validation as the web form. " +
			"Invalid entries are reported and skipped; a storage failure stops the import.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readImportFile(args[0])
			if err != nil {
				return err
			}

			return withService(cmd.Context(), open, func(svc Service) error {
				out := cmd.OutOrStdout()
				created, rejected := 0, 0
				for i, in := range entries {
					e, err := svc.Create(cmd.Context(), in)
					var verr *service.ValidationError
					switch {
					case err == nil:
						created++
						fmt.Fprintf(out, "created #%d %s\n", e.ID, e.AssetTag)
					case errors.As(err, &verr):
						rejected++
						fmt.Fprintf(out, "entry %d (%s) rejected: %v\n", i+1, in.AssetTag, verr)
					default:
						return fmt.Errorf("entry %d (%s): %w", i+1, in.AssetTag, err)
					}
				}

				fmt.Fprintf(out, "%d created, %d rejected\n", created, rejected)
				if rejected > 0 {
					return fmt.Errorf("%d of %d entries rejected", rejected, len(entries))
				}
				return nil
			})
		},
	}
}
