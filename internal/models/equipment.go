package models

import "time"

// DateLayout is the wire and form layout for calendar dates.
const DateLayout = "2006-01-02"

// Category is the fixed classification of an equipment record.
type Category string

const (
	CategoryInformatics Category = "Informática"
	CategoryFurniture   Category = "Móveis"
	CategoryEquipment   Category = "Equipamentos"
	CategoryVehicles    Category = "Veículos"
	CategoryTools       Category = "Ferramentas"
	CategoryOther       Category = "Outros"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryInformatics,
	CategoryFurniture,
	CategoryEquipment,
	CategoryVehicles,
	CategoryTools,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Condition is the conservation state of an equipment record.
type Condition string

const (
	ConditionNew     Condition = "Novo"
	ConditionGood    Condition = "Bom"
	ConditionRegular Condition = "Regular"
	ConditionBad     Condition = "Ruim"
	ConditionVeryBad Condition = "Péssimo"
)

// Conditions lists every valid conservation state, best first.
var Conditions = []Condition{
	ConditionNew,
	ConditionGood,
	ConditionRegular,
	ConditionBad,
	ConditionVeryBad,
}

// Valid reports whether c is one of Conditions.
func (c Condition) Valid() bool {
	for _, v := range Conditions {
		if c == v {
			return true
		}
	}
	return false
}

// Equipment is one row of the equipment table.
type Equipment struct {
	ID               int        `json:"id"`
	AssetTag         string     `json:"asset_tag"`
	Category         Category   `json:"categoria"`
	Object           string     `json:"objeto"`
	Model            string     `json:"modelo"`
	AcquiredOn       time.Time  `json:"data_aquisicao"`
	InvoiceNumber    string     `json:"nota_fiscal"`
	Value            float64    `json:"valor"`
	Condition        Condition  `json:"estado_conservacao"`
	Sector           string     `json:"setor_alocado"`
	Operator         string     `json:"responsavel_operador"`
	DeliveredOn      *time.Time `json:"data_entrega,omitempty"`
	Maintenance      string     `json:"manutencao_dada,omitempty"`
	ServicePerformed string     `json:"servico_realizado,omitempty"`
}

// AcquiredOnString formats AcquiredOn with DateLayout.
func (e Equipment) AcquiredOnString() string {
	if e.AcquiredOn.IsZero() {
		return ""
	}
	return e.AcquiredOn.Format(DateLayout)
}

// DeliveredOnString formats DeliveredOn with DateLayout, or "" when unset.
func (e Equipment) DeliveredOnString() string {
	if e.DeliveredOn == nil {
		return ""
	}
	return e.DeliveredOn.Format(DateLayout)
}
