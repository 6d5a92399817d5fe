package service

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/equipment-registry/internal/models"
	"github.com/go-playground/validator/v10"
)

// EquipmentInput is the raw, unvalidated form of an equipment record as it
// arrives from the web form or an import file. Every field is text; Create and
// Update validate it before mapping it onto models.Equipment.
type EquipmentInput struct {
	AssetTag         string `form:"asset_tag" yaml:"asset_tag" validate:"required,max=50"`
	Category         string `form:"categoria" yaml:"categoria" validate:"required,category"`
	Object           string `form:"objeto" yaml:"objeto" validate:"required,max=100"`
	Model            string `form:"modelo" yaml:"modelo" validate:"required,max=50"`
	AcquiredOn       string `form:"data_aquisicao" yaml:"data_aquisicao" validate:"required,datetime=2006-01-02"`
	InvoiceNumber    string `form:"nota_fiscal" yaml:"nota_fiscal" validate:"required,max=50"`
	Value            string `form:"valor" yaml:"valor" validate:"required,decimal_nonneg,value_max"`
	Condition        string `form:"estado_conservacao" yaml:"estado_conservacao" validate:"required,condition"`
	Sector           string `form:"setor_alocado" yaml:"setor_alocado" validate:"required,max=50"`
	Operator         string `form:"responsavel_operador" yaml:"responsavel_operador" validate:"required,max=50"`
	DeliveredOn      string `form:"data_entrega" yaml:"data_entrega" validate:"omitempty,datetime=2006-01-02"`
	Maintenance      string `form:"manutencao_dada" yaml:"manutencao_dada" validate:"max=50"`
	ServicePerformed string `form:"servico_realizado" yaml:"servico_realizado"`
}

// InputFromEquipment renders e back into form values, e.g. to prefill the edit form.
func InputFromEquipment(e models.Equipment) EquipmentInput {
	return EquipmentInput{
		AssetTag:         e.AssetTag,
		Category:         string(e.Category),
		Object:           e.Object,
		Model:            e.Model,
		AcquiredOn:       e.AcquiredOnString(),
		InvoiceNumber:    e.InvoiceNumber,
		Value:            strconv.FormatFloat(e.Value, 'f', 2, 64),
		Condition:        string(e.Condition),
		Sector:           e.Sector,
		Operator:         e.Operator,
		DeliveredOn:      e.DeliveredOnString(),
		Maintenance:      e.Maintenance,
		ServicePerformed: e.ServicePerformed,
	}
}

// trimmed returns a copy with surrounding whitespace removed from every field.
func (in EquipmentInput) trimmed() EquipmentInput {
	in.AssetTag = strings.TrimSpace(in.AssetTag)
	in.Category = strings.TrimSpace(in.Category)
	in.Object = strings.TrimSpace(in.Object)
	in.Model = strings.TrimSpace(in.Model)
	in.AcquiredOn = strings.TrimSpace(in.AcquiredOn)
	in.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	in.Value = strings.TrimSpace(in.Value)
	in.Condition = strings.TrimSpace(in.Condition)
	in.Sector = strings.TrimSpace(in.Sector)
	in.Operator = strings.TrimSpace(in.Operator)
	in.DeliveredOn = strings.TrimSpace(in.DeliveredOn)
	in.Maintenance = strings.TrimSpace(in.Maintenance)
	in.ServicePerformed = strings.TrimSpace(in.ServicePerformed)
	return in
}

// toEquipment maps an already validated input onto the entity.
func (in EquipmentInput) toEquipment() (models.Equipment, error) {
	acquired, err := time.Parse(models.DateLayout, in.AcquiredOn)
	if err != nil {
		return models.Equipment{}, err
	}
	value, err := strconv.ParseFloat(in.Value, 64)
	if err != nil {
		return models.Equipment{}, err
	}

	e := models.Equipment{
		AssetTag:         in.AssetTag,
		Category:         models.Category(in.Category),
		Object:           in.Object,
		Model:            in.Model,
		AcquiredOn:       acquired,
		InvoiceNumber:    in.InvoiceNumber,
		Value:            math.Round(value*100) / 100,
		Condition:        models.Condition(in.Condition),
		Sector:           in.Sector,
		Operator:         in.Operator,
		Maintenance:      in.Maintenance,
		ServicePerformed: in.ServicePerformed,
	}
	if in.DeliveredOn != "" {
		delivered, err := time.Parse(models.DateLayout, in.DeliveredOn)
		if err != nil {
			return models.Equipment{}, err
		}
		e.DeliveredOn = &delivered
	}
	return e, nil
}

// ========================
// VALIDATION RULES
// ========================

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// Registration only fails for an empty tag or a nil func.
	if err := registerRules(v); err != nil {
		panic("register validation rules: " + err.Error())
	}
	return v
}

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("category", isCategory); err != nil {
		return err
	}
	if err := v.RegisterValidation("condition", isCondition); err != nil {
		return err
	}
	if err := v.RegisterValidation("decimal_nonneg", isNonNegativeDecimal); err != nil {
		return err
	}
	if err := v.RegisterValidation("value_max", withinValueRange); err != nil {
		return err
	}
	return nil
}

func isCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}

func isCondition(fl validator.FieldLevel) bool {
	return models.Condition(fl.Field().String()).Valid()
}

// MaxValue is the largest valor the NUMERIC(14,2) column holds.
const MaxValue = 999999999999.99

var plainDecimal = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// isNonNegativeDecimal accepts plain digits with an optional fraction, so
// signs, exponents, hex floats, NaN and Inf are all rejected.
func isNonNegativeDecimal(fl validator.FieldLevel) bool {
	return plainDecimal.MatchString(fl.Field().String())
}

// withinValueRange checks the rounded amount fits the column.
func withinValueRange(fl validator.FieldLevel) bool {
	v, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil {
		return false
	}
	return math.Round(v*100)/100 <= MaxValue
}

// reason turns a failed rule into the message shown next to the field.
func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório."
	case "max":
		return "Máximo de " + fe.Param() + " caracteres."
	case "category":
		return "Categoria inválida."
	case "condition":
		return "Estado de conservação inválido."
	case "decimal_nonneg":
		return "Informe um número maior ou igual a zero."
	case "value_max":
		return "Valor máximo de 999.999.999.999,99."
	case "datetime":
		return "Data inválida, use o formato AAAA-MM-DD."
	default:
		return "Valor inválido."
	}
}
