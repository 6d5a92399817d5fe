package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/equipment-registry/internal/models"
	"github.com/crucial707/equipment-registry/internal/service"
	"github.com/crucial707/equipment-registry/internal/web"
	"github.com/go-chi/chi/v5"
)

// EquipmentService is the part of service.EquipmentService the handlers use.
type EquipmentService interface {
	List(ctx context.Context, query string) ([]models.Equipment, error)
	Get(ctx context.Context, id int) (models.Equipment, error)
	Create(ctx context.Context, in service.EquipmentInput) (models.Equipment, error)
	Update(ctx context.Context, id int, in service.EquipmentInput) (models.Equipment, error)
	Delete(ctx context.Context, id int) error
}

// Renderer writes a named page template with a status code.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any)
}

type EquipmentHandler struct {
	Service EquipmentService
	Views   Renderer
	Logger  *slog.Logger
}

func (h *EquipmentHandler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

//
// ==========================
// List / Search
// ==========================
//

func (h *EquipmentHandler) Index(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	list, err := h.Service.List(r.Context(), search)
	if err != nil {
		h.ServerError(w, r, err)
		return
	}

	h.Views.Render(w, http.StatusOK, web.PageIndex, map[string]interface{}{
		"Search":     search,
		"Equipments": list,
		"Flash":      popFlash(w, r),
	})
}

//
// ==========================
// Create
// ==========================
//

func (h *EquipmentHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, http.StatusOK, addForm, service.EquipmentInput{}, nil, "")
}

func (h *EquipmentHandler) Add(w http.ResponseWriter, r *http.Request) {
	in, ok := parseEquipmentForm(w, r)
	if !ok {
		return
	}

	_, err := h.Service.Create(r.Context(), in)
	var (
		verr  *service.ValidationError
		opErr *service.OperationalError
	)
	switch {
	case err == nil:
		setFlash(w, flashSuccess, "Equipamento adicionado com sucesso!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.As(err, &verr):
		h.renderForm(w, http.StatusUnprocessableEntity, addForm, in, verr.Fields, "")
	case errors.As(err, &opErr):
		h.renderForm(w, http.StatusInternalServerError, addForm, in, nil,
			"Erro ao adicionar equipamento: "+opErr.Reason())
	default:
		h.ServerError(w, r, err)
	}
}

//
// ==========================
// Update
// ==========================
//

func (h *EquipmentHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := equipmentID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	e, err := h.Service.Get(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.ServerError(w, r, err)
		return
	}

	h.renderForm(w, http.StatusOK, editForm(id), service.InputFromEquipment(e), nil, "")
}

func (h *EquipmentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := equipmentID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	in, ok := parseEquipmentForm(w, r)
	if !ok {
		return
	}

	_, err := h.Service.Update(r.Context(), id, in)
	var (
		verr  *service.ValidationError
		opErr *service.OperationalError
	)
	switch {
	case err == nil:
		setFlash(w, flashSuccess, "Equipamento atualizado com sucesso!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, service.ErrNotFound):
		h.NotFound(w, r)
	case errors.As(err, &verr):
		h.renderForm(w, http.StatusUnprocessableEntity, editForm(id), in, verr.Fields, "")
	case errors.As(err, &opErr):
		h.renderForm(w, http.StatusInternalServerError, editForm(id), in, nil,
			"Erro ao atualizar equipamento: "+opErr.Reason())
	default:
		h.ServerError(w, r, err)
	}
}

//
// ==========================
// Delete
// ==========================
//

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := equipmentID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	err := h.Service.Delete(r.Context(), id)
	var opErr *service.OperationalError
	switch {
	case err == nil:
		setFlash(w, flashSuccess, "Equipamento removido com sucesso!")
	case errors.Is(err, service.ErrNotFound):
		h.NotFound(w, r)
		return
	case errors.As(err, &opErr):
		setFlash(w, flashDanger, "Erro ao remover equipamento: "+opErr.Reason())
	default:
		h.ServerError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

//
// ==========================
// View
// ==========================
//

func (h *EquipmentHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := equipmentID(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	e, err := h.Service.Get(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.ServerError(w, r, err)
		return
	}

	h.Views.Render(w, http.StatusOK, web.PageView, map[string]interface{}{
		"Equipment": e,
	})
}

//
// ==========================
// Helpers
// ==========================
//

type formPage struct {
	Title  string
	Action string
}

var addForm = formPage{Title: "Adicionar Equipamento", Action: "/add"}

func editForm(id int) formPage {
	return formPage{Title: "Editar Equipamento", Action: "/edit/" + strconv.Itoa(id)}
}

func (h *EquipmentHandler) renderForm(w http.ResponseWriter, status int, page formPage, in service.EquipmentInput, fields map[string]string, message string) {
	if fields == nil {
		fields = map[string]string{}
	}
	h.Views.Render(w, status, web.PageForm, map[string]interface{}{
		"Title":      page.Title,
		"Action":     page.Action,
		"Input":      in,
		"Errors":     fields,
		"Error":      message,
		"Categories": models.Categories,
		"Conditions": models.Conditions,
	})
}

// equipmentID parses the {id} URL param. Anything but a positive integer
// cannot name a record.
func equipmentID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseEquipmentForm(w http.ResponseWriter, r *http.Request) (service.EquipmentInput, bool) {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "formulário muito grande", http.StatusRequestEntityTooLarge)
			return service.EquipmentInput{}, false
		}
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return service.EquipmentInput{}, false
	}

	return service.EquipmentInput{
		AssetTag:         r.PostFormValue("asset_tag"),
		Category:         r.PostFormValue("categoria"),
		Object:           r.PostFormValue("objeto"),
		Model:            r.PostFormValue("modelo"),
		AcquiredOn:       r.PostFormValue("data_aquisicao"),
		InvoiceNumber:    r.PostFormValue("nota_fiscal"),
		Value:            r.PostFormValue("valor"),
		Condition:        r.PostFormValue("estado_conservacao"),
		Sector:           r.PostFormValue("setor_alocado"),
		Operator:         r.PostFormValue("responsavel_operador"),
		DeliveredOn:      r.PostFormValue("data_entrega"),
		Maintenance:      r.PostFormValue("manutencao_dada"),
		ServicePerformed: r.PostFormValue("servico_realizado"),
	}, true
}
