package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openadmissions/forms-intake-service/internal/divisions/model"
	"github.com/openadmissions/forms-intake-service/internal/divisions/provider"
	"github.com/openadmissions/forms-intake-service/internal/system/security"
	"github.com/openadmissions/forms-intake-service/internal/system/utils"
)

type DivisionHandler struct{}

func NewDivisionHandler() *DivisionHandler {

	return &DivisionHandler{}
}

// AddDivision handles creating a division configuration.
func (dh *DivisionHandler) AddDivision(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var division model.DivisionConfig
	if err := json.NewDecoder(r.Body).Decode(&division); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	divisionService := provider.NewDivisionProvider().GetDivisionService()
	created, err := divisionService.AddDivision(division)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// GetDivisions fetches all division configurations.
func (dh *DivisionHandler) GetDivisions(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	divisionService := provider.NewDivisionProvider().GetDivisionService()
	divisions, err := divisionService.GetDivisions()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, divisions)
}

// GetDivision fetches a single division configuration by id.
func (dh *DivisionHandler) GetDivision(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	divisionId := divisionIdFromPath(r)
	if divisionId == "" {
		http.Error(w, "Missing division id", http.StatusBadRequest)
		return
	}

	divisionService := provider.NewDivisionProvider().GetDivisionService()
	division, err := divisionService.GetDivision(divisionId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if division.DivisionId == "" {
		http.NotFound(w, r)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, division)
}

// PutDivision handles replacing a division configuration.
func (dh *DivisionHandler) PutDivision(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var division model.DivisionConfig
	if err := json.NewDecoder(r.Body).Decode(&division); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	division.DivisionId = divisionIdFromPath(r)

	divisionService := provider.NewDivisionProvider().GetDivisionService()
	if err := divisionService.PutDivision(division); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteDivision removes a division configuration.
func (dh *DivisionHandler) DeleteDivision(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	divisionService := provider.NewDivisionProvider().GetDivisionService()
	if err := divisionService.DeleteDivision(divisionIdFromPath(r)); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func divisionIdFromPath(r *http.Request) string {

	parts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
