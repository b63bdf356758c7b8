package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openadmissions/forms-intake-service/internal/mappings/model"
	"github.com/openadmissions/forms-intake-service/internal/mappings/provider"
	"github.com/openadmissions/forms-intake-service/internal/system/security"
	"github.com/openadmissions/forms-intake-service/internal/system/utils"
)

type MappingRuleHandler struct{}

func NewMappingRuleHandler() *MappingRuleHandler {

	return &MappingRuleHandler{}
}

// AddMappingRule handles creating a mapping rule.
func (mh *MappingRuleHandler) AddMappingRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var rule model.MappingRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	mappingService := provider.NewMappingRuleProvider().GetMappingRuleService()
	created, err := mappingService.AddMappingRule(rule)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// GetMappingRules fetches the rules of a division given by query parameter.
func (mh *MappingRuleHandler) GetMappingRules(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	divisionId := r.URL.Query().Get("division")
	if divisionId == "" {
		http.Error(w, "Missing division parameter", http.StatusBadRequest)
		return
	}

	mappingService := provider.NewMappingRuleProvider().GetMappingRuleService()
	rules, err := mappingService.GetMappingRules(divisionId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, rules)
}

// GetMappingRule fetches a single rule by id.
func (mh *MappingRuleHandler) GetMappingRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	mappingService := provider.NewMappingRuleProvider().GetMappingRuleService()
	rule, err := mappingService.GetMappingRule(idFromPath(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if rule.RuleId == "" {
		http.NotFound(w, r)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, rule)
}

// PutMappingRule handles replacing a mapping rule.
func (mh *MappingRuleHandler) PutMappingRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var rule model.MappingRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	rule.RuleId = idFromPath(r)

	mappingService := provider.NewMappingRuleProvider().GetMappingRuleService()
	if err := mappingService.PutMappingRule(rule); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteMappingRule removes a mapping rule.
func (mh *MappingRuleHandler) DeleteMappingRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	mappingService := provider.NewMappingRuleProvider().GetMappingRuleService()
	if err := mappingService.DeleteMappingRule(idFromPath(r)); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddCustomField handles declaring a custom field.
func (mh *MappingRuleHandler) AddCustomField(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	var field model.CustomFieldDeclaration
	if err := json.NewDecoder(r.Body).Decode(&field); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	mappingService := provider.NewMappingRuleProvider().GetMappingRuleService()
	created, err := mappingService.AddCustomField(field)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// GetCustomFields fetches all custom field declarations.
func (mh *MappingRuleHandler) GetCustomFields(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	mappingService := provider.NewMappingRuleProvider().GetMappingRuleService()
	fields, err := mappingService.GetCustomFields()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, fields)
}

// DeleteCustomField removes a custom field declaration.
func (mh *MappingRuleHandler) DeleteCustomField(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnWithAdminCredentials(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	mappingService := provider.NewMappingRuleProvider().GetMappingRuleService()
	if err := mappingService.DeleteCustomField(idFromPath(r)); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func idFromPath(r *http.Request) string {

	parts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
