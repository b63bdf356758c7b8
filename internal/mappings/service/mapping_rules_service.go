package service

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openadmissions/forms-intake-service/internal/mappings/model"
	"github.com/openadmissions/forms-intake-service/internal/mappings/store"
	"github.com/openadmissions/forms-intake-service/internal/system/cache"
	"github.com/openadmissions/forms-intake-service/internal/system/config"
	"github.com/openadmissions/forms-intake-service/internal/system/constants"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
)

var (
	ruleCache     *cache.Cache
	ruleCacheOnce sync.Once
)

func getRuleCache() *cache.Cache {
	ruleCacheOnce.Do(func() {
		ttl := time.Duration(config.GetIntakeRuntime().Config.Cache.RuleTTLSeconds) * time.Second
		ruleCache = cache.NewCache(ttl)
	})
	return ruleCache
}

// ruleSet is the cached result of LoadRules for one division.
type ruleSet struct {
	rules        []model.MappingRule
	customFields []model.CustomFieldDeclaration
}

type MappingRuleServiceInterface interface {
	AddMappingRule(rule model.MappingRule) (model.MappingRule, error)
	GetMappingRules(divisionId string) ([]model.MappingRule, error)
	GetMappingRule(ruleId string) (model.MappingRule, error)
	PutMappingRule(rule model.MappingRule) error
	DeleteMappingRule(ruleId string) error
	AddCustomField(field model.CustomFieldDeclaration) (model.CustomFieldDeclaration, error)
	GetCustomFields() ([]model.CustomFieldDeclaration, error)
	DeleteCustomField(fieldId string) error
	LoadRules(divisionId string) ([]model.MappingRule, []model.CustomFieldDeclaration, error)
}

// MappingRuleService is the default implementation of the MappingRuleServiceInterface.
type MappingRuleService struct{}

// GetMappingRuleService creates a new instance of MappingRuleService.
func GetMappingRuleService() MappingRuleServiceInterface {

	return &MappingRuleService{}
}

func (mrs *MappingRuleService) AddMappingRule(rule model.MappingRule) (model.MappingRule, error) {

	if err, ok := validateMappingRule(rule); !ok {
		return model.MappingRule{}, err
	}

	rule.RuleId = uuid.New().String()
	currentTime := time.Now().UTC().Unix()
	rule.CreatedAt = currentTime
	rule.UpdatedAt = currentTime

	if err := store.AddMappingRule(rule); err != nil {
		return model.MappingRule{}, err
	}
	getRuleCache().Flush()
	return rule, nil
}

func (mrs *MappingRuleService) GetMappingRules(divisionId string) ([]model.MappingRule, error) {
	return store.GetMappingRules(divisionId)
}

func (mrs *MappingRuleService) GetMappingRule(ruleId string) (model.MappingRule, error) {
	return store.GetMappingRule(ruleId)
}

func (mrs *MappingRuleService) PutMappingRule(rule model.MappingRule) error {

	if err, ok := validateMappingRule(rule); !ok {
		return err
	}

	existing, err := store.GetMappingRule(rule.RuleId)
	if err != nil {
		return err
	}
	if existing.RuleId == "" {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.RESOURCE_NOT_FOUND.Code,
			Message:     errors.RESOURCE_NOT_FOUND.Message,
			Description: "No mapping rule exists for the given id.",
		}, http.StatusNotFound)
	}

	rule.UpdatedAt = time.Now().UTC().Unix()
	if err := store.UpdateMappingRule(rule); err != nil {
		return err
	}
	getRuleCache().Flush()
	return nil
}

func (mrs *MappingRuleService) DeleteMappingRule(ruleId string) error {

	rule, _ := store.GetMappingRule(ruleId)
	if rule.RuleId == "" {
		return nil
	}
	if err := store.DeleteMappingRule(ruleId); err != nil {
		return err
	}
	getRuleCache().Flush()
	return nil
}

func (mrs *MappingRuleService) AddCustomField(field model.CustomFieldDeclaration) (model.CustomFieldDeclaration, error) {

	if field.FieldName == "" || len(field.DivisionIds) == 0 {
		return model.CustomFieldDeclaration{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.ErrCustomFieldValidation.Code,
			Message:     errors.ErrCustomFieldValidation.Message,
			Description: errors.ErrCustomFieldValidation.Description,
		}, http.StatusBadRequest)
	}

	field.FieldId = uuid.New().String()
	field.CreatedAt = time.Now().UTC().Unix()

	if err := store.AddCustomField(field); err != nil {
		return model.CustomFieldDeclaration{}, err
	}
	getRuleCache().Flush()
	return field, nil
}

func (mrs *MappingRuleService) GetCustomFields() ([]model.CustomFieldDeclaration, error) {
	return store.GetCustomFields()
}

func (mrs *MappingRuleService) DeleteCustomField(fieldId string) error {

	if err := store.DeleteCustomField(fieldId); err != nil {
		return err
	}
	getRuleCache().Flush()
	return nil
}

// LoadRules returns the active mapping rules of a division in application
// order, plus the custom field declarations that apply to it. Both lists may
// be empty; that is not an error and normalization still succeeds with only
// base fields. Results are cached per division until the TTL expires or an
// admin mutation flushes the cache.
func (mrs *MappingRuleService) LoadRules(divisionId string) ([]model.MappingRule, []model.CustomFieldDeclaration, error) {

	cacheKey := "rules:" + divisionId
	if cached, found := getRuleCache().Get(cacheKey); found {
		if set, ok := cached.(ruleSet); ok {
			return set.rules, set.customFields, nil
		}
	}

	allRules, err := store.GetMappingRules(divisionId)
	if err != nil {
		return nil, nil, err
	}
	activeRules := make([]model.MappingRule, 0, len(allRules))
	for _, rule := range allRules {
		if rule.Active {
			activeRules = append(activeRules, rule)
		}
	}

	allFields, err := store.GetCustomFields()
	if err != nil {
		return nil, nil, err
	}
	applicable := make([]model.CustomFieldDeclaration, 0, len(allFields))
	for _, field := range allFields {
		if !field.Active {
			continue
		}
		for _, id := range field.DivisionIds {
			if id == divisionId {
				applicable = append(applicable, field)
				break
			}
		}
	}

	getRuleCache().Set(cacheKey, ruleSet{rules: activeRules, customFields: applicable})
	return activeRules, applicable, nil
}

// validateMappingRule validates the mapping rule.
func validateMappingRule(rule model.MappingRule) (error, bool) {

	if rule.SourceFieldId == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.ErrSourceFieldValidation.Code,
			Message:     errors.ErrSourceFieldValidation.Message,
			Description: errors.ErrSourceFieldValidation.Description,
		}, http.StatusBadRequest)
		return clientError, false
	}

	if rule.TargetField == "" || rule.TargetTable == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.ErrTargetFieldValidation.Code,
			Message:     errors.ErrTargetFieldValidation.Message,
			Description: errors.ErrTargetFieldValidation.Description,
		}, http.StatusBadRequest)
		return clientError, false
	}

	if !constants.AllowedValueTypes[rule.ValueType] {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.ErrValueTypeValidation.Code,
			Message:     errors.ErrValueTypeValidation.Message,
			Description: fmt.Sprintf("'%s' is not an expected value type.", rule.ValueType),
		}, http.StatusBadRequest)
		return clientError, false
	}

	if rule.DivisionId == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.ErrDivisionValidation.Code,
			Message:     errors.ErrDivisionValidation.Message,
			Description: "A mapping rule must be scoped to exactly one division.",
		}, http.StatusBadRequest)
		return clientError, false
	}

	return nil, true
}
