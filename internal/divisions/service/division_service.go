package service

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openadmissions/forms-intake-service/internal/divisions/model"
	"github.com/openadmissions/forms-intake-service/internal/divisions/store"
	"github.com/openadmissions/forms-intake-service/internal/system/cache"
	"github.com/openadmissions/forms-intake-service/internal/system/config"
	"github.com/openadmissions/forms-intake-service/internal/system/errors"
	"github.com/openadmissions/forms-intake-service/internal/system/log"
)

const divisionsCacheKey = "divisions:all"

var (
	divisionCache     *cache.Cache
	divisionCacheOnce sync.Once
)

func getDivisionCache() *cache.Cache {
	divisionCacheOnce.Do(func() {
		ttl := time.Duration(config.GetIntakeRuntime().Config.Cache.RuleTTLSeconds) * time.Second
		divisionCache = cache.NewCache(ttl)
	})
	return divisionCache
}

type DivisionServiceInterface interface {
	AddDivision(division model.DivisionConfig) (model.DivisionConfig, error)
	GetDivisions() ([]model.DivisionConfig, error)
	GetDivision(divisionId string) (model.DivisionConfig, error)
	PutDivision(division model.DivisionConfig) error
	DeleteDivision(divisionId string) error
}

// DivisionService is the default implementation of the DivisionServiceInterface.
type DivisionService struct{}

// GetDivisionService creates a new instance of DivisionService.
func GetDivisionService() DivisionServiceInterface {

	return &DivisionService{}
}

func (ds *DivisionService) AddDivision(division model.DivisionConfig) (model.DivisionConfig, error) {

	if err, ok := validateDivision(division); !ok {
		return model.DivisionConfig{}, err
	}

	division.DivisionId = uuid.New().String()
	currentTime := time.Now().UTC().Unix()
	division.CreatedAt = currentTime
	division.UpdatedAt = currentTime

	if err := store.AddDivision(division); err != nil {
		return model.DivisionConfig{}, err
	}
	getDivisionCache().Flush()
	return division, nil
}

func (ds *DivisionService) GetDivisions() ([]model.DivisionConfig, error) {

	if cached, found := getDivisionCache().Get(divisionsCacheKey); found {
		if divisions, ok := cached.([]model.DivisionConfig); ok {
			return divisions, nil
		}
	}

	divisions, err := store.GetDivisions()
	if err != nil {
		return nil, err
	}
	getDivisionCache().Set(divisionsCacheKey, divisions)
	return divisions, nil
}

func (ds *DivisionService) GetDivision(divisionId string) (model.DivisionConfig, error) {
	return store.GetDivision(divisionId)
}

func (ds *DivisionService) PutDivision(division model.DivisionConfig) error {

	if err, ok := validateDivision(division); !ok {
		return err
	}

	existing, err := store.GetDivision(division.DivisionId)
	if err != nil {
		return err
	}
	if existing.DivisionId == "" {
		return errors.NewClientError(errors.ErrorMessage{
			Code:        errors.RESOURCE_NOT_FOUND.Code,
			Message:     errors.RESOURCE_NOT_FOUND.Message,
			Description: "No division exists for the given id.",
		}, http.StatusNotFound)
	}

	division.CreatedAt = existing.CreatedAt
	division.UpdatedAt = time.Now().UTC().Unix()
	if err := store.UpdateDivision(division); err != nil {
		return err
	}
	getDivisionCache().Flush()
	return nil
}

func (ds *DivisionService) DeleteDivision(divisionId string) error {

	division, _ := store.GetDivision(divisionId)
	if division.DivisionId == "" {
		return nil
	}
	if err := store.DeleteDivision(divisionId); err != nil {
		return err
	}
	getDivisionCache().Flush()
	log.GetLogger().Debug("Division cache flushed after delete.")
	return nil
}

// validateDivision validates the division configuration.
func validateDivision(division model.DivisionConfig) (error, bool) {

	if division.Name == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.ErrDivisionValidation.Code,
			Message:     errors.ErrDivisionValidation.Message,
			Description: "Division name is required.",
		}, http.StatusBadRequest)
		return clientError, false
	}

	if division.FormId == "" && len(division.SignalFields) == 0 {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.ErrDivisionValidation.Code,
			Message:     errors.ErrDivisionValidation.Message,
			Description: "A division needs a form id or at least one signal field to be classifiable.",
		}, http.StatusBadRequest)
		return clientError, false
	}

	return nil, true
}
