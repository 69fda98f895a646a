package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository"
	"github.com/guilleguerrisi/tsb-backend-tienda/pkg/errors"
)

// DeviceService answers whether a device is on the admin allow-list
type DeviceService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewDeviceService(repos *repository.Repositories, logger *zap.Logger) *DeviceService {
	return &DeviceService{repos: repos, logger: logger}
}

// Authorized reports allow-list membership. An unknown device is not an error.
func (s *DeviceService) Authorized(ctx context.Context, req VerifyDeviceRequest) (bool, error) {
	id := strings.TrimSpace(req.DeviceID)
	if id == "" {
		id = strings.TrimSpace(req.DeviceIDAlt)
	}
	if id == "" {
		return false, &errors.ErrValidation{Message: "device_id is required", Fields: map[string]string{"device_id": "required"}}
	}

	ok, err := s.repos.AdminDevice.Exists(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		s.logger.Info("Unknown admin device", zap.String("device_id", id))
	}
	return ok, nil
}
