package infra

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// NewEnforcer builds an enforcer from the model file only. Policies are not
// persisted through casbin; the rbac service loads the active company's
// grants into memory before each Enforce call.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load rbac model %s: %w", modelPath, err)
	}

	return casbin.NewEnforcer(m)
}
