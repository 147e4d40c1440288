// util/validation_util.go

package util

import (
	"encoding/base64"
	"regexp"

	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
)

type ValidationUtil struct {
	codeRegex    *regexp.Regexp
	nameRegex    *regexp.Regexp
	iconMaxBytes int
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{
		codeRegex:    regexp.MustCompile(config.GetString("project.codeRegex")),
		nameRegex:    regexp.MustCompile(config.GetString("project.nameRegex")),
		iconMaxBytes: config.GetInt("project.iconMaxBytes"),
	}
}

func (v *ValidationUtil) ValidateProjectCode(code string) error {
	if !v.codeRegex.MatchString(code) {
		return bff_errors.ErrInvalidProjectCode
	}
	return nil
}

func (v *ValidationUtil) ValidateProjectName(name string) error {
	if !v.nameRegex.MatchString(name) {
		return bff_errors.ErrInvalidProjectName
	}
	return nil
}

// ValidateIcon checks the decoded size of a base64 project icon.
func (v *ValidationUtil) ValidateIcon(icon string) error {
	if icon == "" {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(icon)
	if err != nil {
		return bff_errors.ErrValidation
	}
	if len(decoded) > v.iconMaxBytes {
		return bff_errors.ErrIconTooLarge
	}
	return nil
}

func (v *ValidationUtil) ValidateProjectCreate(req model.ProjectCreateRequest) error {
	if err := v.ValidateProjectCode(req.Code); err != nil {
		return err
	}
	if err := v.ValidateProjectName(req.Name); err != nil {
		return err
	}
	return v.ValidateIcon(req.Icon)
}

// ValidProjectRole reports whether the role is an assignable project role.
func ValidProjectRole(role string) bool {
	switch role {
	case model.ProjectRoleAdmin, model.ProjectRoleCollaborator, model.ProjectRoleContributor:
		return true
	}
	return false
}
