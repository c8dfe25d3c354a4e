package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"chatstats/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks every config section against its struct tags.
// Sections are validated one by one so error messages carry the
// section name.
func (cv *CnfValidator) Validate() error {
	sections := map[string]interface{}{
		"webServer": &cv.conf.WebServer,
		"output":    &cv.conf.Output,
		"query":     &cv.conf.Query,
		"logger":    &cv.conf.Logger,
	}

	for name, section := range sections {
		v := validate.Struct(section)
		if !v.Validate() {
			return fmt.Errorf("config section %s: %s", name, v.Errors.One())
		}
	}
	return nil
}
