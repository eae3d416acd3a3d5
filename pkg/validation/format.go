// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/ifta-report/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, supported := range constants.OutputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s",
		strings.Join(constants.OutputFormats, ", "), format)
}
